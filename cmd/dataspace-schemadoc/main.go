// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

// dataspace-schemadoc generates JSON Schema files and HTML reference pages
// for the dataspace configuration documents and consent protocol tokens.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	schemadoc "github.com/testbed-fi/dataspace-schemadoc"
	"github.com/testbed-fi/dataspace-schemadoc/definitions"
)

// dotEnvFile is loaded from the working directory before flags are parsed.
const dotEnvFile = ".env"

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/testbed-fi/dataspace-schemadoc"
	_buildTime string
)

// cliOptions describes CLI flags and subcommands.
type cliOptions struct {
	LogLevel string `long:"log-level" env:"LOG_LEVEL" description:"Log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`

	Version       versionCommand        `command:"version" description:"Print version information"`
	SourceToJSON  sourceToSchemaCommand `command:"convert-src-to-json-schema" description:"Write JSON Schema files for the registered definitions"`
	SchemaToHTML  schemaToHTMLCommand   `command:"convert-json-schema-to-html" description:"Render a directory of JSON Schema files into HTML pages"`
	SourceToHTML  sourceToHTMLCommand   `command:"convert-src-to-html" description:"Write JSON Schema files, then render them into HTML pages"`
	Template      templateCommand       `command:"template" description:"Print built-in HTML page template"`
	SchemaExample exampleCommand        `command:"example" description:"Generate an example payload from a JSON Schema file"`
}

// schemasDirFlags selects the JSON Schema directory shared by both pipeline stages.
type schemasDirFlags struct {
	SchemasDir string `short:"s" long:"schemas-dir" env:"SCHEMAS_PATH" description:"Directory for JSON Schema files" default:"schemas"`
}

// definitionFlags selects definitions and the example values embedded into them.
type definitionFlags struct {
	Only                   []string `long:"only" description:"Extract only the named definition (repeatable)"`
	BaseDomain             string   `long:"base-domain" env:"DATASPACE_BASE_DOMAIN" description:"Dataspace base domain used in examples" default:"testbed.fi"`
	AuthProviderURL        string   `long:"auth-provider-url" env:"AUTHENTICATION_PROVIDER_URL" description:"Authentication provider URL used in examples" default:"https://login.testbed.fi"`
	AuthProviderEndUserURL string   `long:"auth-provider-end-user-url" env:"AUTHENTICATION_PROVIDER_END_USER_URL" description:"End-user authentication provider URL used in examples" default:"https://login.testbed.fi"`
	ConsentProviderURL     string   `long:"consent-provider-url" env:"CONSENT_PROVIDER_URL" description:"Consent provider URL used in examples" default:"https://consent.testbed.fi"`
	ACRValues              string   `long:"acr" env:"ACR_VALUES" description:"ACR value used in examples" default:"http://eidas.europa.eu/LoA/substantial"`
}

// htmlFlags groups HTML rendering flags. Flags left unset keep the config file value.
type htmlFlags struct {
	HTMLDir              string   `short:"o" long:"html-dir" env:"HTML_PATH" description:"Directory for HTML pages" default:"html"`
	ConfigPath           string   `short:"c" long:"config" env:"GENERATION_CONFIG" description:"Generation config file (.yaml, .yml or JSON with comments)"`
	TemplateName         string   `short:"t" long:"template" env:"TEMPLATE_NAME" description:"Built-in template (default: js)" choice:"js" choice:"flat"`
	TemplatePath         string   `short:"f" long:"template-file" env:"CUSTOM_TEMPLATE_PATH" description:"Path to custom page template (.gotmpl); wins over --template"`
	HubURL               string   `long:"hub-url" env:"DOCUMENTATION_HUB_URL" description:"Documentation hub URL linked from every page"`
	ExtraFiles           []string `long:"extra-file" env:"EXTRA_FILES_TO_COPY" env-delim:"," description:"Extra file copied from the template directory (repeatable)"`
	CollapseLongExamples bool     `long:"collapse-long-examples" description:"Collapse examples longer than 15 lines"`
	NoExpandButtons      bool     `long:"no-expand-buttons" description:"Omit the expand and collapse all buttons"`
	FooterTime           bool     `long:"footer-time" description:"Add the generation time to the footer"`
	NoFooter             bool     `long:"no-footer" description:"Omit the generator footer"`
}

// sourceToSchemaCommand runs the extractor.
type sourceToSchemaCommand struct {
	runner *cliRunner

	Schemas     schemasDirFlags `group:"Schemas"`
	Definitions definitionFlags `group:"Definitions"`
}

// Execute runs convert-src-to-json-schema subcommand.
func (command *sourceToSchemaCommand) Execute(_ []string) error {
	return command.runner.runSourceToSchema(command.Schemas, command.Definitions)
}

// schemaToHTMLCommand runs the site renderer.
type schemaToHTMLCommand struct {
	runner *cliRunner

	Schemas schemasDirFlags `group:"Schemas"`
	HTML    htmlFlags       `group:"HTML Render"`
}

// Execute runs convert-json-schema-to-html subcommand.
func (command *schemaToHTMLCommand) Execute(_ []string) error {
	return command.runner.runSchemaToHTML(command.Schemas, command.HTML)
}

// sourceToHTMLCommand runs the extractor and then the site renderer.
type sourceToHTMLCommand struct {
	runner *cliRunner

	Schemas     schemasDirFlags `group:"Schemas"`
	Definitions definitionFlags `group:"Definitions"`
	HTML        htmlFlags       `group:"HTML Render"`
}

// Execute runs convert-src-to-html subcommand.
func (command *sourceToHTMLCommand) Execute(_ []string) error {
	return command.runner.runSourceToHTML(command.Schemas, command.Definitions, command.HTML)
}

// templateCommand exports built-in page template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateName string `short:"t" long:"template" description:"Built-in template" choice:"js" choice:"flat" default:"js"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateName, command.Args.Output)
}

// exampleCommand generates an example payload from schema.
type exampleCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Mode   string `short:"m" long:"mode" description:"Properties to include" choice:"all" choice:"required" default:"all"`
	Format string `long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
}

// Execute runs example subcommand.
func (command *exampleCommand) Execute(_ []string) error {
	return command.runner.runExample(
		schemadoc.ExampleMode(command.Mode),
		schemadoc.ExampleFormat(command.Format),
		command.Args.Input,
		command.Args.Output,
	)
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
	options     *cliOptions
	log         *slog.Logger
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	printVersionInfo(command.runner.stdout)
	return nil
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	if err := loadDotEnv(dotEnvFile); err != nil {
		writeCLIError(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// loadDotEnv exports variables from an optional .env file.
// Variables already present in the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "dataspace-schemadoc"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// logger returns the stderr logger at the parsed --log-level.
func (runner *cliRunner) logger() *slog.Logger {
	if runner.log != nil {
		return runner.log
	}

	var level slog.Level
	if runner.options != nil {
		if err := level.UnmarshalText([]byte(runner.options.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
	}

	runner.log = slog.New(slog.NewTextHandler(runner.stderr, &slog.HandlerOptions{Level: level}))
	return runner.log
}

// runSourceToSchema writes one JSON Schema file per selected definition.
func (runner *cliRunner) runSourceToSchema(schemas schemasDirFlags, defs definitionFlags) error {
	extractor, err := runner.extractor(schemas, defs)
	if err != nil {
		return err
	}

	written, err := extractor.Run()
	if err != nil {
		return fmt.Errorf("convert definitions to json schema: %w", err)
	}

	runner.logger().Info("extraction finished", slog.Int("schemas", len(written)), slog.String("dir", schemas.SchemasDir))
	return nil
}

// runSchemaToHTML renders every schema in the schemas directory.
func (runner *cliRunner) runSchemaToHTML(schemas schemasDirFlags, html htmlFlags) error {
	renderer, err := runner.siteRenderer(html)
	if err != nil {
		return err
	}

	written, err := renderer.RenderDir(schemas.SchemasDir, html.HTMLDir)
	if err != nil {
		return fmt.Errorf("convert json schema to html: %w", err)
	}

	runner.logger().Info("rendering finished", slog.Int("pages", len(written)), slog.String("dir", html.HTMLDir))
	return nil
}

// runSourceToHTML runs extraction and rendering as one pipeline.
func (runner *cliRunner) runSourceToHTML(schemas schemasDirFlags, defs definitionFlags, html htmlFlags) error {
	extractor, err := runner.extractor(schemas, defs)
	if err != nil {
		return err
	}

	renderer, err := runner.siteRenderer(html)
	if err != nil {
		return err
	}

	pipeline := schemadoc.Pipeline{
		Extractor: extractor,
		Renderer:  renderer,
		HTMLDir:   html.HTMLDir,
	}

	result, err := pipeline.Run()
	if err != nil {
		return fmt.Errorf("convert definitions to html: %w", err)
	}

	runner.logger().Info("pipeline finished",
		slog.Int("schemas", len(result.Schemas)),
		slog.Int("pages", len(result.Pages)),
		slog.String("dir", html.HTMLDir),
	)

	return nil
}

// extractor builds the extractor for the selected definitions and validated example values.
func (runner *cliRunner) extractor(schemas schemasDirFlags, defs definitionFlags) (schemadoc.Extractor, error) {
	values := definitions.ExampleValues{
		BaseDomain:                       defs.BaseDomain,
		AuthenticationProviderURL:        defs.AuthProviderURL,
		AuthenticationProviderEndUserURL: defs.AuthProviderEndUserURL,
		ConsentProviderURL:               defs.ConsentProviderURL,
		ACRValues:                        defs.ACRValues,
	}

	if err := values.Validate(); err != nil {
		return schemadoc.Extractor{}, fmt.Errorf("example values: %w", err)
	}

	return schemadoc.Extractor{
		Registry:  definitions.Default(),
		Values:    values,
		OutputDir: schemas.SchemasDir,
		Only:      defs.Only,
		Logger:    runner.logger(),
	}, nil
}

// siteRenderer builds the site renderer from defaults, the config file and explicit flags, in that order.
func (runner *cliRunner) siteRenderer(html htmlFlags) (schemadoc.SiteRenderer, error) {
	cfg, err := html.generationConfig()
	if err != nil {
		return schemadoc.SiteRenderer{}, err
	}

	runner.logger().Debug("generation config",
		slog.String("template", cfg.TemplateName),
		slog.String("template_file", cfg.CustomTemplatePath),
		slog.Bool("expand_buttons", cfg.ExpandButtons),
		slog.Bool("with_footer", cfg.WithFooter),
	)

	return schemadoc.SiteRenderer{Config: cfg, Logger: runner.logger()}, nil
}

// generationConfig layers explicitly set flags over the optional config file.
func (html htmlFlags) generationConfig() (schemadoc.GenerationConfig, error) {
	cfg := schemadoc.DefaultGenerationConfig()
	if path := strings.TrimSpace(html.ConfigPath); path != "" {
		loaded, err := schemadoc.LoadGenerationConfig(path, cfg)
		if err != nil {
			return cfg, err
		}

		cfg = loaded
	}

	if html.TemplateName != "" {
		cfg.TemplateName = html.TemplateName
	}

	if html.TemplatePath != "" {
		cfg.CustomTemplatePath = html.TemplatePath
	}

	if html.HubURL != "" {
		cfg.DocumentationHubURL = html.HubURL
	}

	cfg.FilesToCopy = append(cfg.FilesToCopy, html.ExtraFiles...)

	if html.CollapseLongExamples {
		cfg.CollapseLongExamples = true
	}

	if html.NoExpandButtons {
		cfg.ExpandButtons = false
	}

	if html.FooterTime {
		cfg.FooterShowTime = true
	}

	if html.NoFooter {
		cfg.WithFooter = false
	}

	return cfg, nil
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := schemadoc.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput("template", outputPath, []byte(tpl))
}

// runExample writes an example payload generated from the input schema.
func (runner *cliRunner) runExample(mode schemadoc.ExampleMode, format schemadoc.ExampleFormat, inputPath, outputPath string) error {
	schemaBytes, sourcePath, err := runner.readSchemaInput(inputPath)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	draftURI := extractSchemaDraftURI(schemaBytes)
	if draft := schemadoc.DetectDraft(draftURI); draftURI == "" {
		runner.logger().Warn("schema has no $schema value; draft support is unknown", slog.String("source", sourcePath))
	} else if !draft.Supported {
		runner.logger().Warn("unsupported $schema value", slog.String("source", sourcePath), slog.String("schema", draftURI))
	}

	example, err := schemadoc.GenerateExample(schemaBytes, mode, format)
	if err != nil {
		return fmt.Errorf("generate example: %w", err)
	}

	return runner.writeOutput("example", outputPath, example)
}

// writeOutput writes data to stdout, or to outputPath when set.
func (runner *cliRunner) writeOutput(kind, outputPath string, data []byte) error {
	if strings.TrimSpace(outputPath) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", kind, err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", kind, outputPath, err)
	}

	return nil
}

// readSchemaInput reads schema from file path or stdin and returns source marker.
func (runner *cliRunner) readSchemaInput(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read schema file %q: %w", path, err)
		}

		return data, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read schema from stdin: empty input")
	}

	return data, "(stdin)", nil
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.SourceToJSON.runner = runner
	options.SchemaToHTML.runner = runner
	options.SourceToHTML.runner = runner
	options.Template.runner = runner
	options.SchemaExample.runner = runner
	runner.options = options

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"convert-src-to-json-schema": strings.TrimSpace(fmt.Sprintf(`
Write one JSON Schema file per registered definition into --schemas-dir.
File names are the kebab-case definition names, for example consent-token.json.
Example values (domains and provider URLs) only appear in the examples and are never contacted.
The run stops at the first failing definition.

Examples:
> $ %s convert-src-to-json-schema --schemas-dir schemas
> $ %s convert-src-to-json-schema --only consent_token --base-domain example.org
`, programName, programName)),
		"convert-json-schema-to-html": strings.TrimSpace(fmt.Sprintf(`
Render every *.json file directly inside --schemas-dir into --html-dir.
Each schema becomes <name>.html; template assets and --extra-file entries are copied next to the pages.
Flags win over the --config file, which wins over the defaults.

Examples:
> $ %s convert-json-schema-to-html --schemas-dir schemas --html-dir html
> $ %s convert-json-schema-to-html -t flat --no-footer --config docs.yaml
`, programName, programName)),
		"convert-src-to-html": strings.TrimSpace(fmt.Sprintf(`
Run convert-src-to-json-schema, then convert-json-schema-to-html.
Rendering is skipped when extraction fails.
Do not run two conversions against the same directories at the same time.

Examples:
> $ %s convert-src-to-html
> $ SCHEMAS_PATH=out/schemas HTML_PATH=out/html %s convert-src-to-html --footer-time
`, programName, programName)),
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in HTML page template text.
Built-in templates: %s.
Use it as a starting point for a --template-file.

Examples:
> $ %s template > page.html.gotmpl
> $ %s template -t flat templates/flat.html.gotmpl
`, strings.Join(schemadoc.BuiltinTemplateNames(), ", "), programName, programName)),
		"example": strings.TrimSpace(fmt.Sprintf(`
Generate an example payload from a JSON Schema.
Declared defaults and examples are used where present; placeholders fill the rest.
Reads schema from file argument or stdin; writes to file argument or stdout.

Examples:
> $ %s example schemas/consent-token.json
> $ cat schemas/party-configuration.json | %s example --mode required --format yaml
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// extractSchemaDraftURI returns raw $schema value from schema document.
func extractSchemaDraftURI(schemaBytes []byte) string {
	var root map[string]any
	if err := json.Unmarshal(schemaBytes, &root); err != nil {
		return ""
	}

	value, ok := root["$schema"].(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(value)
}

func printVersionInfo(output io.Writer) {
	_, _ = fmt.Fprintf(output, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
