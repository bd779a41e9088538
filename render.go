// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

const (
	// defaultTitle is used when neither caller nor schema provide a title.
	defaultTitle = "schema reference"
	// longExampleLines is the line count above which examples may be collapsed.
	longExampleLines = 15
	// footerTimeLayout formats the generation time, converted to UTC, in the page footer.
	footerTimeLayout = "2006-01-02 at 15:04:05 MST"

	generatorName = "dataspace-schemadoc"
	generatorURL  = "https://github.com/testbed-fi/dataspace-schemadoc"
)

// Options configures rendering of a single page.
type Options struct {
	// Title overrides the schema title.
	Title string
	// SourcePath is shown as the page source. Defaults to "(memory)".
	SourcePath string
	// Config holds the generation options. Use DefaultGenerationConfig as a base.
	Config GenerationConfig
	// GeneratedAt is shown in the footer when Config.FooterShowTime is set.
	// The current time is used when zero.
	GeneratedAt time.Time
}

// RenderFile reads schema from file and renders an HTML page.
func RenderFile(path string, opt Options) ([]byte, error) {
	schemaBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return Render(schemaBytes, opt)
}

// Render converts schema bytes into an HTML page using the configured template.
func Render(schemaBytes []byte, opt Options) ([]byte, error) {
	page, err := resolveTemplate(opt.Config)
	if err != nil {
		return nil, err
	}

	return page.render(schemaBytes, opt)
}

// render builds the view for one schema and executes the page template.
func (page *pageTemplate) render(schemaBytes []byte, opt Options) ([]byte, error) {
	doc, err := parseDocument(schemaBytes)
	if err != nil {
		return nil, err
	}

	view, err := buildPageView(doc, opt)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := page.tmpl.Execute(&out, view); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecuteHTMLTemplate, err)
	}

	return out.Bytes(), nil
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplates))
	for name := range builtInTemplates {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns the page template text of one built-in template.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	builtin, ok := builtInTemplates[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(builtin.dir + "/" + pageTemplateFile)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadTemplate, err)
	}

	return string(data), nil
}
