// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDetectDraftSupported(t *testing.T) {
	t.Parallel()

	cases := []string{
		"https://json-schema.org/draft/2020-12/schema",
		"https://json-schema.org/draft/2020-12/schema#",
		"2019-09",
		"http://json-schema.org/draft-07/schema",
		"https://json-schema.org/draft-06/schema/",
		"http://json-schema.org/draft-05/schema",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got := DetectDraft(input)
			if !got.Supported {
				t.Fatalf("draft %q should be supported: %+v", input, got)
			}
		})
	}
}

func TestDetectDraftUnsupported(t *testing.T) {
	t.Parallel()

	got := DetectDraft("https://json-schema.org/draft/2023-12/schema")
	if got.Supported {
		t.Fatalf("unexpected supported draft: %+v", got)
	}

	if got.Canonical != "https://json-schema.org/draft/2023-12/schema" {
		t.Fatalf("canonical = %q", got.Canonical)
	}

	if empty := DetectDraft("  "); empty.Supported || empty.Canonical != "" {
		t.Fatalf("empty draft = %+v", empty)
	}
}

func TestDefinitionOrderRootFirst(t *testing.T) {
	t.Parallel()

	order := definitionOrder(map[string]schemaValue{
		"Zulu":  {},
		"Root":  {},
		"Alpha": {},
	}, "Root")

	if got, want := strings.Join(order, ","), "Root,Alpha,Zulu"; got != want {
		t.Fatalf("definition order = %q, want %q", got, want)
	}

	order = definitionOrder(map[string]schemaValue{"Zulu": {}, "Alpha": {}}, "Missing")
	if got, want := strings.Join(order, ","), "Alpha,Zulu"; got != want {
		t.Fatalf("definition order without root = %q, want %q", got, want)
	}
}

func TestPropertyOrderRequiredThenOptionalSorted(t *testing.T) {
	t.Parallel()

	order := propertyOrder([]string{"b", "a", "b"}, map[string]schemaValue{
		"d": {},
		"c": {},
		"b": {},
		"a": {},
	})

	if got, want := strings.Join(order, ","), "b,a,c,d"; got != want {
		t.Fatalf("property order = %q, want %q", got, want)
	}
}

func TestHTMLAnchor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"AuthenticationProvider base_url": "authenticationprovider-base-url",
		"  Root  ":                        "root",
		"(Root)":                          "root",
		"consent.token/v2":                "consent-token-v2",
	}

	for input, want := range cases {
		if got := htmlAnchor(input); got != want {
			t.Fatalf("htmlAnchor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRenderSupportsDefinitionsKeyword(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"$ref": "#/definitions/Config",
		"definitions": map[string]any{
			"Config": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
				},
			},
		},
	}), Options{})

	assertContains(t, rendered, `id="def-config"`)
	assertContains(t, rendered, `id="prop-config-name"`)
	assertContains(t, rendered, "<code>name</code>")
}

func TestRenderSupportsRootWithoutDefinitions(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}), Options{})

	assertContains(t, rendered, `id="def-root"`)
	assertContains(t, rendered, `id="prop-root-name"`)
}

func TestRenderDocumentsBareRoot(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"description": "Bare root.",
	}), Options{})

	assertContains(t, rendered, `id="def-root"`)
	assertContains(t, rendered, "<h2>Properties</h2>")
}

func TestRenderInlineRootAlongsideDefs(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"type":     "object",
		"required": []any{"provider"},
		"properties": map[string]any{
			"provider": map[string]any{"$ref": "#/$defs/Provider"},
		},
		"$defs": map[string]any{
			"Provider": map[string]any{
				"type":     "object",
				"required": []any{"base_url"},
				"properties": map[string]any{
					"base_url": map[string]any{"type": "string", "format": "uri"},
				},
			},
		},
	}), Options{})

	rootAt := strings.Index(rendered, `id="def-root"`)
	providerAt := strings.Index(rendered, `id="def-provider"`)
	if rootAt < 0 || providerAt < 0 || rootAt > providerAt {
		t.Fatalf("root section must come before definitions: root=%d provider=%d", rootAt, providerAt)
	}

	assertContains(t, rendered, `<a href="#def-provider"><code>Provider</code></a>`)
	assertContains(t, rendered, "<code>provider.base_url</code>")
	assertContains(t, rendered, "<code>uri</code>")
}

func TestRenderIncludesBooleanAndReferences(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"$ref": "#/$defs/Config",
		"$defs": map[string]any{
			"Config": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"enabled": true,
					"target": map[string]any{
						"$ref":          "#/$defs/Target",
						"$dynamicRef":   "#/$defs/Dyn",
						"$recursiveRef": "#/$defs/Rec",
					},
				},
			},
			"Target": map[string]any{
				"type": "string",
			},
		},
	}), Options{})

	assertContains(t, rendered, `<th scope="row">Boolean schema</th><td>true</td>`)
	assertContains(t, rendered, `<th scope="row">Reference</th><td><a href="#def-target"><code>Target</code></a></td>`)
	assertContains(t, rendered, `<th scope="row">Dynamic reference</th><td><code>#/$defs/Dyn</code></td>`)
	assertContains(t, rendered, `<th scope="row">Recursive reference</th><td><code>#/$defs/Rec</code></td>`)
}

func TestRenderShowsResolvedPathsForReusedDefinitions(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"$ref": "#/$defs/Config",
		"$defs": map[string]any{
			"Config": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"spec": map[string]any{"$ref": "#/$defs/BuildSpec"},
				},
			},
			"BuildSpec": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"projects": map[string]any{
						"type": "object",
						"additionalProperties": map[string]any{
							"$ref": "#/$defs/ProjectConfig",
						},
					},
					"settings": map[string]any{"$ref": "#/$defs/BuildSettings"},
				},
			},
			"ProjectConfig": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"settings": map[string]any{"$ref": "#/$defs/BuildSettings"},
				},
			},
			"BuildSettings": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sign": map[string]any{"$ref": "#/$defs/SignOptions"},
				},
			},
			"SignOptions": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"enabled": map[string]any{"type": "boolean"},
				},
			},
		},
	}), Options{})

	assertContains(t, rendered, `id="prop-signoptions-enabled"`)
	assertContains(t, rendered, "Path: <code>spec.projects[].settings.sign.enabled</code>, <code>spec.settings.sign.enabled</code>")
}

func TestRenderIncludesKeywordCoverageSummaries(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{
				"type":      "string",
				"enum":      []any{"a", "b"},
				"minLength": 1,
				"pattern":   "^[a-z]+$",
				"x-order":   3,
			},
			"choice": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "integer"},
				},
				"if":   map[string]any{"type": "string"},
				"then": map[string]any{"minLength": 2},
			},
			"list": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}), Options{})

	assertContains(t, rendered, `<th scope="row">Allowed values</th><td><code>&#34;a&#34;</code>, <code>&#34;b&#34;</code></td>`)
	assertContains(t, rendered, "minLength=<code>1</code>")
	assertContains(t, rendered, "pattern=<code>&#34;^[a-z]+$&#34;</code>")
	assertContains(t, rendered, "x-order=<code>3</code>")
	assertContains(t, rendered, `<th scope="row">Composition</th><td>oneOf=2</td>`)
	assertContains(t, rendered, `<th scope="row">Conditional</th><td>if, then</td>`)
	assertContains(t, rendered, `<th scope="row">Items</th><td>schema of type <code>string</code></td>`)
}

func TestRenderDescriptionMarkdown(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"description": "Use **bold** and `code`.\n\n- one\n- two",
		"type":        "object",
		"properties": map[string]any{
			"jwks_uri": map[string]any{
				"type":        "string",
				"description": `See <a href="https://example.com/hsts" target="_blank">HSTS</a>.<br />Done.`,
			},
		},
	}), Options{})

	assertContains(t, rendered, "<strong>bold</strong>")
	assertContains(t, rendered, "<code>code</code>")
	assertContains(t, rendered, "<li>one</li>")
	assertContains(t, rendered, `<a href="https://example.com/hsts" target="_blank">HSTS</a>`)
	assertContains(t, rendered, "<br />Done.")
}

func TestRenderEscapesPlainText(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"title": "<script>alert(1)</script>",
		"type":  "object",
		"properties": map[string]any{
			"a<b": map[string]any{"type": "string"},
		},
	}), Options{})

	assertNotContains(t, rendered, "<script>alert(1)</script>")
	assertContains(t, rendered, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assertContains(t, rendered, "<code>a&lt;b</code>")
}

func TestRenderTitleFallbacks(t *testing.T) {
	t.Parallel()

	schema := minimalSchemaBytes(t, map[string]any{"title": "From Schema", "type": "object"})
	assertContains(t, renderString(t, schema, Options{}), "<title>From Schema</title>")
	assertContains(t, renderString(t, schema, Options{Title: "Override"}), "<title>Override</title>")

	untitled := minimalSchemaBytes(t, map[string]any{"type": "object"})
	assertContains(t, renderString(t, untitled, Options{}), "<title>schema reference</title>")
}

func TestRenderTemplates(t *testing.T) {
	t.Parallel()

	schema := minimalSchemaBytes(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	})

	js := renderString(t, schema, Options{})
	assertContains(t, js, `<script src="schema_doc.min.js" defer></script>`)
	assertContains(t, js, `<details class="property" id="prop-root-name">`)

	cfg := DefaultGenerationConfig()
	cfg.TemplateName = "FLAT"
	flat := renderString(t, schema, Options{Config: cfg})
	assertNotContains(t, flat, "schema_doc.min.js")
	assertContains(t, flat, `<h3 id="prop-root-name">Root.name</h3>`)
}

func TestRenderCustomTemplate(t *testing.T) {
	t.Parallel()

	templatePath := filepath.Join(t.TempDir(), "page.html.gotmpl")
	text := `<h1>{{ .Title }}</h1>{{ range .Definitions }}[{{ .Name }}:{{ range .Properties }}{{ .Name }} {{ end }}]{{ end }}`
	if err := os.WriteFile(templatePath, []byte(text), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg := DefaultGenerationConfig()
	cfg.CustomTemplatePath = templatePath
	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"title": "custom",
		"type":  "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	}), Options{Config: cfg})

	if rendered != "<h1>custom</h1>[Root:name ]" {
		t.Fatalf("unexpected custom render: %q", rendered)
	}
}

func TestRenderTemplateErrors(t *testing.T) {
	t.Parallel()

	schema := minimalSchemaBytes(t, map[string]any{"type": "object"})

	cfg := DefaultGenerationConfig()
	cfg.TemplateName = "table"
	if _, err := Render(schema, Options{Config: cfg}); !errors.Is(err, ErrUnknownBuiltinTemplate) {
		t.Fatalf("expected ErrUnknownBuiltinTemplate, got: %v", err)
	}

	cfg = DefaultGenerationConfig()
	cfg.CustomTemplatePath = filepath.Join(t.TempDir(), "missing.gotmpl")
	if _, err := Render(schema, Options{Config: cfg}); !errors.Is(err, ErrReadTemplate) {
		t.Fatalf("expected ErrReadTemplate, got: %v", err)
	}

	broken := filepath.Join(t.TempDir(), "broken.gotmpl")
	if err := os.WriteFile(broken, []byte("{{ .Title "), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg.CustomTemplatePath = broken
	if _, err := Render(schema, Options{Config: cfg}); !errors.Is(err, ErrParseTemplate) {
		t.Fatalf("expected ErrParseTemplate, got: %v", err)
	}
}

func TestRenderExpandButtons(t *testing.T) {
	t.Parallel()

	schema := minimalSchemaBytes(t, map[string]any{"type": "object"})
	assertContains(t, renderString(t, schema, Options{Config: DefaultGenerationConfig()}), "Expand all")

	cfg := DefaultGenerationConfig()
	cfg.ExpandButtons = false
	rendered := renderString(t, schema, Options{Config: cfg})
	assertNotContains(t, rendered, "Expand all")
	assertNotContains(t, rendered, "Collapse all")
}

func TestRenderCollapseLongExamples(t *testing.T) {
	t.Parallel()

	long := make(map[string]any, 20)
	for _, key := range strings.Split("a b c d e f g h i j k l m n o p q r s t", " ") {
		long[key] = key
	}

	short := map[string]any{"a": 1}

	cfg := DefaultGenerationConfig()
	cfg.CollapseLongExamples = true

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"type":     "object",
		"examples": []any{long, short},
	}), Options{Config: cfg})

	assertContains(t, rendered, "<summary>Example 1 (22 lines)</summary>")
	assertNotContains(t, rendered, "<summary>Example 2")

	cfg.CollapseLongExamples = false
	rendered = renderString(t, minimalSchemaBytes(t, map[string]any{
		"type":     "object",
		"examples": []any{long},
	}), Options{Config: cfg})

	assertNotContains(t, rendered, `<details class="example">`)
}

func TestRenderFooter(t *testing.T) {
	t.Parallel()

	schema := minimalSchemaBytes(t, map[string]any{"type": "object"})
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cfg := DefaultGenerationConfig()
	rendered := renderString(t, schema, Options{Config: cfg, GeneratedAt: at})
	assertContains(t, rendered, `Generated using <a href="https://github.com/testbed-fi/dataspace-schemadoc">dataspace-schemadoc</a></footer>`)

	cfg.FooterShowTime = true
	rendered = renderString(t, schema, Options{Config: cfg, GeneratedAt: at})
	assertContains(t, rendered, "dataspace-schemadoc</a> on 2026-01-02 at 03:04:05 UTC</footer>")

	local := at.In(time.FixedZone("EET", 2*60*60))
	rendered = renderString(t, schema, Options{Config: cfg, GeneratedAt: local})
	assertContains(t, rendered, "on 2026-01-02 at 03:04:05 UTC</footer>")
	assertNotContains(t, rendered, "&#43;")

	cfg.WithFooter = false
	rendered = renderString(t, schema, Options{Config: cfg, GeneratedAt: at})
	assertNotContains(t, rendered, "Generated using")
}

func TestRenderHubURL(t *testing.T) {
	t.Parallel()

	schema := minimalSchemaBytes(t, map[string]any{"type": "object"})
	assertNotContains(t, renderString(t, schema, Options{Config: DefaultGenerationConfig()}), `class="hub"`)

	cfg := DefaultGenerationConfig()
	cfg.DocumentationHubURL = "https://docs.testbed.fi"
	assertContains(t, renderString(t, schema, Options{Config: cfg}), `<a href="https://docs.testbed.fi">`)
}

func TestRenderSynthesizesExampleWhenMissing(t *testing.T) {
	t.Parallel()

	rendered := renderString(t, minimalSchemaBytes(t, map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "default": "synthesized-name"},
		},
	}), Options{})

	assertContains(t, rendered, "Example (generated from the schema)")
	assertContains(t, rendered, "synthesized-name")
}

func TestRenderDeclaredExampleKeepsKeyOrder(t *testing.T) {
	t.Parallel()

	schema := []byte(`{"type":"object","examples":[{"zeta_key":1,"alpha_key":2}]}`)
	rendered := renderString(t, schema, Options{})

	assertNotContains(t, rendered, "generated from the schema")

	zeta := strings.Index(rendered, "zeta_key")
	alpha := strings.Index(rendered, "alpha_key")
	if zeta < 0 || alpha < 0 || zeta > alpha {
		t.Fatalf("declared key order lost: zeta=%d alpha=%d", zeta, alpha)
	}

	assertContains(t, rendered, `data-format="yaml"`)
}

func TestRenderRejectsInvalidSchema(t *testing.T) {
	t.Parallel()

	if _, err := Render([]byte("{"), Options{}); !errors.Is(err, ErrDecodeSchema) {
		t.Fatalf("expected ErrDecodeSchema, got: %v", err)
	}

	if _, err := Render([]byte("[1]"), Options{}); !errors.Is(err, ErrSchemaRootType) {
		t.Fatalf("expected ErrSchemaRootType, got: %v", err)
	}

	if _, err := Render([]byte("{} {}"), Options{}); !errors.Is(err, ErrDecodeSchema) {
		t.Fatalf("expected ErrDecodeSchema for trailing data, got: %v", err)
	}
}

func TestRenderFileSetsSourcePath(t *testing.T) {
	t.Parallel()

	schemaPath := filepath.Join(t.TempDir(), "party-configuration.json")
	if err := os.WriteFile(schemaPath, minimalSchemaBytes(t, map[string]any{"type": "object"}), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	rendered, err := RenderFile(schemaPath, Options{Config: DefaultGenerationConfig()})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	assertContains(t, string(rendered), "<code>"+schemaPath+"</code>")

	if _, err := RenderFile(filepath.Join(t.TempDir(), "missing.json"), Options{}); !errors.Is(err, ErrReadSchemaFile) {
		t.Fatalf("expected ErrReadSchemaFile, got: %v", err)
	}
}

func TestBuiltinTemplates(t *testing.T) {
	t.Parallel()

	if got, want := strings.Join(BuiltinTemplateNames(), ","), "flat,js"; got != want {
		t.Fatalf("builtin names = %q, want %q", got, want)
	}

	for _, name := range []string{"js", " JS ", "flat"} {
		text, err := BuiltinTemplate(name)
		if err != nil {
			t.Fatalf("BuiltinTemplate(%q): %v", name, err)
		}

		assertContains(t, text, "<!DOCTYPE html>")
	}

	if _, err := BuiltinTemplate("list"); !errors.Is(err, ErrUnknownBuiltinTemplate) {
		t.Fatalf("expected ErrUnknownBuiltinTemplate, got: %v", err)
	}
}

func renderString(t *testing.T, schema []byte, opt Options) string {
	t.Helper()

	if opt.Config.TemplateName == "" && opt.Config.CustomTemplatePath == "" {
		opt.Config = DefaultGenerationConfig()
	}

	rendered, err := Render(schema, opt)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	return string(rendered)
}

func minimalSchemaBytes(t *testing.T, doc map[string]any) []byte {
	t.Helper()

	if _, ok := doc["$schema"]; !ok {
		doc["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	}

	if _, ok := doc["$id"]; !ok {
		doc["$id"] = "urn:test"
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal schema fixture: %v", err)
	}

	return data
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Fatalf("missing substring %q in:\n%s", needle, haystack)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if strings.Contains(haystack, needle) {
		t.Fatalf("unexpected substring %q in:\n%s", needle, haystack)
	}
}
