// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	templateJSName   = "js"
	templateFlatName = "flat"
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = templateJSName
	// pageTemplateFile is the page template inside each built-in template directory.
	pageTemplateFile = "base.html.gotmpl"
)

// templateFS stores built-in page templates and their static assets.
//
//go:embed templates/js/* templates/flat/*
var templateFS embed.FS

// builtinTemplate is one embedded template directory.
type builtinTemplate struct {
	dir string
	// assets are always copied next to rendered pages.
	assets []string
}

var builtInTemplates = map[string]builtinTemplate{
	templateJSName: {
		dir:    "templates/js",
		assets: []string{"schema_doc.css", "schema_doc.min.js"},
	},
	templateFlatName: {
		dir:    "templates/flat",
		assets: []string{"schema_doc.css"},
	},
}

// pageTemplate is a parsed page template with the directory its assets live in.
type pageTemplate struct {
	name       string
	tmpl       *template.Template
	dir        fs.FS
	baseAssets []string
}

// resolveTemplate loads the custom template when configured, the named built-in one otherwise.
// A custom template has no base assets; its directory only serves files_to_copy.
func resolveTemplate(cfg GenerationConfig) (*pageTemplate, error) {
	if customPath := strings.TrimSpace(cfg.CustomTemplatePath); customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrReadTemplate, customPath, err)
		}

		parsed, err := template.New("custom").Funcs(templateFuncs()).Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrParseTemplate, customPath, err)
		}

		return &pageTemplate{
			name: customPath,
			tmpl: parsed,
			dir:  os.DirFS(filepath.Dir(customPath)),
		}, nil
	}

	name := normalizeTemplateName(cfg.TemplateName)
	if name == "" {
		name = defaultTemplateName
	}

	text, err := BuiltinTemplate(name)
	if err != nil {
		return nil, err
	}

	parsed, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParseTemplate, name, err)
	}

	builtin := builtInTemplates[name]
	dir, err := fs.Sub(templateFS, builtin.dir)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadTemplate, name, err)
	}

	return &pageTemplate{
		name:       name,
		tmpl:       parsed,
		dir:        dir,
		baseAssets: builtin.assets,
	}, nil
}

// normalizeTemplateName normalizes built-in template identifiers.
func normalizeTemplateName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// templateFuncs provides utility functions available inside page templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"anchor": htmlAnchor,
		"join":   strings.Join,
		"jsonInline": func(value any) string {
			return mustJSONInline(value)
		},
	}
}

// definitionAnchor is the element id of a definition section.
func definitionAnchor(name string) string {
	return "def-" + htmlAnchor(name)
}

// propertyAnchor is the element id of a property inside a definition.
func propertyAnchor(definition, property string) string {
	return "prop-" + htmlAnchor(definition+" "+property)
}

// htmlAnchor converts text into a lowercase dash separated element id.
func htmlAnchor(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))

	var out strings.Builder
	out.Grow(len(trimmed))

	lastDash := false
	for _, r := range trimmed {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			out.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r), r == '-', r == '_', r == '.', r == '/':
			if lastDash || out.Len() == 0 {
				continue
			}

			out.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(out.String(), "-")
}
