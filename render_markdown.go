// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Descriptions are authored in CommonMark and may embed raw HTML links.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		)
	})

	return markdownInstance
}

// renderDescription converts a schema description into trusted HTML.
// Text that fails to convert is shown escaped instead.
func renderDescription(text string) template.HTML {
	text = strings.TrimSpace(normalizeLineEndings(text))
	if text == "" {
		return ""
	}

	var out bytes.Buffer
	if err := getMarkdown().Convert([]byte(text), &out); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}

	return template.HTML(strings.TrimSpace(out.String()))
}

// orNone renders empty metadata values as explicit (none) marker.
func orNone(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "(none)"
	}

	return value
}

// mustJSONInline marshals values as single-line JSON text.
func mustJSONInline(value any) string {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return fmt.Sprintf("%v", value)
	}

	return strings.TrimSuffix(out.String(), "\n")
}

// sanitizeText trims and squashes repeated whitespace in plain text fields.
func sanitizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	return strings.Join(strings.Fields(text), " ")
}

// normalizeLineEndings converts CRLF and CR line endings into LF.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// codeHTML wraps escaped text into an inline code element.
func codeHTML(text string) string {
	return "<code>" + template.HTMLEscapeString(text) + "</code>"
}
