// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightStyle is the chroma style used for example blocks.
const highlightStyle = "github"

// highlightFormatter writes inline styles.
var highlightFormatter = chromahtml.New(
	chromahtml.WithClasses(false),
	chromahtml.TabWidth(2),
)

// highlight renders source code as a highlighted <pre> block.
func highlight(source, language string) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrHighlight, language, err)
	}

	var out bytes.Buffer
	if err := highlightFormatter.Format(&out, style, iterator); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrHighlight, language, err)
	}

	return template.HTML(out.String()), nil
}
