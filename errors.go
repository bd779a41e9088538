// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import "errors"

var (
	// ErrMissingRoot is returned when a definition declares no root shape.
	ErrMissingRoot = errors.New("definition has no root shape")
	// ErrLoadDefinition is returned when a definition constructor fails.
	ErrLoadDefinition = errors.New("load definition")
	// ErrUnknownField is returned when a field table names a property the shape does not have.
	ErrUnknownField = errors.New("unknown documented field")
	// ErrEncodeSchema is returned when a reflected schema cannot be encoded.
	ErrEncodeSchema = errors.New("encode schema")
	// ErrWriteSchema is returned when a schema file cannot be written.
	ErrWriteSchema = errors.New("write schema")
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema JSON decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not object or boolean.
	ErrSchemaRootType = errors.New("schema root must be object or boolean")
	// ErrExecuteHTMLTemplate is returned when page template execution fails.
	ErrExecuteHTMLTemplate = errors.New("execute html template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadTemplate is returned when template file loading fails.
	ErrReadTemplate = errors.New("read template")
	// ErrParseTemplate is returned when template parsing fails.
	ErrParseTemplate = errors.New("parse template")
	// ErrHighlight is returned when example syntax highlighting fails.
	ErrHighlight = errors.New("highlight example")
	// ErrUnknownExampleMode is returned when example generation mode is not supported.
	ErrUnknownExampleMode = errors.New("unknown example mode")
	// ErrUnknownExampleFormat is returned when example generation format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExample is returned when an example payload cannot be encoded.
	ErrEncodeExample = errors.New("encode example")
	// ErrWritePage is returned when a rendered page cannot be written.
	ErrWritePage = errors.New("write html page")
	// ErrCopyAsset is returned when a template asset cannot be copied.
	ErrCopyAsset = errors.New("copy template asset")
	// ErrReadGenerationConfig is returned when the generation config file cannot be read.
	ErrReadGenerationConfig = errors.New("read generation config")
	// ErrDecodeGenerationConfig is returned when the generation config file is malformed.
	ErrDecodeGenerationConfig = errors.New("decode generation config")
)
