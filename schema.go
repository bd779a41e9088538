// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// schemaValue is one JSON Schema node, either an object or a boolean schema.
type schemaValue struct {
	Object map[string]any
	Bool   *bool
}

// isZero reports whether node carries neither object nor boolean form.
func (value schemaValue) isZero() bool {
	return value.Object == nil && value.Bool == nil
}

// schemaDocument is a decoded schema file with its top-level metadata.
type schemaDocument struct {
	Root        schemaValue
	Defs        map[string]schemaValue
	RawKeywords map[string]any
	ID          string
	Schema      string
	Ref         string
	Title       string
	Description string
	// Examples keep the key order they had on disk.
	Examples []json.RawMessage
	Draft    DraftInfo
}

// parseDocument decodes schema bytes. Numbers stay json.Number so integers survive.
func parseDocument(schemaBytes []byte) (schemaDocument, error) {
	decoder := json.NewDecoder(bytes.NewReader(schemaBytes))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return schemaDocument{}, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	if decoder.More() {
		return schemaDocument{}, fmt.Errorf("%w: trailing data after schema", ErrDecodeSchema)
	}

	root, ok := toSchemaValue(raw)
	if !ok {
		return schemaDocument{}, ErrSchemaRootType
	}

	doc := schemaDocument{Root: root}
	if root.Object == nil {
		doc.Draft = DetectDraft("")
		return doc, nil
	}

	object := root.Object
	doc.RawKeywords = object
	doc.ID = asString(object["$id"])
	if doc.ID == "" {
		doc.ID = asString(object["id"])
	}

	doc.Schema = asString(object["$schema"])
	doc.Ref = asString(object["$ref"])
	doc.Title = asString(object["title"])
	doc.Description = asString(object["description"])
	doc.Draft = DetectDraft(doc.Schema)
	doc.Examples = rawExamples(schemaBytes, object)

	defs := mapSchemaValues(object["definitions"])
	for name, value := range mapSchemaValues(object["$defs"]) {
		if defs == nil {
			defs = make(map[string]schemaValue)
		}

		defs[name] = value
	}

	doc.Defs = defs
	return doc, nil
}

// rawExamples returns root examples as raw JSON, preferring the on-disk encoding.
func rawExamples(schemaBytes []byte, object map[string]any) []json.RawMessage {
	var ordered struct {
		Examples []json.RawMessage `json:"examples"`
	}

	if err := json.Unmarshal(schemaBytes, &ordered); err == nil {
		return ordered.Examples
	}

	values := asSlice(object["examples"])
	if len(values) == 0 {
		return nil
	}

	out := make([]json.RawMessage, 0, len(values))
	for _, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			continue
		}

		out = append(out, data)
	}

	return out
}

// toSchemaValue converts decoded JSON into a schema node when it has schema shape.
func toSchemaValue(raw any) (schemaValue, bool) {
	switch typed := raw.(type) {
	case map[string]any:
		return schemaValue{Object: typed}, true
	case bool:
		value := typed
		return schemaValue{Bool: &value}, true
	default:
		return schemaValue{}, false
	}
}

// mapSchemaValues converts a keyword like "properties" into schema nodes.
func mapSchemaValues(raw any) map[string]schemaValue {
	object, ok := raw.(map[string]any)
	if !ok || len(object) == 0 {
		return nil
	}

	out := make(map[string]schemaValue, len(object))
	for key, value := range object {
		schema, ok := toSchemaValue(value)
		if !ok {
			continue
		}

		out[key] = schema
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func asString(raw any) string {
	value, _ := raw.(string)
	return value
}

func asSlice(raw any) []any {
	value, _ := raw.([]any)
	return value
}

func asBool(raw any) (bool, bool) {
	value, ok := raw.(bool)
	return value, ok
}

// asStringSlice keeps only non-empty string items.
func asStringSlice(raw any) []string {
	items := asSlice(raw)
	if len(items) == 0 {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(asString(item))
		if text == "" {
			continue
		}

		out = append(out, text)
	}

	return out
}

// sortedKeys returns deterministic sorted keys of a decoded JSON object.
func sortedKeys(values map[string]any) []string {
	out := make([]string, 0, len(values))
	for key := range values {
		out = append(out, key)
	}

	sort.Strings(out)
	return out
}
