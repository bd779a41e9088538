// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll builds example with all declared properties.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired builds example with required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode configures example generation property coverage.
type ExampleMode string

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// exampleScalarPlaceholders provides fallback values for scalar schema types.
var exampleScalarPlaceholders = map[string]any{
	"string":  "<string>",
	"number":  0,
	"integer": 0,
	"boolean": false,
	"null":    nil,
}

// exampleBuilder synthesizes a payload from a schema tree.
type exampleBuilder struct {
	doc        schemaDocument
	mode       ExampleMode
	activeRefs map[string]int
}

func newExampleBuilder(doc schemaDocument, mode ExampleMode) *exampleBuilder {
	return &exampleBuilder{doc: doc, mode: mode, activeRefs: make(map[string]int)}
}

// GenerateExample builds an example payload from schema bytes and encodes it in format.
// Declared defaults and examples win over synthesized placeholders at every level.
func GenerateExample(schemaBytes []byte, mode ExampleMode, format ExampleFormat) ([]byte, error) {
	mode, err := normalizeExampleMode(mode)
	if err != nil {
		return nil, err
	}

	format, err = normalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(schemaBytes)
	if err != nil {
		return nil, err
	}

	data, err := marshalExampleJSON(newExampleBuilder(doc, mode).buildNode(doc.Root))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExample, err)
	}

	if format == ExampleFormatJSON {
		return data, nil
	}

	out, err := yamlFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeExample, err)
	}

	return out, nil
}

func normalizeExampleMode(mode ExampleMode) (ExampleMode, error) {
	normalized := ExampleMode(strings.ToLower(strings.TrimSpace(string(mode))))
	switch normalized {
	case "":
		return ExampleModeAll, nil
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, mode)
	}
}

func normalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "":
		return ExampleFormatJSON, nil
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// buildNode builds the example value for one schema node.
func (builder *exampleBuilder) buildNode(node schemaValue) any {
	if node.Object == nil {
		return nil
	}

	object, release, ok := builder.resolve(node.Object)
	if release != nil {
		defer release()
	}

	if !ok {
		return nil
	}

	if value, found := explicitExampleValue(object); found {
		return cloneJSONValue(value)
	}

	properties, required := builder.objectShape(object)
	schemaType := schemaTypeName(object)
	switch {
	case schemaType == "object" || len(properties) > 0:
		return builder.buildObject(properties, required)
	case schemaType == "array" || hasArrayShape(object):
		return builder.buildArray(object)
	}

	if value, found := object["const"]; found {
		return cloneJSONValue(value)
	}

	if values := asSlice(object["enum"]); len(values) > 0 {
		return cloneJSONValue(values[0])
	}

	for _, keyword := range []string{"oneOf", "anyOf", "allOf"} {
		for _, raw := range asSlice(object[keyword]) {
			if schema, ok := toSchemaValue(raw); ok {
				return builder.buildNode(schema)
			}
		}
	}

	return exampleScalarPlaceholders[schemaType]
}

func (builder *exampleBuilder) buildObject(properties map[string]schemaValue, required []string) map[string]any {
	out := make(map[string]any, len(properties))

	keys := propertyOrder(required, properties)
	if builder.mode == ExampleModeRequired {
		keys = keys[:0]
		for _, key := range required {
			if _, ok := properties[key]; ok {
				keys = append(keys, key)
			}
		}
	}

	for _, key := range keys {
		out[key] = builder.buildNode(properties[key])
	}

	return out
}

func (builder *exampleBuilder) buildArray(object map[string]any) []any {
	if prefixItems := asSlice(object["prefixItems"]); len(prefixItems) > 0 {
		out := make([]any, 0, len(prefixItems))
		for _, raw := range prefixItems {
			item, _ := toSchemaValue(raw)
			out = append(out, builder.buildNode(item))
		}

		return out
	}

	if item, ok := toSchemaValue(object["items"]); ok {
		return []any{builder.buildNode(item)}
	}

	return []any{}
}

// objectShape merges local properties with allOf overlays. Local keys win.
func (builder *exampleBuilder) objectShape(object map[string]any) (map[string]schemaValue, []string) {
	properties := mapSchemaValues(object["properties"])
	required := asStringSlice(object["required"])

	for _, raw := range asSlice(object["allOf"]) {
		schema, ok := toSchemaValue(raw)
		if !ok || schema.Object == nil {
			continue
		}

		nested, release, ok := builder.resolve(schema.Object)
		if ok {
			nestedProperties, nestedRequired := builder.objectShape(nested)
			for key, value := range nestedProperties {
				if properties == nil {
					properties = make(map[string]schemaValue)
				}

				if _, exists := properties[key]; !exists {
					properties[key] = value
				}
			}

			for _, key := range nestedRequired {
				if !isRequired(required, key) {
					required = append(required, key)
				}
			}
		}

		if release != nil {
			release()
		}
	}

	return properties, required
}

// resolve follows a local $ref and overlays sibling keywords on the target.
// It reports false when the reference is already being expanded.
func (builder *exampleBuilder) resolve(object map[string]any) (map[string]any, func(), bool) {
	ref := strings.TrimSpace(asString(object["$ref"]))
	if ref == "" {
		return object, nil, true
	}

	siblings := make(map[string]any, len(object))
	for key, value := range object {
		if key != "$ref" {
			siblings[key] = value
		}
	}

	raw, ok := resolveJSONPointer(builder.doc.RawKeywords, ref)
	target, isSchema := toSchemaValue(raw)
	if !ok || !isSchema || target.Object == nil {
		return siblings, nil, true
	}

	if builder.activeRefs[ref] > 0 {
		return nil, nil, false
	}

	builder.activeRefs[ref]++
	release := func() {
		builder.activeRefs[ref]--
		if builder.activeRefs[ref] <= 0 {
			delete(builder.activeRefs, ref)
		}
	}

	merged := make(map[string]any, len(target.Object)+len(siblings))
	maps.Copy(merged, target.Object)
	maps.Copy(merged, siblings)

	nested, nestedRelease, ok := builder.resolve(merged)
	if nestedRelease == nil {
		return nested, release, ok
	}

	return nested, func() {
		nestedRelease()
		release()
	}, ok
}

// resolveJSONPointer resolves a local JSON pointer against the root document.
func resolveJSONPointer(root map[string]any, ref string) (any, bool) {
	if root == nil {
		return nil, false
	}

	if ref == "#" {
		return root, true
	}

	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}

	var current any = root
	for token := range strings.SplitSeq(strings.TrimPrefix(ref, "#/"), "/") {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")

		switch typed := current.(type) {
		case map[string]any:
			next, exists := typed[token]
			if !exists {
				return nil, false
			}

			current = next
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(typed) {
				return nil, false
			}

			current = typed[index]
		default:
			return nil, false
		}
	}

	return current, true
}

// schemaTypeName returns the first non-null type from the "type" keyword.
func schemaTypeName(object map[string]any) string {
	if text := strings.ToLower(asString(object["type"])); text != "" {
		return text
	}

	hasNull := false
	for _, item := range asSlice(object["type"]) {
		text := strings.ToLower(asString(item))
		if text == "null" {
			hasNull = true
			continue
		}

		if text != "" {
			return text
		}
	}

	if hasNull {
		return "null"
	}

	return ""
}

func hasArrayShape(object map[string]any) bool {
	if _, ok := toSchemaValue(object["items"]); ok {
		return true
	}

	return len(asSlice(object["prefixItems"])) > 0
}

// explicitExampleValue prefers default, then examples, then the legacy example keyword.
func explicitExampleValue(object map[string]any) (any, bool) {
	if value, ok := object["default"]; ok {
		return value, true
	}

	if values := asSlice(object["examples"]); len(values) > 0 {
		return values[0], true
	}

	value, ok := object["example"]
	return value, ok
}

// cloneJSONValue deep-copies maps and slices used as generated payload values.
func cloneJSONValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneJSONValue(item)
		}

		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, cloneJSONValue(item))
		}

		return out
	default:
		return typed
	}
}

// marshalExampleJSON serializes example payload as pretty JSON.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// indentExampleJSON pretty-prints raw JSON while keeping its key order.
func indentExampleJSON(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, err
	}

	out.WriteByte('\n')
	return out.Bytes(), nil
}

// yamlFromJSON re-encodes a JSON document as block style YAML with the same key order.
func yamlFromJSON(data []byte) ([]byte, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	resetYAMLStyle(&document)

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(&document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// resetYAMLStyle drops the flow and quoting styles a JSON source leaves on every node.
func resetYAMLStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		resetYAMLStyle(child)
	}
}
