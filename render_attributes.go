// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"html/template"
	"strconv"
	"strings"
)

// knownSchemaKeywords are rendered by a dedicated row or shown elsewhere on the page.
// Everything else is listed under "Other keywords".
var knownSchemaKeywords = map[string]struct{}{
	"$schema": {}, "$id": {}, "id": {}, "$ref": {}, "$dynamicRef": {}, "$recursiveRef": {},
	"$anchor": {}, "$dynamicAnchor": {}, "$recursiveAnchor": {}, "$comment": {},
	"$defs": {}, "definitions": {},

	"type": {}, "title": {}, "description": {}, "default": {}, "examples": {},
	"enum": {}, "const": {}, "format": {},

	"allOf": {}, "anyOf": {}, "oneOf": {}, "not": {}, "if": {}, "then": {}, "else": {},

	"properties": {}, "patternProperties": {}, "additionalProperties": {},
	"unevaluatedProperties": {}, "propertyNames": {}, "required": {},
	"dependentRequired": {}, "dependentSchemas": {}, "dependencies": {},
	"minProperties": {}, "maxProperties": {},

	"items": {}, "prefixItems": {}, "additionalItems": {}, "contains": {},
	"unevaluatedItems": {}, "minItems": {}, "maxItems": {}, "uniqueItems": {},
	"minContains": {}, "maxContains": {},

	"minimum": {}, "maximum": {}, "exclusiveMinimum": {}, "exclusiveMaximum": {},
	"multipleOf": {}, "minLength": {}, "maxLength": {}, "pattern": {},

	"readOnly": {}, "writeOnly": {}, "deprecated": {},
	"contentEncoding": {}, "contentMediaType": {}, "contentSchema": {},
}

// constraintKeywords are listed in this order in the "Constraints" row.
var constraintKeywords = []string{
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minLength", "maxLength", "pattern",
	"minItems", "maxItems", "uniqueItems", "minContains", "maxContains",
	"minProperties", "maxProperties",
}

// attributeList accumulates attribute rows in display order.
type attributeList []attributeView

func (list *attributeList) add(name, value string) {
	*list = append(*list, attributeView{Name: name, Value: template.HTML(value)})
}

func (list *attributeList) code(name, value string) {
	if value == "" {
		return
	}

	list.add(name, codeHTML(value))
}

// schemaAttributes renders the attribute rows for one schema node.
// required is nil for definitions and set for properties.
func schemaAttributes(node schemaValue, required *bool) []attributeView {
	var out attributeList

	if node.Object == nil {
		if required != nil {
			out.add("Required", yesNo(*required))
		}

		if node.Bool != nil {
			out.add("Boolean schema", strconv.FormatBool(*node.Bool))
		}

		return out
	}

	obj := node.Object
	out.code("Type", typeString(obj["type"]))
	if required != nil {
		out.add("Required", yesNo(*required))
	}

	if ref := asString(obj["$ref"]); ref != "" {
		out.add("Reference", referenceHTML(ref))
	}

	out.code("Dynamic reference", asString(obj["$dynamicRef"]))
	out.code("Recursive reference", asString(obj["$recursiveRef"]))
	out.code("Anchor", asString(obj["$anchor"]))
	out.code("Dynamic anchor", asString(obj["$dynamicAnchor"]))
	out.code("Recursive anchor", asString(obj["$recursiveAnchor"]))
	out.code("Title", asString(obj["title"]))

	if value, ok := obj["default"]; ok {
		out.add("Default", codeHTML(mustJSONInline(value)))
	}

	if enum := asSlice(obj["enum"]); len(enum) > 0 {
		out.add("Allowed values", jsonList(enum))
	}

	if value, ok := obj["const"]; ok {
		out.add("Const", codeHTML(mustJSONInline(value)))
	}

	if examples := asSlice(obj["examples"]); len(examples) > 0 {
		out.add("Examples", jsonList(examples))
	}

	out.code("Format", asString(obj["format"]))

	for _, flag := range []struct{ keyword, name string }{
		{"readOnly", "Read only"},
		{"writeOnly", "Write only"},
		{"deprecated", "Deprecated"},
	} {
		if value, ok := asBool(obj[flag.keyword]); ok {
			out.add(flag.name, yesNo(value))
		}
	}

	out.code("Content encoding", asString(obj["contentEncoding"]))
	out.code("Content media type", asString(obj["contentMediaType"]))

	for _, nested := range []struct{ keyword, name string }{
		{"contentSchema", "Content schema"},
		{"items", "Items"},
		{"prefixItems", "Prefix items"},
		{"additionalItems", "Additional items"},
		{"contains", "Contains"},
		{"unevaluatedItems", "Unevaluated items"},
	} {
		if value, ok := obj[nested.keyword]; ok {
			out.add(nested.name, summarizeSchemaLike(value))
		}
	}

	if properties := mapSchemaValues(obj["properties"]); len(properties) > 0 {
		out.add("Properties", strconv.Itoa(len(properties)))
	}

	if properties := mapSchemaValues(obj["patternProperties"]); len(properties) > 0 {
		out.add("Pattern properties", strconv.Itoa(len(properties)))
	}

	for _, nested := range []struct{ keyword, name string }{
		{"additionalProperties", "Additional properties"},
		{"unevaluatedProperties", "Unevaluated properties"},
		{"propertyNames", "Property names"},
	} {
		if value, ok := obj[nested.keyword]; ok {
			out.add(nested.name, summarizeSchemaLike(value))
		}
	}

	if value, ok := obj["dependentRequired"]; ok {
		out.add("Dependent required", codeHTML(mustJSONInline(value)))
	}

	if values := mapSchemaValues(obj["dependentSchemas"]); len(values) > 0 {
		out.add("Dependent schemas", strconv.Itoa(len(values)))
	}

	if value, ok := obj["dependencies"]; ok {
		out.add("Dependencies", codeHTML(mustJSONInline(value)))
	}

	if composition := compositionSummary(obj); composition != "" {
		out.add("Composition", template.HTMLEscapeString(composition))
	}

	if conditional := conditionalSummary(obj); conditional != "" {
		out.add("Conditional", template.HTMLEscapeString(conditional))
	}

	if value, ok := obj["not"]; ok {
		out.add("Not", summarizeSchemaLike(value))
	}

	if constraints := keywordPairs(obj, constraintKeywords); len(constraints) > 0 {
		out.add("Constraints", strings.Join(constraints, "<br>"))
	}

	out.code("Comment", asString(obj["$comment"]))

	if other := otherKeywordList(obj); len(other) > 0 {
		out.add("Other keywords", strings.Join(other, "<br>"))
	}

	return out
}

// referenceHTML links local definition references to their section.
func referenceHTML(ref string) string {
	name := rootDefinitionName(ref)
	if name == "" {
		return codeHTML(ref)
	}

	return `<a href="#` + template.HTMLEscapeString(definitionAnchor(name)) + `">` + codeHTML(name) + `</a>`
}

// summarizeSchemaLike provides compact HTML for a nested schema value.
func summarizeSchemaLike(value any) string {
	switch typed := value.(type) {
	case bool:
		return "boolean schema " + codeHTML(strconv.FormatBool(typed))
	case map[string]any:
		if ref := asString(typed["$ref"]); ref != "" {
			return "reference " + referenceHTML(ref)
		}

		if ref := asString(typed["$dynamicRef"]); ref != "" {
			return "dynamic reference " + codeHTML(ref)
		}

		if ref := asString(typed["$recursiveRef"]); ref != "" {
			return "recursive reference " + codeHTML(ref)
		}

		if typeText := typeString(typed["type"]); typeText != "" {
			return "schema of type " + codeHTML(typeText)
		}

		return "inline schema"
	case []any:
		return "schema list (" + strconv.Itoa(len(typed)) + ")"
	default:
		return codeHTML(mustJSONInline(typed))
	}
}

// compositionSummary renders one-line summary for allOf/anyOf/oneOf combinations.
func compositionSummary(node map[string]any) string {
	items := make([]string, 0, 3)
	for _, keyword := range []string{"oneOf", "anyOf", "allOf"} {
		if values := asSlice(node[keyword]); len(values) > 0 {
			items = append(items, keyword+"="+strconv.Itoa(len(values)))
		}
	}

	return strings.Join(items, "; ")
}

// conditionalSummary renders one-line summary for if/then/else usage.
func conditionalSummary(node map[string]any) string {
	items := make([]string, 0, 3)
	for _, keyword := range []string{"if", "then", "else"} {
		if _, ok := node[keyword]; ok {
			items = append(items, keyword)
		}
	}

	return strings.Join(items, ", ")
}

// keywordPairs renders present keywords as escaped key=value items in the given order.
func keywordPairs(node map[string]any, keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := node[key]
		if !ok {
			continue
		}

		out = append(out, template.HTMLEscapeString(key)+"="+codeHTML(mustJSONInline(value)))
	}

	return out
}

// otherKeywordList lists keywords that have no dedicated row, sorted.
func otherKeywordList(node map[string]any) []string {
	other := make([]string, 0)
	for _, key := range sortedKeys(node) {
		if _, ok := knownSchemaKeywords[key]; !ok {
			other = append(other, key)
		}
	}

	return keywordPairs(node, other)
}

// typeString converts the "type" keyword to display text.
func typeString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return mustJSONInline(typed)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

// jsonList renders JSON values as comma-separated code elements.
func jsonList(values []any) string {
	parts := make([]string, 0, len(values))
	for _, item := range values {
		parts = append(parts, codeHTML(mustJSONInline(item)))
	}

	return strings.Join(parts, ", ")
}
