// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"encoding/json"
	"fmt"
	"html/template"
	"slices"
	"sort"
	"strings"
	"time"
)

// rootDefinitionKey names the inline root schema among its $defs.
const rootDefinitionKey = "Root"

// pageView is the root view model passed to HTML templates.
type pageView struct {
	Title              string
	Description        template.HTML
	SourceSchema       string
	SchemaID           string
	SchemaDraft        string
	SchemaDraftSupport string
	HubURL             string
	ExpandButtons      bool
	Examples           []exampleView
	ExampleSynthesized bool
	Definitions        []definitionView
	Footer             *footerView
}

// exampleView is one highlighted example payload.
type exampleView struct {
	Number    int
	Lines     int
	Collapsed bool
	JSON      template.HTML
	// YAML is only set on the first example.
	YAML template.HTML
}

// definitionView is one schema definition section, root first.
type definitionView struct {
	ID            string
	Name          string
	IsRoot        bool
	Description   template.HTML
	Attributes    []attributeView
	Properties    []propertyView
	HasProperties bool
}

// propertyView is one property inside a definition.
type propertyView struct {
	ID          string
	Name        string
	Heading     string
	Required    bool
	Paths       []string
	Description template.HTML
	Attributes  []attributeView
}

// attributeView is a single rendered name/value metadata row.
type attributeView struct {
	Name  string
	Value template.HTML
}

type footerView struct {
	Generator string
	URL       string
	Time      string
}

// definitionEdge is one property path from a definition to a referenced definition.
type definitionEdge struct {
	Path   string
	Target string
}

// buildPageView prepares data for page template rendering.
func buildPageView(doc schemaDocument, opt Options) (pageView, error) {
	title := sanitizeText(opt.Title)
	if title == "" {
		title = sanitizeText(doc.Title)
	}

	if title == "" {
		title = defaultTitle
	}

	sourcePath := strings.TrimSpace(opt.SourcePath)
	if sourcePath == "" {
		sourcePath = "(memory)"
	}

	definitions, rootName := renderDefinitions(doc)
	defOrder := definitionOrder(definitions, rootName)

	cfg := opt.Config
	view := pageView{
		Title:              title,
		Description:        renderDescription(doc.Description),
		SourceSchema:       sourcePath,
		SchemaID:           orNone(doc.ID),
		SchemaDraft:        orNone(doc.Schema),
		SchemaDraftSupport: draftSupportText(doc.Draft),
		HubURL:             strings.TrimSpace(cfg.DocumentationHubURL),
		ExpandButtons:      cfg.ExpandButtons,
		Definitions:        make([]definitionView, 0, len(defOrder)),
	}

	examples, synthesized, err := buildExampleViews(doc, cfg.CollapseLongExamples)
	if err != nil {
		return pageView{}, err
	}

	view.Examples = examples
	view.ExampleSynthesized = synthesized

	if cfg.WithFooter {
		view.Footer = &footerView{Generator: generatorName, URL: generatorURL}
		if cfg.FooterShowTime {
			generatedAt := opt.GeneratedAt
			if generatedAt.IsZero() {
				generatedAt = time.Now()
			}

			view.Footer.Time = generatedAt.UTC().Format(footerTimeLayout)
		}
	}

	rootDefinition := defOrder[0]
	definitionPaths := buildDefinitionPaths(definitions, rootDefinition)
	for _, defName := range defOrder {
		node := definitions[defName]
		if node.isZero() {
			continue
		}

		isRoot := defName == rootDefinition
		definition := definitionView{
			ID:     definitionAnchor(defName),
			Name:   defName,
			IsRoot: isRoot,
		}

		if isRoot && defName == rootDefinitionKey && node.Object != nil {
			// title, description and examples are already shown at the top of the page
			definition.Attributes = schemaAttributes(withoutKeywords(node, "title", "description", "examples"), nil)
		} else {
			definition.Description = renderDescription(nodeDescription(node))
			definition.Attributes = schemaAttributes(node, nil)
		}

		properties := nodeProperties(node)
		required := nodeRequired(node)
		order := propertyOrder(required, properties)
		definition.HasProperties = len(order) > 0
		definition.Properties = make([]propertyView, 0, len(order))

		for _, propName := range order {
			prop := properties[propName]
			propRequired := isRequired(required, propName)

			definition.Properties = append(definition.Properties, propertyView{
				ID:          propertyAnchor(defName, propName),
				Name:        propName,
				Heading:     defName + "." + propertyHeadingName(propName, prop),
				Required:    propRequired,
				Paths:       buildPropertyPaths(definitionPaths[defName], propName, isRoot),
				Description: renderDescription(nodeDescription(prop)),
				Attributes:  schemaAttributes(prop, &propRequired),
			})
		}

		view.Definitions = append(view.Definitions, definition)
	}

	return view, nil
}

// buildExampleViews highlights declared examples, or one synthesized from the schema.
func buildExampleViews(doc schemaDocument, collapseLong bool) ([]exampleView, bool, error) {
	raws := doc.Examples
	synthesized := false
	if len(raws) == 0 {
		data, err := marshalExampleJSON(newExampleBuilder(doc, ExampleModeAll).buildNode(doc.Root))
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrEncodeExample, err)
		}

		raws = []json.RawMessage{data}
		synthesized = true
	}

	out := make([]exampleView, 0, len(raws))
	for index, raw := range raws {
		pretty, err := indentExampleJSON(raw)
		if err != nil {
			return nil, false, fmt.Errorf("%w %d: %w", ErrEncodeExample, index+1, err)
		}

		example := exampleView{
			Number: index + 1,
			Lines:  strings.Count(string(pretty), "\n"),
		}

		example.Collapsed = collapseLong && example.Lines > longExampleLines
		if example.JSON, err = highlight(string(pretty), "json"); err != nil {
			return nil, false, err
		}

		if index == 0 {
			yamlData, err := yamlFromJSON(pretty)
			if err != nil {
				return nil, false, fmt.Errorf("%w: %w", ErrEncodeExample, err)
			}

			if example.YAML, err = highlight(string(yamlData), "yaml"); err != nil {
				return nil, false, err
			}
		}

		out = append(out, example)
	}

	return out, synthesized, nil
}

// withoutKeywords returns a shallow copy of node without the named keywords.
func withoutKeywords(node schemaValue, keywords ...string) schemaValue {
	object := make(map[string]any, len(node.Object))
	for key, value := range node.Object {
		if slices.Contains(keywords, key) {
			continue
		}

		object[key] = value
	}

	return schemaValue{Object: object}
}

// propertyHeadingName prefers the referenced definition name over the property key.
func propertyHeadingName(key string, prop schemaValue) string {
	if prop.Object == nil {
		return key
	}

	if refName := rootDefinitionName(asString(prop.Object["$ref"])); refName != "" {
		return refName
	}

	return key
}

// buildDefinitionPaths walks references breadth first and records every JSON path
// at which each definition is reachable from the root.
func buildDefinitionPaths(definitions map[string]schemaValue, rootDefinition string) map[string][]string {
	if _, ok := definitions[rootDefinition]; !ok {
		return nil
	}

	type pathState struct {
		definition string
		prefix     string
		depth      int
	}

	const maxDepth = 20

	paths := map[string][]string{rootDefinition: {""}}
	seen := make(map[string]struct{})
	queue := []pathState{{definition: rootDefinition}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth >= maxDepth {
			continue
		}

		for _, edge := range definitionEdges(definitions[current.definition]) {
			if edge.Target == rootDefinition {
				continue
			}

			prefix := appendPath(current.prefix, edge.Path)
			key := edge.Target + "\x00" + prefix
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}
			paths[edge.Target] = append(paths[edge.Target], prefix)
			queue = append(queue, pathState{definition: edge.Target, prefix: prefix, depth: current.depth + 1})
		}
	}

	for name := range paths {
		sort.Strings(paths[name])
	}

	return paths
}

// buildPropertyPaths builds sorted unique JSON paths for one property.
// Top-level root properties are their own path and get none.
func buildPropertyPaths(basePaths []string, propertyName string, hideRootPath bool) []string {
	propertyName = strings.TrimSpace(propertyName)
	if propertyName == "" {
		return nil
	}

	var out []string
	for _, base := range basePaths {
		path := appendPath(base, propertyName)
		if hideRootPath && path == propertyName {
			continue
		}

		if !slices.Contains(out, path) {
			out = append(out, path)
		}
	}

	sort.Strings(out)
	return out
}

// definitionEdges returns sorted edges from the properties of one definition.
func definitionEdges(node schemaValue) []definitionEdge {
	properties := nodeProperties(node)
	if len(properties) == 0 {
		return nil
	}

	edges := make(map[string]definitionEdge)
	for _, name := range sortedSchemaValueKeys(properties) {
		collectDefinitionEdges(properties[name], name, edges)
	}

	keys := make([]string, 0, len(edges))
	for key := range edges {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]definitionEdge, 0, len(keys))
	for _, key := range keys {
		out = append(out, edges[key])
	}

	return out
}

// collectDefinitionEdges collects references under one schema node.
// Array and map item schemas extend the path with "[]".
func collectDefinitionEdges(schema schemaValue, path string, edges map[string]definitionEdge) {
	object := schema.Object
	if object == nil {
		return
	}

	if target := rootDefinitionName(asString(object["$ref"])); target != "" {
		edges[target+"\x00"+path] = definitionEdge{Path: path, Target: target}
	}

	collect := func(raw any, path string) {
		values, ok := raw.([]any)
		if !ok {
			values = []any{raw}
		}

		for _, value := range values {
			if nested, ok := toSchemaValue(value); ok {
				collectDefinitionEdges(nested, path, edges)
			}
		}
	}

	for _, keyword := range []string{"allOf", "anyOf", "oneOf", "if", "then", "else", "not", "contentSchema"} {
		collect(object[keyword], path)
	}

	for _, keyword := range []string{
		"items", "prefixItems", "contains", "additionalItems", "unevaluatedItems",
		"additionalProperties", "unevaluatedProperties",
	} {
		collect(object[keyword], appendPath(path, "[]"))
	}

	for _, keyword := range []string{"properties", "patternProperties"} {
		nested := mapSchemaValues(object[keyword])
		for _, key := range sortedSchemaValueKeys(nested) {
			collectDefinitionEdges(nested[key], appendPath(path, key), edges)
		}
	}
}

// appendPath joins path segments with a dot. Item markers attach without one.
func appendPath(base, segment string) string {
	base = strings.TrimSpace(base)
	segment = strings.TrimSpace(segment)
	switch {
	case base == "":
		return segment
	case segment == "":
		return base
	case segment == "[]":
		return base + segment
	default:
		return base + "." + segment
	}
}

func sortedSchemaValueKeys(values map[string]schemaValue) []string {
	out := make([]string, 0, len(values))
	for key := range values {
		out = append(out, key)
	}

	sort.Strings(out)
	return out
}

// renderDefinitions returns the definitions to document and the root definition name.
// A root that points at a definition through $ref is that definition; an inline
// root is added under rootDefinitionKey.
func renderDefinitions(doc schemaDocument) (map[string]schemaValue, string) {
	if name := rootDefinitionName(doc.Ref); name != "" {
		if _, ok := doc.Defs[name]; ok {
			return doc.Defs, name
		}
	}

	definitions := make(map[string]schemaValue, len(doc.Defs)+1)
	for name, value := range doc.Defs {
		definitions[name] = value
	}

	rootName := rootDefinitionKey
	if _, taken := definitions[rootName]; taken {
		rootName = "(" + rootDefinitionKey + ")"
	}

	definitions[rootName] = doc.Root
	return definitions, rootName
}

// draftSupportText formats the draft support marker.
func draftSupportText(info DraftInfo) string {
	switch {
	case info.Supported:
		return "supported (" + info.Canonical + ")"
	case strings.TrimSpace(info.Canonical) != "":
		return "unknown (" + info.Canonical + ")"
	default:
		return "unknown"
	}
}

// definitionOrder returns root first, then the remaining definitions sorted.
func definitionOrder(defs map[string]schemaValue, rootName string) []string {
	keys := make([]string, 0, len(defs))
	for name := range defs {
		if name != rootName {
			keys = append(keys, name)
		}
	}

	sort.Strings(keys)
	if _, ok := defs[rootName]; !ok {
		return keys
	}

	return append([]string{rootName}, keys...)
}

// propertyOrder returns required properties in declared order, then optional ones sorted.
func propertyOrder(required []string, properties map[string]schemaValue) []string {
	if len(properties) == 0 {
		return nil
	}

	out := make([]string, 0, len(properties))
	for _, name := range required {
		if _, ok := properties[name]; ok && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	optional := make([]string, 0, len(properties)-len(out))
	for name := range properties {
		if !slices.Contains(out, name) {
			optional = append(optional, name)
		}
	}

	sort.Strings(optional)
	return append(out, optional...)
}

// rootDefinitionName extracts the definition name from a local $defs or definitions reference.
func rootDefinitionName(ref string) string {
	ref = strings.TrimSpace(ref)
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if name, ok := strings.CutPrefix(ref, prefix); ok {
			name, _, _ = strings.Cut(name, "/")
			return name
		}
	}

	return ""
}

func isRequired(required []string, key string) bool {
	return slices.Contains(required, key)
}

func nodeDescription(node schemaValue) string {
	if node.Object == nil {
		return ""
	}

	return asString(node.Object["description"])
}

func nodeProperties(node schemaValue) map[string]schemaValue {
	if node.Object == nil {
		return nil
	}

	return mapSchemaValues(node.Object["properties"])
}

func nodeRequired(node schemaValue) []string {
	if node.Object == nil {
		return nil
	}

	return asStringSlice(node.Object["required"])
}
