// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iancoleman/strcase"
	"github.com/invopop/jsonschema"

	"github.com/testbed-fi/dataspace-schemadoc/definitions"
)

// numericDateType is documented as a plain integer, matching its wire form.
var numericDateType = reflect.TypeOf(jwt.NumericDate{})

// Extractor writes one JSON Schema file per registered definition.
type Extractor struct {
	// Registry defaults to definitions.Default().
	Registry definitions.Registry
	// Values are embedded into examples. Blank fields take definitions.DefaultExampleValues().
	Values definitions.ExampleValues
	// OutputDir receives the schema files.
	OutputDir string
	// Only restricts the run to the named entries.
	Only []string
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Run extracts every selected definition in registry order and returns the written paths.
// It stops at the first failing entry; files written before it are kept.
func (extractor *Extractor) Run() ([]string, error) {
	logger := extractor.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	registry := extractor.Registry
	if registry == nil {
		registry = definitions.Default()
	}

	registry, err := registry.Select(extractor.Only...)
	if err != nil {
		return nil, err
	}

	values := extractor.Values.WithDefaults()

	written := make([]string, 0, len(registry))
	for _, entry := range registry {
		if isPackageMarker(entry.Name) {
			logger.Debug("skip package marker", slog.String("definition", entry.Name))
			continue
		}

		outPath := SchemaPath(extractor.OutputDir, entry.Name)
		if err := extractDefinition(entry, values, outPath); err != nil {
			return written, err
		}

		logger.Info("wrote schema", slog.String("definition", entry.Name), slog.String("path", outPath))
		written = append(written, outPath)
	}

	return written, nil
}

// extractDefinition builds, reflects and writes one definition.
func extractDefinition(entry definitions.Entry, values definitions.ExampleValues, outPath string) error {
	if entry.New == nil {
		return fmt.Errorf("%w: definition %q (%s): no constructor", ErrMissingRoot, entry.Name, outPath)
	}

	doc, err := entry.New(values)
	if err != nil {
		return fmt.Errorf("%w: definition %q (%s): %w", ErrLoadDefinition, entry.Name, outPath, err)
	}

	if doc == nil || doc.Root == nil {
		return fmt.Errorf("%w: definition %q (%s)", ErrMissingRoot, entry.Name, outPath)
	}

	schema, err := GenerateSchema(doc)
	if err != nil {
		return fmt.Errorf("definition %q (%s): %w", entry.Name, outPath, err)
	}

	data, err := EncodeSchema(schema)
	if err != nil {
		return fmt.Errorf("%w: definition %q (%s): %w", ErrEncodeSchema, entry.Name, outPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("%w: definition %q (%s): %w", ErrWriteSchema, entry.Name, outPath, err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: definition %q (%s): %w", ErrWriteSchema, entry.Name, outPath, err)
	}

	return nil
}

// GenerateSchema reflects the document root and applies its documentation.
// Nested shapes are placed under $defs by Go type name.
func GenerateSchema(doc *definitions.Document) (*jsonschema.Schema, error) {
	if doc == nil || doc.Root == nil {
		return nil, ErrMissingRoot
	}

	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
		Anonymous:      true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == numericDateType {
				return &jsonschema.Schema{Type: "integer"}
			}

			return nil
		},
	}

	schema := reflector.Reflect(doc.Root)
	schema.Title = doc.Title
	schema.Description = doc.Description
	schema.Examples = doc.Examples

	rootType := reflect.TypeOf(doc.Root)
	for rootType.Kind() == reflect.Pointer {
		rootType = rootType.Elem()
	}

	for _, typeName := range sortedFieldTables(doc.Fields) {
		target := schema
		if typeName != rootType.Name() {
			target = schema.Definitions[typeName]
		}

		if target == nil {
			return nil, fmt.Errorf("%w: table %q names no type of %s", ErrUnknownField, typeName, rootType.Name())
		}

		if err := applyFields(target, typeName, doc.Fields[typeName]); err != nil {
			return nil, err
		}
	}

	return schema, nil
}

// applyFields copies field documentation onto the properties of one object schema.
func applyFields(schema *jsonschema.Schema, typeName string, fields definitions.Fields) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	sort.Strings(names)
	for _, name := range names {
		var property *jsonschema.Schema
		if schema.Properties != nil {
			property, _ = schema.Properties.Get(name)
		}

		if property == nil {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, typeName, name)
		}

		field := fields[name]
		property.Description = field.Description
		if len(field.Examples) > 0 {
			property.Examples = field.Examples
		}
	}

	return nil
}

func sortedFieldTables(tables map[string]definitions.Fields) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// EncodeSchema encodes a schema as 2-space indented JSON with a trailing newline.
func EncodeSchema(schema *jsonschema.Schema) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(schema); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// SchemaPath returns the output file of a definition: the directories of name
// are kept and its base is converted to kebab case.
func SchemaPath(outputDir, name string) string {
	dir, base := path.Split(strings.Trim(filepath.ToSlash(name), "/"))
	base = strings.ToLower(strcase.ToKebab(base))
	return filepath.Join(outputDir, filepath.FromSlash(dir), base+".json")
}

// isPackageMarker reports names like "__init__" that carry no definition.
func isPackageMarker(name string) bool {
	base := path.Base(filepath.ToSlash(name))
	return strings.HasPrefix(base, "__") && strings.HasSuffix(base, "__")
}
