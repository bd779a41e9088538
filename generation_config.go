// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// GenerationConfig holds the options recognized by the HTML renderer.
type GenerationConfig struct {
	// CollapseLongExamples wraps examples longer than 15 lines in a closed block.
	CollapseLongExamples bool `yaml:"collapse_long_examples" json:"collapse_long_examples"`
	// ExpandButtons adds "Expand all" and "Collapse all" controls.
	ExpandButtons bool `yaml:"expand_buttons" json:"expand_buttons"`
	// FooterShowTime adds the generation time to the footer.
	FooterShowTime bool `yaml:"footer_show_time" json:"footer_show_time"`
	// WithFooter adds the generator footer.
	WithFooter bool `yaml:"with_footer" json:"with_footer"`
	// TemplateName selects a built-in template.
	TemplateName string `yaml:"template_name" json:"template_name"`
	// CustomTemplatePath points at a page template file and wins over TemplateName.
	CustomTemplatePath string `yaml:"custom_template_path" json:"custom_template_path"`
	// DocumentationHubURL adds a link back to a documentation hub on every page.
	DocumentationHubURL string `yaml:"documentation_hub_url" json:"documentation_hub_url"`
	// FilesToCopy are extra files copied from the template directory after the base assets.
	FilesToCopy []string `yaml:"files_to_copy" json:"files_to_copy"`
}

// DefaultGenerationConfig returns the renderer defaults.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		CollapseLongExamples: false,
		ExpandButtons:        true,
		FooterShowTime:       false,
		WithFooter:           true,
		TemplateName:         defaultTemplateName,
	}
}

// LoadGenerationConfig reads options from a YAML (.yaml, .yml) or JSON with comments
// file on top of base. Keys absent from the file keep their base value and unknown
// keys are rejected. An empty file changes nothing.
func LoadGenerationConfig(path string, base GenerationConfig) (GenerationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("%w %q: %w", ErrReadGenerationConfig, path, err)
	}

	cfg := base
	cfg.FilesToCopy = append([]string(nil), base.FilesToCopy...)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAMLConfig(data, &cfg)
	default:
		err = decodeJSONCConfig(data, &cfg)
	}

	if err != nil {
		return base, fmt.Errorf("%w %q: %w", ErrDecodeGenerationConfig, path, err)
	}

	return cfg, nil
}

func decodeYAMLConfig(data []byte, cfg *GenerationConfig) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func decodeJSONCConfig(data []byte, cfg *GenerationConfig) error {
	data = jsonc.ToJSON(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(cfg)
}
