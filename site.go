// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SiteRenderer renders a directory of JSON Schema files into HTML pages.
type SiteRenderer struct {
	// Config holds the generation options. Use DefaultGenerationConfig as a base.
	Config GenerationConfig
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
	// Now stamps the footer when Config.FooterShowTime is set. Defaults to time.Now.
	Now func() time.Time
}

// RenderDir renders every *.json file directly inside schemasDir into htmlDir,
// one <base>.html per schema in sorted order, then copies the template assets.
// It returns the written page paths and stops at the first failure.
func (renderer *SiteRenderer) RenderDir(schemasDir, htmlDir string) ([]string, error) {
	logger := renderer.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	page, err := resolveTemplate(renderer.Config)
	if err != nil {
		return nil, err
	}

	schemaFiles, err := listSchemaFiles(schemasDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(htmlDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWritePage, err)
	}

	now := time.Now
	if renderer.Now != nil {
		now = renderer.Now
	}

	written := make([]string, 0, len(schemaFiles))
	for _, schemaPath := range schemaFiles {
		schemaBytes, err := os.ReadFile(schemaPath)
		if err != nil {
			return written, fmt.Errorf("%w %q: %w", ErrReadSchemaFile, schemaPath, err)
		}

		html, err := page.render(schemaBytes, Options{
			SourcePath:  filepath.Base(schemaPath),
			Config:      renderer.Config,
			GeneratedAt: now(),
		})
		if err != nil {
			return written, fmt.Errorf("render %q: %w", schemaPath, err)
		}

		outPath := filepath.Join(htmlDir, strings.TrimSuffix(filepath.Base(schemaPath), ".json")+".html")
		if err := os.WriteFile(outPath, html, 0o644); err != nil {
			return written, fmt.Errorf("%w %q: %w", ErrWritePage, outPath, err)
		}

		logger.Info("wrote page", slog.String("schema", schemaPath), slog.String("path", outPath))
		written = append(written, outPath)
	}

	for _, asset := range assetList(page.baseAssets, renderer.Config.FilesToCopy) {
		if err := copyAsset(page.dir, asset, htmlDir); err != nil {
			return written, fmt.Errorf("%w %q from template %q: %w", ErrCopyAsset, asset, page.name, err)
		}

		logger.Debug("copied asset", slog.String("asset", asset), slog.String("template", page.name))
	}

	return written, nil
}

// listSchemaFiles returns the sorted *.json regular files directly inside dir.
func listSchemaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		out = append(out, filepath.Join(dir, entry.Name()))
	}

	sort.Strings(out)
	return out, nil
}

// assetList appends extra files to the base assets, keeping the first occurrence of each.
func assetList(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, name := range append(append([]string(nil), base...), extra...) {
		name = path.Clean(filepath.ToSlash(strings.TrimSpace(name)))
		if name == "." {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}

// copyAsset copies one file of the template directory into htmlDir under the same relative name.
func copyAsset(dir fs.FS, name, htmlDir string) error {
	data, err := fs.ReadFile(dir, name)
	if err != nil {
		return err
	}

	target := filepath.Join(htmlDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	return os.WriteFile(target, data, 0o644)
}
