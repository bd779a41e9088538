// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/testbed-fi/dataspace-schemadoc/definitions"
)

func TestPipelineRendersEveryDefinition(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	schemasDir := filepath.Join(root, "schemas")
	htmlDir := filepath.Join(root, "html")

	pipeline := Pipeline{
		Extractor: Extractor{OutputDir: schemasDir},
		Renderer:  SiteRenderer{Config: DefaultGenerationConfig()},
		HTMLDir:   htmlDir,
	}

	result, err := pipeline.Run()
	require.NoError(t, err)
	require.Len(t, result.Schemas, len(definitions.Default()))
	require.Len(t, result.Pages, len(result.Schemas))

	for _, name := range []string{
		"consent-configuration", "consent-request-token", "consent-token",
		"dataspace-configuration", "party-configuration",
	} {
		require.FileExists(t, filepath.Join(schemasDir, name+".json"))
		require.FileExists(t, filepath.Join(htmlDir, name+".html"))
	}

	page := readFile(t, filepath.Join(htmlDir, "party-configuration.html"))
	require.Contains(t, page, "<title>/.well-known/dataspace/party-configuration.json</title>")
	require.Contains(t, page, "<code>party-configuration.json</code>")
}

func TestPipelineSkipsRenderWhenExtractionFails(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	htmlDir := filepath.Join(root, "html")

	pipeline := Pipeline{
		Extractor: Extractor{
			Registry: definitions.Registry{
				{Name: "consent_token", New: definitions.NewConsentToken},
				{Name: "empty"},
			},
			OutputDir: filepath.Join(root, "schemas"),
		},
		Renderer: SiteRenderer{Config: DefaultGenerationConfig()},
		HTMLDir:  htmlDir,
	}

	result, err := pipeline.Run()
	require.ErrorIs(t, err, ErrMissingRoot)
	require.Len(t, result.Schemas, 1)
	require.Empty(t, result.Pages)

	_, statErr := os.Stat(htmlDir)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}
