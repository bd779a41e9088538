// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

// Pipeline extracts schemas and then renders them into HTML.
type Pipeline struct {
	Extractor Extractor
	Renderer  SiteRenderer
	// HTMLDir receives the pages. Schemas are read from Extractor.OutputDir.
	HTMLDir string
}

// PipelineResult lists the files a pipeline run wrote.
type PipelineResult struct {
	Schemas []string
	Pages   []string
}

// Run executes the extractor and, when it succeeds, the renderer.
func (pipeline *Pipeline) Run() (PipelineResult, error) {
	var result PipelineResult

	schemas, err := pipeline.Extractor.Run()
	result.Schemas = schemas
	if err != nil {
		return result, err
	}

	pages, err := pipeline.Renderer.RenderDir(pipeline.Extractor.OutputDir, pipeline.HTMLDir)
	result.Pages = pages
	return result, err
}
