// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

/*
Package schemadoc turns the dataspace definitions into JSON Schema files and
renders JSON Schema files into browsable HTML documentation.

The pipeline has two stages. An [Extractor] reflects every entry of a
[definitions.Registry] into a schema file, and a [SiteRenderer] renders a
directory of schema files into one HTML page each. [Pipeline] runs both in
order. The file system is the only state; reruns overwrite their output.

Extract schemas for the built-in definitions:

	extractor := schemadoc.Extractor{
		Registry:  definitions.Default(),
		Values:    definitions.DefaultExampleValues(),
		OutputDir: "schemas",
	}

	written, err := extractor.Run()
	if err != nil {
		return err
	}

	fmt.Println(written)

Render a schema directory with the flat template:

	cfg := schemadoc.DefaultGenerationConfig()
	cfg.TemplateName = "flat"

	renderer := schemadoc.SiteRenderer{Config: cfg}
	pages, err := renderer.RenderDir("schemas", "html")
	if err != nil {
		return err
	}

	fmt.Println(pages)

Load generation options from YAML or JSON with comments:

	cfg, err := schemadoc.LoadGenerationConfig("schemadoc.yaml", schemadoc.DefaultGenerationConfig())
	if err != nil {
		return err
	}

Render one page in memory:

	page, err := schemadoc.RenderFile("schemas/consent-token.json", schemadoc.Options{
		Config: schemadoc.DefaultGenerationConfig(),
	})
	if err != nil {
		return err
	}

	fmt.Println(len(page))

Detect JSON Schema draft support:

	info := schemadoc.DetectDraft("https://json-schema.org/draft/2020-12/schema")
	fmt.Printf("draft=%s supported=%v\n", info.Canonical, info.Supported)

Generate an example payload from a schema:

	example, err := schemadoc.GenerateExample(schemaBytes, schemadoc.ExampleModeRequired, schemadoc.ExampleFormatYAML)
	if err != nil {
		return err
	}

	fmt.Println(string(example))

Runs are synchronous. Two runs sharing an output directory must not overlap;
nothing here locks the directory.
*/
package schemadoc
