// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

/*
Package definitions declares the configuration and token shapes published by a
dataspace: the dataspace, consent and party configurations served under
/.well-known/dataspace/, and the consent request token and consent token used
by the consent protocol.

Every shape is a plain Go struct. Structural constraints (URI format, https
pattern, literal values, minimum list sizes) live in `jsonschema` struct tags.
Human documentation lives in separate [Fields] tables keyed by JSON field
name, so the types stay free of prose.

The set of shapes is closed: [Default] returns the registry used by the
schema extractor. Each [Entry] builds a [Document] from [ExampleValues], the
deployment-specific values embedded into example payloads.

	registry := definitions.Default()
	for _, entry := range registry {
		doc, err := entry.New(definitions.DefaultExampleValues())
		if err != nil {
			return err
		}

		fmt.Println(entry.Name, doc.Title)
	}

Nothing here issues, signs or verifies tokens. The token types only describe
their wire shape.
*/
package definitions
