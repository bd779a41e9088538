// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

import (
	"fmt"
	"strings"
)

// Constructor builds a schema document from example values.
type Constructor func(ExampleValues) (*Document, error)

// Entry is one registered definition.
type Entry struct {
	// Name is the source name of the definition, optionally with slash separated
	// directories. It determines the output file location.
	Name string
	// New builds the document. A nil constructor is a configuration error.
	New Constructor
}

// Registry is an ordered set of definitions.
type Registry []Entry

// Default returns every built-in definition.
func Default() Registry {
	return Registry{
		{Name: "consent_configuration", New: NewConsentConfiguration},
		{Name: "consent_request_token", New: NewConsentRequestToken},
		{Name: "consent_token", New: NewConsentToken},
		{Name: "dataspace_configuration", New: NewDataspaceConfiguration},
		{Name: "party_configuration", New: NewPartyConfiguration},
	}
}

// Names returns entry names in registry order.
func (registry Registry) Names() []string {
	names := make([]string, 0, len(registry))
	for _, entry := range registry {
		names = append(names, entry.Name)
	}

	return names
}

// Lookup finds an entry by name.
func (registry Registry) Lookup(name string) (Entry, bool) {
	name = strings.TrimSpace(name)
	for _, entry := range registry {
		if entry.Name == name {
			return entry, true
		}
	}

	return Entry{}, false
}

// Select returns the named entries in registry order. Empty names select everything.
func (registry Registry) Select(names ...string) (Registry, error) {
	if len(names) == 0 {
		return registry, nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := registry.Lookup(name); !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownEntry, name)
		}

		wanted[name] = struct{}{}
	}

	out := make(Registry, 0, len(wanted))
	for _, entry := range registry {
		if _, ok := wanted[entry.Name]; ok {
			out = append(out, entry)
		}
	}

	return out, nil
}
