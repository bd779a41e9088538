// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// ErrInvalidExampleValue is returned when an example value cannot be embedded into a document.
	ErrInvalidExampleValue = errors.New("invalid example value")
	// ErrUnknownEntry is returned when a registry lookup names no registered entry.
	ErrUnknownEntry = errors.New("unknown definition")
)

// baseDomainPattern matches a bare domain without protocol or trailing slash.
const baseDomainPattern = `^[a-z0-9-]+([.][a-z0-9-]+)+$`

var baseDomainRegexp = regexp.MustCompile(baseDomainPattern)

// Field documents one JSON property of a shape.
type Field struct {
	// Description is CommonMark text; raw HTML is allowed.
	Description string
	// Examples are embedded verbatim into the property schema.
	Examples []any
}

// Fields maps JSON property names to their documentation.
type Fields map[string]Field

// Document is one schema root together with its documentation tables.
type Document struct {
	// Root is a pointer to a zero value of the root shape.
	Root any
	// Title is the schema title, conventionally the well-known path of the document.
	Title string
	// Description is the schema description in CommonMark.
	Description string
	// Examples are complete payloads of the root shape.
	Examples []any
	// Fields holds one table per Go type name reachable from Root.
	Fields map[string]Fields
}

// ExampleValues are deployment specific values embedded into example payloads.
// They are never contacted.
type ExampleValues struct {
	BaseDomain                       string
	AuthenticationProviderURL        string
	AuthenticationProviderEndUserURL string
	ConsentProviderURL               string
	ACRValues                        string
}

// DefaultExampleValues returns example values for the testbed.fi dataspace.
func DefaultExampleValues() ExampleValues {
	return ExampleValues{
		BaseDomain:                       "testbed.fi",
		AuthenticationProviderURL:        "https://login.testbed.fi",
		AuthenticationProviderEndUserURL: "https://login.testbed.fi",
		ConsentProviderURL:               "https://consent.testbed.fi",
		ACRValues:                        "http://eidas.europa.eu/LoA/substantial",
	}
}

// WithDefaults fills every blank value from DefaultExampleValues.
func (values ExampleValues) WithDefaults() ExampleValues {
	defaults := DefaultExampleValues()
	for _, field := range []struct {
		value    *string
		fallback string
	}{
		{&values.BaseDomain, defaults.BaseDomain},
		{&values.AuthenticationProviderURL, defaults.AuthenticationProviderURL},
		{&values.AuthenticationProviderEndUserURL, defaults.AuthenticationProviderEndUserURL},
		{&values.ConsentProviderURL, defaults.ConsentProviderURL},
		{&values.ACRValues, defaults.ACRValues},
	} {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.fallback
		}
	}

	return values
}

// Validate checks every example value.
func (values ExampleValues) Validate() error {
	if _, err := values.baseDomain(); err != nil {
		return err
	}

	checks := []struct {
		name  string
		value string
	}{
		{"authentication provider url", values.AuthenticationProviderURL},
		{"authentication provider end-user url", values.AuthenticationProviderEndUserURL},
		{"consent provider url", values.ConsentProviderURL},
	}
	for _, check := range checks {
		if _, err := httpsURL(check.name, check.value); err != nil {
			return err
		}
	}

	if strings.TrimSpace(values.ACRValues) == "" {
		return fmt.Errorf("%w: acr values: empty", ErrInvalidExampleValue)
	}

	return nil
}

// baseDomain returns the validated bare base domain.
func (values ExampleValues) baseDomain() (string, error) {
	domain := strings.TrimSpace(values.BaseDomain)
	if !baseDomainRegexp.MatchString(domain) {
		return "", fmt.Errorf("%w: base domain %q must be a bare domain without protocol or trailing slash", ErrInvalidExampleValue, values.BaseDomain)
	}

	return domain, nil
}

// httpsURL validates an absolute https URL and strips any trailing slash.
func httpsURL(name, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s %q: %w", ErrInvalidExampleValue, name, raw, err)
	}

	if parsed.Scheme != "https" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %s %q must be an absolute https url", ErrInvalidExampleValue, name, raw)
	}

	return strings.TrimRight(raw, "/"), nil
}
