// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultExampleValuesValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultExampleValues().Validate())
}

func TestExampleValuesWithDefaults(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultExampleValues(), ExampleValues{}.WithDefaults())

	values := ExampleValues{BaseDomain: "example.org", ACRValues: " "}.WithDefaults()
	require.Equal(t, "example.org", values.BaseDomain)
	require.Equal(t, DefaultExampleValues().ConsentProviderURL, values.ConsentProviderURL)
	require.Equal(t, DefaultExampleValues().ACRValues, values.ACRValues)
	require.NoError(t, values.Validate())
}

func TestExampleValuesValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*ExampleValues)
		want   string
	}{
		{
			name:   "domain with protocol",
			mutate: func(v *ExampleValues) { v.BaseDomain = "https://testbed.fi" },
			want:   "base domain",
		},
		{
			name:   "domain with trailing slash",
			mutate: func(v *ExampleValues) { v.BaseDomain = "testbed.fi/" },
			want:   "base domain",
		},
		{
			name:   "plain http provider",
			mutate: func(v *ExampleValues) { v.AuthenticationProviderURL = "http://login.testbed.fi" },
			want:   "authentication provider url",
		},
		{
			name:   "relative end-user provider",
			mutate: func(v *ExampleValues) { v.AuthenticationProviderEndUserURL = "login.testbed.fi" },
			want:   "authentication provider end-user url",
		},
		{
			name:   "missing consent provider",
			mutate: func(v *ExampleValues) { v.ConsentProviderURL = "" },
			want:   "consent provider url",
		},
		{
			name:   "blank acr",
			mutate: func(v *ExampleValues) { v.ACRValues = "  " },
			want:   "acr values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			values := DefaultExampleValues()
			tt.mutate(&values)

			err := values.Validate()
			require.ErrorIs(t, err, ErrInvalidExampleValue)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestHTTPSURLTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	got, err := httpsURL("consent provider url", "https://consent.example.org/")
	require.NoError(t, err)
	require.Equal(t, "https://consent.example.org", got)
}

func TestConstructorsRejectInvalidValues(t *testing.T) {
	t.Parallel()

	values := DefaultExampleValues()
	values.ConsentProviderURL = "ftp://consent.example.org"

	for _, name := range []string{"consent_configuration", "consent_request_token", "consent_token", "dataspace_configuration"} {
		entry, ok := Default().Lookup(name)
		require.True(t, ok, name)

		_, err := entry.New(values)
		require.ErrorIs(t, err, ErrInvalidExampleValue, name)
	}

	// party configuration does not embed any deployment value
	entry, _ := Default().Lookup("party_configuration")
	_, err := entry.New(values)
	require.NoError(t, err)
}
