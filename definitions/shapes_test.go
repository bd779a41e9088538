// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

import (
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestDataspaceConfigurationExampleRoundTrips(t *testing.T) {
	t.Parallel()

	doc, err := NewDataspaceConfiguration(DefaultExampleValues())
	require.NoError(t, err)

	example, ok := doc.Examples[0].(DataspaceConfiguration)
	require.True(t, ok)

	data, err := json.Marshal(example)
	require.NoError(t, err)

	var decoded DataspaceConfiguration
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, example, decoded)

	require.Equal(t, "testbed.fi", decoded.DataspaceBaseDomain)
	require.Equal(t, "https://gateway.testbed.fi", decoded.ProductGatewayURL)
	require.Equal(t, "https://login.testbed.fi", decoded.AuthenticationProviders[0].BaseURL)
	require.Equal(t, "https://consent.testbed.fi", decoded.ConsentProviders[0].BaseURL)
	require.NotContains(t, string(data), `"name"`)
	require.NotContains(t, string(data), `"role"`)
}

func TestDataspaceConfigurationUsesValues(t *testing.T) {
	t.Parallel()

	values := DefaultExampleValues()
	values.BaseDomain = "dataspace.example.org"
	values.AuthenticationProviderURL = "https://auth.example.org/"

	doc, err := NewDataspaceConfiguration(values)
	require.NoError(t, err)

	example := doc.Examples[0].(DataspaceConfiguration)
	require.Equal(t, "dataspace.example.org", example.DataspaceBaseDomain)
	require.Equal(t, "https://docs.dataspace.example.org", example.DocsURL)
	require.Equal(t, "https://auth.example.org", example.AuthenticationProviders[0].BaseURL)
}

func TestConsentConfigurationConvention(t *testing.T) {
	t.Parallel()

	got := ConsentConfigurationFor("https://consent.testbed.fi")
	require.Equal(t, "https://consent.testbed.fi/.well-known/jwks.json", got.JWKSURI)
	require.Equal(t, "https://consent.testbed.fi/Consent/Request", got.ConsentRequestURI)
}

func TestConsentTokenTimestampsPassThrough(t *testing.T) {
	t.Parallel()

	doc, err := NewConsentToken(DefaultExampleValues())
	require.NoError(t, err)

	data, err := json.Marshal(doc.Examples[0])
	require.NoError(t, err)

	var raw struct {
		Header map[string]any `json:"header"`
		Body   map[string]any `json:"body"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.EqualValues(t, exampleExpiresAt, raw.Body["exp"])
	require.EqualValues(t, exampleIssuedAt, raw.Body["iat"])
	require.Equal(t, "JWT", raw.Header["typ"])
	require.Equal(t, "RS256", raw.Header["alg"])
	require.Equal(t, "https://consent.testbed.fi/.well-known/jwks.json", raw.Header["jku"])
	require.Equal(t, "dpp://source@testbed.fi/draft/Weather/Current/Metric", raw.Body["dsi"])
	require.NotContains(t, raw.Body, "aud")
}

func TestConsentRequestTokenUsesAuthenticationProvider(t *testing.T) {
	t.Parallel()

	values := DefaultExampleValues()
	values.AuthenticationProviderURL = "https://developer-login.testbed.fi"

	doc, err := NewConsentRequestToken(values)
	require.NoError(t, err)

	example := doc.Examples[0].(ConsentRequestToken)
	require.Equal(t, "https://developer-login.testbed.fi", example.Body.SubjectIssuer)
	require.Equal(t, "https://developer-login.testbed.fi", example.Body.AppIssuer)
	require.Equal(t, "https://consent.testbed.fi", example.Body.Audience)
	require.Equal(t, TokenVersion, example.Header.Version)
}

func TestTokenBodiesImplementClaims(t *testing.T) {
	t.Parallel()

	request := ConsentRequestTokenBody{
		Issuer:         "https://example.com",
		Subject:        exampleSubject,
		Audience:       "https://consent.testbed.fi",
		ExpirationTime: unixDate(exampleExpiresAt),
		IssuedAt:       unixDate(exampleIssuedAt),
	}

	var claims jwt.Claims = request
	aud, err := claims.GetAudience()
	require.NoError(t, err)
	require.Equal(t, jwt.ClaimStrings{"https://consent.testbed.fi"}, aud)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.Equal(t, int64(exampleExpiresAt), exp.Unix())

	nbf, err := claims.GetNotBefore()
	require.NoError(t, err)
	require.Nil(t, nbf)

	request.Audience = ""
	aud, err = request.GetAudience()
	require.NoError(t, err)
	require.Nil(t, aud)

	claims = ConsentTokenBody{Issuer: "https://consent.testbed.fi", Subject: exampleSubject}
	iss, err := claims.GetIssuer()
	require.NoError(t, err)
	require.Equal(t, "https://consent.testbed.fi", iss)

	aud, err = claims.GetAudience()
	require.NoError(t, err)
	require.Nil(t, aud)
}

func TestFieldTablesHaveDescriptions(t *testing.T) {
	t.Parallel()

	for _, entry := range Default() {
		doc, err := entry.New(DefaultExampleValues())
		require.NoError(t, err)

		for typeName, fields := range doc.Fields {
			for field, meta := range fields {
				require.NotEmpty(t, meta.Description, "%s %s.%s", entry.Name, typeName, field)
			}
		}
	}
}
