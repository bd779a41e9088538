// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

// ConsentConfiguration is served by a consent provider at
// /.well-known/dataspace/consent-configuration.json.
type ConsentConfiguration struct {
	Issuer            string `json:"issuer" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	JWKSURI           string `json:"jwks_uri" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	ConsentRequestURI string `json:"consent_request_uri" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
}

// ConsentConfigurationFor derives the conventional consent configuration of an issuer.
// The jwks and consent request paths are a convention, not a requirement.
func ConsentConfigurationFor(issuer string) ConsentConfiguration {
	return ConsentConfiguration{
		Issuer:            issuer,
		JWKSURI:           issuer + "/.well-known/jwks.json",
		ConsentRequestURI: issuer + "/Consent/Request",
	}
}

// NewConsentConfiguration builds the consent configuration document.
func NewConsentConfiguration(values ExampleValues) (*Document, error) {
	issuer, err := httpsURL("consent provider url", values.ConsentProviderURL)
	if err != nil {
		return nil, err
	}

	example := ConsentConfigurationFor(issuer)

	return &Document{
		Root:        &ConsentConfiguration{},
		Title:       "/.well-known/dataspace/consent-configuration.json",
		Description: "Configuration details for a consent provider on a dataspace",
		Examples:    []any{example},
		Fields: map[string]Fields{
			"ConsentConfiguration": {
				"issuer": {
					Description: "The base URL of the consent provider. It is used as the `iss` of the " +
						"[consent tokens](consent-token.html) the provider issues.",
					Examples: []any{example.Issuer},
				},
				"jwks_uri": {
					Description: "The URL of the JWKS holding the keys the consent provider signs consent " +
						"tokens with. Conventionally `issuer` followed by `/.well-known/jwks.json`.",
					Examples: []any{example.JWKSURI},
				},
				"consent_request_uri": {
					Description: "The URL to which applications submit a " +
						"[consent request token](consent-request-token.html). Conventionally `issuer` " +
						"followed by `/Consent/Request`.",
					Examples: []any{example.ConsentRequestURI},
				},
			},
		},
	}, nil
}
