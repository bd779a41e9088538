// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

// PartyConfiguration is served by every party building applications or
// productizers on the dataspace.
type PartyConfiguration struct {
	JWKSURI string `json:"jwks_uri" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
}

// NewPartyConfiguration builds the party configuration document.
func NewPartyConfiguration(ExampleValues) (*Document, error) {
	example := PartyConfiguration{JWKSURI: "https://example.com/.well-known/jwks.json"}

	return &Document{
		Root:  &PartyConfiguration{},
		Title: "/.well-known/dataspace/party-configuration.json",
		Description: "This configuration should be provided by each party creating applications or " +
			"productizers on the dataspace and will provide details of for example where keys used to " +
			"sign different payloads can be found. Typically this would be found on something like " +
			"`https://example.com/.well-known/dataspace/party-configuration.json`. This must be served " +
			"over https and it's highly recommended to set up the domain with " +
			`<a href="https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Strict-Transport-Security" target="_blank">HSTS</a>.`,
		Examples: []any{example},
		Fields: map[string]Fields{
			"PartyConfiguration": {
				"jwks_uri": {
					Description: `The URI at which the <a href="https://auth0.com/docs/secure/tokens/json-web-tokens/json-web-key-set-properties" target="_blank">JWKS</a> ` +
						"for the party can be found. For now the following values must be used in the keys " +
						"that are defined in the JWKS: <br />" +
						"`\"alg\": \"RS256\",`<br />" +
						"`\"kty\": \"RSA\",`<br />" +
						"`\"use\": \"sig\",`<br />",
					Examples: []any{example.JWKSURI},
				},
			},
		},
	}, nil
}
