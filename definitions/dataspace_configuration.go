// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

// Authentication provider roles. A provider without a role serves both.
const (
	RoleDeveloper = "developer"
	RoleEndUser   = "end_user"
)

// DataspaceConfiguration lists the well-known endpoints of a dataspace.
type DataspaceConfiguration struct {
	DataspaceBaseDomain     string                   `json:"dataspace_base_domain" jsonschema:"pattern=^[a-z0-9-]+([.][a-z0-9-]+)+$"`
	Name                    string                   `json:"name,omitempty"`
	ProductGatewayURL       string                   `json:"product_gateway_url" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	DeveloperPortalURL      string                   `json:"developer_portal_url" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	DocsURL                 string                   `json:"docs_url" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	AuthenticationProviders []AuthenticationProvider `json:"authentication_providers" jsonschema:"minItems=1"`
	ConsentProviders        []ConsentProvider        `json:"consent_providers" jsonschema:"minItems=1"`
	Definitions             DefinitionsRepository    `json:"definitions"`
}

// AuthenticationProvider is one OpenID Connect provider of the dataspace.
type AuthenticationProvider struct {
	BaseURL string `json:"base_url" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	Role    string `json:"role,omitempty" jsonschema:"enum=developer,enum=end_user"`
}

// ConsentProvider is one consent provider of the dataspace.
type ConsentProvider struct {
	BaseURL string `json:"base_url" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
}

// DefinitionsRepository points at the data product definitions of the dataspace.
type DefinitionsRepository struct {
	Git string `json:"git" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	Web string `json:"web" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
}

// NewDataspaceConfiguration builds the dataspace configuration document.
func NewDataspaceConfiguration(values ExampleValues) (*Document, error) {
	domain, err := values.baseDomain()
	if err != nil {
		return nil, err
	}

	authURL, err := httpsURL("authentication provider url", values.AuthenticationProviderURL)
	if err != nil {
		return nil, err
	}

	consentURL, err := httpsURL("consent provider url", values.ConsentProviderURL)
	if err != nil {
		return nil, err
	}

	example := DataspaceConfiguration{
		DataspaceBaseDomain:     domain,
		ProductGatewayURL:       "https://gateway." + domain,
		DeveloperPortalURL:      "https://developer." + domain,
		DocsURL:                 "https://docs." + domain,
		AuthenticationProviders: []AuthenticationProvider{{BaseURL: authURL}},
		ConsentProviders:        []ConsentProvider{{BaseURL: consentURL}},
		Definitions: DefinitionsRepository{
			Git: "https://github.com/Virtual-Finland/definitions.git",
			Web: "https://github.com/Virtual-Finland/definitions",
		},
	}

	return &Document{
		Root:        &DataspaceConfiguration{},
		Title:       "/.well-known/dataspace/dataspace-configuration.json",
		Description: "Configuration details for a dataspace and critical URLs for it",
		Examples:    []any{example},
		Fields: map[string]Fields{
			"DataspaceConfiguration": {
				"dataspace_base_domain": {
					Description: "The base domain for the whole dataspace, without any protocol. This is the " +
						"domain at which for example the /.well-known/dataspace-configuration.json is " +
						"expected to be found.",
					Examples: []any{example.DataspaceBaseDomain},
				},
				"name": {
					Description: "Optional human-readable name of the dataspace.",
					Examples:    []any{"Testbed"},
				},
				"product_gateway_url": {
					Description: "The URL at which the Product Gateway of the dataspace is hosted. Must use " +
						"the https:// protocol",
					Examples: []any{example.ProductGatewayURL},
				},
				"developer_portal_url": {
					Description: "The URL where the Developer Portal for the dataspace can be found. This is " +
						"where developers can register their own data sources and applications.",
					Examples: []any{example.DeveloperPortalURL},
				},
				"docs_url": {
					Description: "The URL at which the dataspace API documentation can be found.",
					Examples:    []any{example.DocsURL},
				},
				"authentication_providers": {
					Description: "One or more authentication providers. Providers may be split by role " +
						"between application developers and end users.",
				},
				"consent_providers": {
					Description: "One or more consent providers. Each one publishes a " +
						"[consent configuration](consent-configuration.html).",
				},
				"definitions": {
					Description: "The repository holding the data product definitions of the dataspace.",
				},
			},
			"AuthenticationProvider": {
				"base_url": {
					Description: "The issuer URL of the OpenID Connect provider.",
					Examples:    []any{authURL},
				},
				"role": {
					Description: "Who authenticates with this provider: `developer` or `end_user`. " +
						"Omitted when the provider serves both.",
					Examples: []any{RoleEndUser},
				},
			},
			"ConsentProvider": {
				"base_url": {
					Description: "The base URL of the consent provider.",
					Examples:    []any{consentURL},
				},
			},
			"DefinitionsRepository": {
				"git": {
					Description: "Git clone URL of the definitions repository.",
					Examples:    []any{example.Definitions.Git},
				},
				"web": {
					Description: "Human browsable URL of the definitions repository.",
					Examples:    []any{example.Definitions.Web},
				},
			},
		},
	}, nil
}
