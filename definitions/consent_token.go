// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

import (
	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ConsentToken proves that a user granted an application access to a data source.
type ConsentToken struct {
	Header ConsentTokenHeader `json:"header"`
	Body   ConsentTokenBody   `json:"body"`
}

// ConsentTokenHeader is the JOSE header of a consent token.
type ConsentTokenHeader struct {
	Version   string                  `json:"v" jsonschema:"enum=0.2"`
	TokenID   string                  `json:"tid"`
	KeyID     string                  `json:"kid"`
	Algorithm jose.SignatureAlgorithm `json:"alg" jsonschema:"enum=RS256"`
	Type      string                  `json:"typ" jsonschema:"enum=JWT"`
	JWKSetURL string                  `json:"jku" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
}

// ConsentTokenBody holds the claims of a consent token.
type ConsentTokenBody struct {
	Issuer         string           `json:"iss" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	Subject        string           `json:"sub"`
	SubjectIssuer  string           `json:"subiss"`
	ACR            string           `json:"acr"`
	App            string           `json:"app"`
	AppIssuer      string           `json:"appiss"`
	DataSourceID   string           `json:"dsi" jsonschema:"format=uri"`
	ExpirationTime *jwt.NumericDate `json:"exp"`
	IssuedAt       *jwt.NumericDate `json:"iat"`
}

var _ jwt.Claims = ConsentTokenBody{}

// GetExpirationTime implements jwt.Claims.
func (body ConsentTokenBody) GetExpirationTime() (*jwt.NumericDate, error) {
	return body.ExpirationTime, nil
}

// GetIssuedAt implements jwt.Claims.
func (body ConsentTokenBody) GetIssuedAt() (*jwt.NumericDate, error) {
	return body.IssuedAt, nil
}

// GetNotBefore implements jwt.Claims. Consent tokens carry no nbf.
func (body ConsentTokenBody) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims.
func (body ConsentTokenBody) GetIssuer() (string, error) {
	return body.Issuer, nil
}

// GetSubject implements jwt.Claims.
func (body ConsentTokenBody) GetSubject() (string, error) {
	return body.Subject, nil
}

// GetAudience implements jwt.Claims. Consent tokens are not audience restricted.
func (body ConsentTokenBody) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}

// NewConsentToken builds the consent token document.
func NewConsentToken(values ExampleValues) (*Document, error) {
	domain, err := values.baseDomain()
	if err != nil {
		return nil, err
	}

	userIssuer, err := httpsURL("authentication provider end-user url", values.AuthenticationProviderEndUserURL)
	if err != nil {
		return nil, err
	}

	consentURL, err := httpsURL("consent provider url", values.ConsentProviderURL)
	if err != nil {
		return nil, err
	}

	consentConfiguration := ConsentConfigurationFor(consentURL)
	example := ConsentToken{
		Header: ConsentTokenHeader{
			Version:   TokenVersion,
			TokenID:   "36bd899b-8b43-484c-ac58-a4da7e32273d",
			KeyID:     "0fcf0244-69fa-454d-a124-0bd8bc05430",
			Algorithm: TokenAlgorithm,
			Type:      TokenType,
			JWKSetURL: consentConfiguration.JWKSURI,
		},
		Body: ConsentTokenBody{
			Issuer:         consentURL,
			Subject:        exampleSubject,
			SubjectIssuer:  userIssuer,
			ACR:            values.ACRValues,
			App:            exampleApp,
			AppIssuer:      userIssuer,
			DataSourceID:   "dpp://source@" + domain + "/draft/Weather/Current/Metric",
			ExpirationTime: unixDate(exampleExpiresAt),
			IssuedAt:       unixDate(exampleIssuedAt),
		},
	}

	consentConfigurationLink := "[consent configuration](consent-configuration.html)"

	return &Document{
		Root:  &ConsentToken{},
		Title: "Consent Token",
		Description: "The Consent Token is a [JWT](https://www.rfc-editor.org/rfc/rfc7519) used in the " +
			"[Consent Protocol](https://miro.com/app/board/o9J_lC4tnfI=/) to prove a user has granted " +
			"their consent for an application to access the data provided by a data source. When the " +
			"user has granted the consent, the consent provider can issue a consent token to the app. " +
			"The application includes the consent token in the `X-Consent-Token` header in the requests " +
			"it makes to the product gateway, which forwards the header to the productizer. The " +
			"productizer is responsible for validating the token and handling access control to the " +
			"data it provides. Below are details on fields or claims included in the header and body of " +
			"the token.",
		Examples: []any{example},
		Fields: map[string]Fields{
			"ConsentToken": {
				"header": {Description: "The JOSE header of the token."},
				"body":   {Description: "The claims of the token."},
			},
			"ConsentTokenHeader": headerFields("Consent Token", example.Header.KeyID, consentConfigurationLink, Fields{
				"tid": {
					Description: "A consent token ID, It is unique for each consent the user has granted to " +
						"some app. Multiple consent token JWTs can however be issued for the same consent " +
						"with for example different `iat` and `exp`, but sharing the same `tid`.",
					Examples: []any{example.Header.TokenID},
				},
				"typ": {
					Description: "The type of the token, must be `JWT`.",
					Examples:    []any{TokenType},
				},
				"jku": {
					Description: "JWK Set URL where the key the token was signed with can be found. Note that " +
						"apps or productizers that validate the token must not trust this header alone, as " +
						"that would allow bypassing the validation. If the key is loaded based on this, the " +
						"URL must be validated to match the `jwks_uri` in the " + consentConfigurationLink +
						". If that is done, this can be used in libraries or online services like for " +
						"example [JWT.io](https://jwt.io/) to quickly and easily validate the token.",
					Examples: []any{example.Header.JWKSetURL},
				},
			}),
			"ConsentTokenBody": userClaimFields(userIssuer, values.ACRValues, Fields{
				"iss": {
					Description: "The issuer of the token. This is the base URL for the consent provider.",
					Examples:    []any{consentURL},
				},
				"dsi": {
					Description: "Data source identifier for which the token proves consent.",
					Examples:    []any{example.Body.DataSourceID},
				},
			}),
		},
	}, nil
}
