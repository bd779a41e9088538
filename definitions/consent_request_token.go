// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

import (
	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ConsentRequestToken is sent by an application in the X-Consent-Request-Token header.
type ConsentRequestToken struct {
	Header ConsentRequestTokenHeader `json:"header"`
	Body   ConsentRequestTokenBody   `json:"body"`
}

// ConsentRequestTokenHeader is the JOSE header of a consent request token.
type ConsentRequestTokenHeader struct {
	Version   string                  `json:"v" jsonschema:"enum=0.2"`
	KeyID     string                  `json:"kid"`
	Algorithm jose.SignatureAlgorithm `json:"alg" jsonschema:"enum=RS256"`
}

// ConsentRequestTokenBody holds the claims of a consent request token.
type ConsentRequestTokenBody struct {
	Issuer         string           `json:"iss" jsonschema:"format=uri,minLength=1,maxLength=2083,pattern=^https://"`
	Subject        string           `json:"sub"`
	SubjectIssuer  string           `json:"subiss"`
	ACR            string           `json:"acr"`
	App            string           `json:"app"`
	AppIssuer      string           `json:"appiss"`
	Audience       string           `json:"aud"`
	ExpirationTime *jwt.NumericDate `json:"exp"`
	IssuedAt       *jwt.NumericDate `json:"iat"`
}

var _ jwt.Claims = ConsentRequestTokenBody{}

// GetExpirationTime implements jwt.Claims.
func (body ConsentRequestTokenBody) GetExpirationTime() (*jwt.NumericDate, error) {
	return body.ExpirationTime, nil
}

// GetIssuedAt implements jwt.Claims.
func (body ConsentRequestTokenBody) GetIssuedAt() (*jwt.NumericDate, error) {
	return body.IssuedAt, nil
}

// GetNotBefore implements jwt.Claims. Consent request tokens carry no nbf.
func (body ConsentRequestTokenBody) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims.
func (body ConsentRequestTokenBody) GetIssuer() (string, error) {
	return body.Issuer, nil
}

// GetSubject implements jwt.Claims.
func (body ConsentRequestTokenBody) GetSubject() (string, error) {
	return body.Subject, nil
}

// GetAudience implements jwt.Claims.
func (body ConsentRequestTokenBody) GetAudience() (jwt.ClaimStrings, error) {
	if body.Audience == "" {
		return nil, nil
	}

	return jwt.ClaimStrings{body.Audience}, nil
}

// NewConsentRequestToken builds the consent request token document.
func NewConsentRequestToken(values ExampleValues) (*Document, error) {
	authURL, err := httpsURL("authentication provider url", values.AuthenticationProviderURL)
	if err != nil {
		return nil, err
	}

	consentURL, err := httpsURL("consent provider url", values.ConsentProviderURL)
	if err != nil {
		return nil, err
	}

	example := ConsentRequestToken{
		Header: ConsentRequestTokenHeader{
			Version:   TokenVersion,
			KeyID:     "2d149479-88a6-4141-ad4c-b14c92f430bc",
			Algorithm: TokenAlgorithm,
		},
		Body: ConsentRequestTokenBody{
			Issuer:         "https://example.com",
			Subject:        exampleSubject,
			SubjectIssuer:  authURL,
			ACR:            values.ACRValues,
			App:            exampleApp,
			AppIssuer:      authURL,
			Audience:       consentURL,
			ExpirationTime: unixDate(exampleExpiresAt),
			IssuedAt:       unixDate(exampleIssuedAt),
		},
	}

	partyConfiguration := "[party configuration](party-configuration.html)"

	return &Document{
		Root:  &ConsentRequestToken{},
		Title: "Consent Request Token",
		Description: "The Consent Request Token is a [JWT](https://www.rfc-editor.org/rfc/rfc7519) used in " +
			"the [Consent Protocol](https://miro.com/app/board/o9J_lC4tnfI=/) to authenticate the " +
			"application when it is requesting a new consent or to get a consent token for an already " +
			"given consent. The token is sent in the `X-Consent-Request-Token` header and signed with a " +
			"key published by the application developer through the " + partyConfiguration + ". Below " +
			"are details on fields or claims are required in the header and body of the token.",
		Examples: []any{example},
		Fields: map[string]Fields{
			"ConsentRequestToken": {
				"header": {Description: "The JOSE header of the token."},
				"body":   {Description: "The claims of the token."},
			},
			"ConsentRequestTokenHeader": headerFields("Consent Request Token", example.Header.KeyID, partyConfiguration, nil),
			"ConsentRequestTokenBody": userClaimFields(authURL, values.ACRValues, Fields{
				"iss": {
					Description: "The issuer of the token. Must be the base URL (`https:// + domain`) on which " +
						"the party configuration is hosted, with no trailing slash.",
					Examples: []any{example.Body.Issuer},
				},
				"aud": {
					Description: "The consent portal base URL.",
					Examples:    []any{consentURL},
				},
			}),
		},
	}, nil
}
