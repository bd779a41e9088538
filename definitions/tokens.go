// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package definitions

import (
	"maps"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenVersion is the consent protocol token version.
	TokenVersion = "0.2"
	// TokenType is the only accepted consent token typ header.
	TokenType = "JWT"
	// TokenAlgorithm is the only accepted signing algorithm.
	TokenAlgorithm = jose.RS256
)

// Example values shared by both consent protocol tokens.
const (
	exampleSubject   = "debade8a-091d-42da-9b0c-e61f9471e2c3"
	exampleApp       = "bb8c7f74-0855-42e1-ba09-70bb27103ded"
	exampleExpiresAt = 1678492800
	exampleIssuedAt  = 1678406400
)

// unixDate wraps a unix timestamp as a JWT numeric date.
func unixDate(seconds int64) *jwt.NumericDate {
	return jwt.NewNumericDate(time.Unix(seconds, 0))
}

// userClaimFields documents the body claims both tokens carry about the user and the app.
func userClaimFields(userIssuer, acr string, extra Fields) Fields {
	fields := Fields{
		"sub": {
			Description: "The `sub` from the ID Token of the user.",
			Examples:    []any{exampleSubject},
		},
		"subiss": {
			Description: "The `iss` from the ID Token of the user.",
			Examples:    []any{userIssuer},
		},
		"acr": {
			Description: "The `acr` from the ID Token of the user.",
			Examples:    []any{acr},
		},
		"app": {
			Description: "The app identifier (OIDC Client ID of the app).",
			Examples:    []any{exampleApp},
		},
		"appiss": {
			Description: "The `iss` (OIDC issuer) at which the app is registered.",
			Examples:    []any{userIssuer},
		},
		"exp": {
			Description: "The unix timestamp at which the token expires. Must not be in the past.",
			Examples:    []any{exampleExpiresAt},
		},
		"iat": {
			Description: "The unix timestamp at which the token was issued. It must not be in the future.",
			Examples:    []any{exampleIssuedAt},
		},
	}

	maps.Copy(fields, extra)
	return fields
}

// headerFields documents the header parameters both tokens carry.
func headerFields(tokenName, keyID, keyOwner string, extra Fields) Fields {
	fields := Fields{
		"v": {
			Description: "The version of the " + tokenName + " standard the token follows.",
			Examples:    []any{TokenVersion},
		},
		"kid": {
			Description: "The key ID used to sign the token. A key with the same kid must be found in the " +
				"JWKS pointed to by the " + keyOwner + ".",
			Examples: []any{keyID},
		},
		"alg": {
			Description: "The algorithm the token is signed with.",
			Examples:    []any{string(TokenAlgorithm)},
		},
	}

	maps.Copy(fields, extra)
	return fields
}
