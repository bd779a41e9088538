// SPDX-License-Identifier: MIT
// Copyright (c) 2026 testbed-fi
// Source: github.com/testbed-fi/dataspace-schemadoc

package schemadoc

import "strings"

// DraftInfo describes the JSON Schema dialect named by a "$schema" URI.
type DraftInfo struct {
	// URI is the trimmed "$schema" value.
	URI string
	// Canonical is the short draft name, for example "2020-12" or "draft-07".
	Canonical string
	// Supported reports whether the renderer knows the draft vocabulary.
	Supported bool
}

// knownDrafts maps normalized meta-schema URIs to canonical draft names.
var knownDrafts = map[string]string{
	"json-schema.org/draft-03/schema":      "draft-03",
	"json-schema.org/draft-04/schema":      "draft-04",
	"json-schema.org/draft-05/schema":      "draft-05",
	"json-schema.org/draft-06/schema":      "draft-06",
	"json-schema.org/draft-07/schema":      "draft-07",
	"json-schema.org/draft/2019-09/schema": "2019-09",
	"json-schema.org/draft/2020-12/schema": "2020-12",
}

// DetectDraft resolves a "$schema" URI into draft information.
// An empty URI is reported as unsupported with no canonical name.
func DetectDraft(schemaURI string) DraftInfo {
	info := DraftInfo{URI: strings.TrimSpace(schemaURI)}
	if info.URI == "" {
		return info
	}

	key := strings.ToLower(info.URI)
	key = strings.TrimPrefix(key, "https://")
	key = strings.TrimPrefix(key, "http://")
	key = strings.TrimSuffix(key, "#")
	key = strings.TrimSuffix(key, "/")

	canonical, ok := knownDrafts[key]
	if !ok {
		canonical, ok = canonicalDraft(key)
	}

	if !ok {
		info.Canonical = info.URI
		return info
	}

	info.Canonical = canonical
	info.Supported = true
	return info
}

// canonicalDraft accepts a bare draft name such as "2019-09" or "draft-07".
func canonicalDraft(name string) (string, bool) {
	for _, canonical := range knownDrafts {
		if canonical == name {
			return canonical, true
		}
	}

	return "", false
}
