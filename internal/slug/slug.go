// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL slugs from category names and post titles.
//
// The transform is literal and order-sensitive: lowercase, then every
// whitespace run becomes one hyphen, then everything outside [a-z0-9-] is
// dropped. Punctuation is removed after hyphenation, so "Rock & Roll"
// becomes "rock--roll" and "C++ Tips" becomes "c-tips". Existing slugs in
// the database depend on this exact output.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun matches one or more whitespace characters.
	whitespaceRun = regexp.MustCompile(`[\t\n\v\f\r ]+`)
	// disallowed matches anything that may not appear in a slug.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
)

// Generate creates a slug from s.
// Example: "Social Media" → "social-media".
func Generate(s string) string {
	result := strings.ToLower(s)
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	return result
}
