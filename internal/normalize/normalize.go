// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize canonicalizes company names into a comparable form:
// lowercase, diacritics folded, legal forms and boilerplate stripped,
// domain fragments removed, only alphanumerics and single spaces kept.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// killWords matches standalone legal-form suffixes, country and city
// qualifiers, and generic filler words that carry no identity.
var killWords = regexp.MustCompile(
	`\b(ab|aktiebolag|ltd|limited|inc|incorporated|publ|hb|kb|filial|` +
		`sverige|sweden|i stockholm|i goteborg|i malmo|group|holding|tech)\b`)

// domainFragment matches domain-style substrings such as "acme.se".
var domainFragment = regexp.MustCompile(`\b[a-z0-9-]+\.(com|se|io|ai|org|net)\b`)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// folder strips combining marks after NFD decomposition, so å/ä → a,
// ö → o, é → e, and so on.
var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name reduces a raw company name to its canonical comparable form.
// It never fails; empty input yields empty output, and the function is
// idempotent. The output matches ^[a-z0-9 ]*$ with no doubled spaces.
func Name(raw string) string {
	if raw == "" {
		return ""
	}

	n := strings.ToLower(raw)

	if folded, _, err := transform.String(folder, n); err == nil {
		n = folded
	}

	n = killWords.ReplaceAllString(n, " ")
	n = domainFragment.ReplaceAllString(n, " ")
	n = nonAlnum.ReplaceAllString(n, " ")

	return strings.Join(strings.Fields(n), " ")
}
