// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package variant expands a company name into alternate search strings
// to widen recall against the register's contains-search. Generation is
// a pure function: the original name always comes first and the result
// is de-duplicated with stable order.
package variant

import (
	"regexp"
	"strings"
)

var (
	trailingDomain = regexp.MustCompile(`(?i)\.[a-z]+$`)
	punctuation    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	whitespace     = regexp.MustCompile(`\s+`)
	parenthetical  = regexp.MustCompile(`\([^)]*\)`)
)

// Generate returns the search variants for a company name. Rules mirror
// how Swedish register entries diverge from informal names: legal-form
// suffixes dropped or appended, trailing domain fragments stripped,
// punctuation and parentheticals removed, short all-caps names treated
// as acronyms, the lead word tried alone, and hyphenated names tried
// spaced and concatenated.
func Generate(name string) []string {
	name = strings.TrimSpace(name)

	var variants []string
	add := func(vs ...string) { variants = append(variants, vs...) }

	add(name)

	// Legal-form suffix handling.
	if base, ok := strings.CutSuffix(name, " AB"); ok {
		add(strings.TrimSpace(base))
	}
	if base, ok := strings.CutSuffix(name, " Aktiebolag"); ok {
		add(strings.TrimSpace(base))
	}
	if strings.Contains(name, " AB") {
		add(strings.TrimSpace(strings.ReplaceAll(name, " AB", "")))
	}
	if !strings.Contains(name, "AB") {
		add(name+" AB", name+" Aktiebolag")
	}

	// Trailing domain fragment: "Mavenoid.com" -> "Mavenoid" (+ suffixes).
	if strings.Contains(name, ".") {
		base := strings.TrimSpace(trailingDomain.ReplaceAllString(name, ""))
		add(base, base+" AB", base+" Aktiebolag")
	}

	// Punctuation stripped.
	clean := strings.TrimSpace(whitespace.ReplaceAllString(punctuation.ReplaceAllString(name, " "), " "))
	if clean != name {
		add(clean, clean+" AB")
	}

	// Parenthetical segments dropped.
	if strings.ContainsRune(name, '(') && strings.ContainsRune(name, ')') {
		stripped := strings.TrimSpace(whitespace.ReplaceAllString(parenthetical.ReplaceAllString(name, ""), " "))
		add(stripped, stripped+" AB")
	}

	// Short all-caps names are usually acronyms registered with a
	// legal form: "CEVT" -> "CEVT AB".
	if len(name) <= 6 && name == strings.ToUpper(name) && strings.ContainsFunc(name, isLetter) {
		add(name+" AB", name+" Aktiebolag")
	}

	// Lead word alone, for compound names where only the first word
	// survives in the register.
	if words := strings.Fields(name); len(words) >= 2 && len(words[0]) >= 4 {
		add(words[0], words[0]+" AB", words[0]+" Aktiebolag")
	}

	// Hyphenated names: spaced and concatenated forms.
	if strings.Contains(name, "-") {
		spaced := strings.ReplaceAll(name, "-", " ")
		joined := strings.ReplaceAll(name, "-", "")
		add(spaced, spaced+" AB", joined, joined+" AB")
	}

	return dedupe(variants)
}

// dedupe removes duplicates and degenerate entries, keeping first-seen order.
func dedupe(variants []string) []string {
	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if len(v) <= 1 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
