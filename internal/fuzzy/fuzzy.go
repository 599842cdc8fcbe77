// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fuzzy scores the similarity of two normalized company names on
// a 0-100 scale and derives the acceptance threshold for a query name.
//
// The score blends three signals: a full-string edit-distance ratio, the
// best window of the longer string against the shorter (catches
// embedding), and a token-set ratio (tolerates reordering and leftover
// suffix noise, so it carries the highest weight). Scores are not
// guaranteed symmetric; callers pass the source name first.
package fuzzy

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/praktikjakt/scb-match/internal/normalize"
)

// Blend weights. Token-set similarity dominates because register names
// routinely reorder tokens or retain a legal form the source lacks.
const (
	weightTokenSet = 0.5
	weightRatio    = 0.3
	weightPartial  = 0.2
)

// Score returns the combined similarity of two normalized names in
// [0, 100]. When the token-set ratio is near-perfect and the lengths are
// within 3 characters, the score is raised to at least 97: the weighted
// blend under-scores near-identical pairs that differ in one token.
func Score(a, b string) int {
	s1 := Ratio(a, b)
	s2 := PartialRatio(a, b)
	s3 := TokenSetRatio(a, b)

	score := int(weightTokenSet*float64(s3) + weightRatio*float64(s1) + weightPartial*float64(s2))

	if s3 >= 95 && abs(len(a)-len(b)) <= 3 {
		score = max(score, 97)
	}
	return score
}

// Ratio is the indel-normalized edit-distance similarity of two strings:
// 100 * (len(a) + len(b) - distance) / (len(a) + len(b)). Both empty
// counts as identical.
func Ratio(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * float64(la+lb-d) / float64(la+lb)))
}

// PartialRatio slides the shorter string across the longer one and
// returns the best window ratio, so a name embedded in a longer register
// entry still scores high.
func PartialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}

	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		r := Ratio(string(shorter), string(longer[i:i+len(shorter)]))
		if r > best {
			best = r
		}
		if best == 100 {
			break
		}
	}
	return best
}

// TokenSetRatio compares the sorted intersection of the two token sets
// against each side's full sorted token string and returns the best
// pairwise ratio. Duplicate tokens collapse, so word order and repeated
// words do not matter.
func TokenSetRatio(a, b string) int {
	ta := tokenSet(a)
	tb := tokenSet(b)

	var inter, onlyA, onlyB []string
	for tok := range ta {
		if tb[tok] {
			inter = append(inter, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if !ta[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(inter, " ")
	s1 := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	s2 := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := Ratio(base, s1)
	if r := Ratio(base, s2); r > best {
		best = r
	}
	if r := Ratio(s1, s2); r > best {
		best = r
	}
	return best
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

// MinScore returns the acceptance threshold for a query name. Short
// normalized names have few distinguishing characters, so the same edit
// distance is weaker evidence of identity and the floor rises.
func MinScore(rawName string, base int) int {
	switch l := len(normalize.Name(rawName)); {
	case l <= 6:
		return max(base, 92)
	case l <= 10:
		return max(base, 88)
	default:
		return base
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
