package fuzzy

import "testing"

func TestScoreReflexive(t *testing.T) {
	for _, s := range []string{"spotify", "arla plast", "cevt", "a", "42 analytics"} {
		if got := Score(s, s); got != 100 {
			t.Errorf("Score(%q, %q) = %d, want 100", s, s, got)
		}
	}
}

func TestScoreBounded(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"", "spotify"},
		{"spotify", ""},
		{"abc", "xyz"},
		{"arlaplast", "arla plast"},
		{"northvolt", "northvolt labs"},
		{"a very long company name indeed", "b"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Score(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestScoreNearPerfectBonus(t *testing.T) {
	// The weighted blend alone gives 93 here; the token-set bonus must
	// lift close pairs like a compound name vs. its spaced register form.
	got := Score("arlaplast", "arla plast")
	if got < 97 {
		t.Errorf("Score(arlaplast, arla plast) = %d, want >= 97", got)
	}
}

func TestScoreDissimilar(t *testing.T) {
	if got := Score("klarna", "northvolt"); got >= 85 {
		t.Errorf("Score(klarna, northvolt) = %d, want < 85", got)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 100},
		{"abc", "", 0},
		{"abc", "abc", 100},
		{"arlaplast", "arla plast", 95},
	}
	for _, tt := range tests {
		if got := Ratio(tt.a, tt.b); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPartialRatioEmbedded(t *testing.T) {
	if got := PartialRatio("klarna", "klarna bank"); got != 100 {
		t.Errorf("PartialRatio(klarna, klarna bank) = %d, want 100", got)
	}
}

func TestTokenSetRatioReordered(t *testing.T) {
	if got := TokenSetRatio("plast arla", "arla plast"); got != 100 {
		t.Errorf("TokenSetRatio reordered = %d, want 100", got)
	}
}

func TestMinScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		base int
		want int
	}{
		{"short name strict", "CEVT", 85, 92},
		{"short after stripping", "Arla AB", 85, 92},
		{"medium name", "Arlaplast", 85, 88},
		{"long name keeps base", "Svenska Handelsbanken", 85, 85},
		{"base already above floor", "CEVT", 95, 95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinScore(tt.raw, tt.base); got != tt.want {
				t.Errorf("MinScore(%q, %d) = %d, want %d", tt.raw, tt.base, got, tt.want)
			}
		})
	}
}

func TestMinScoreMonotone(t *testing.T) {
	names := []string{"abc", "abcdef", "abcdefg", "abcdefghij", "abcdefghijk"}
	prev := 101
	for _, n := range names {
		got := MinScore(n, 85)
		if got < 85 {
			t.Errorf("MinScore(%q, 85) = %d, below base", n, got)
		}
		if got > prev {
			t.Errorf("MinScore(%q, 85) = %d, rose above %d for a longer name", n, got, prev)
		}
		prev = got
	}
}
