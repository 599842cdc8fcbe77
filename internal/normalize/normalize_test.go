package normalize

import (
	"regexp"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Spotify", "spotify"},
		{"legal form suffix", "Arla Plast AB", "arla plast"},
		{"aktiebolag", "Volvo Aktiebolag", "volvo"},
		{"ltd", "DeepMind Ltd", "deepmind"},
		{"publ", "Ericsson AB (publ)", "ericsson"},
		{"swedish letters", "Sjöräddningssällskapet", "sjoraddningssallskapet"},
		{"diacritics beyond swedish", "Société Générale", "societe generale"},
		{"domain name only", "Mavenoid.com", ""},
		{"domain mid-name", "acme.io Analytics", "analytics"},
		{"country qualifier", "Google Sverige AB", "google"},
		{"city qualifier", "Klarna i Stockholm", "klarna"},
		{"generic words", "Nordic Tech Group Holding", "nordic"},
		{"punctuation", "H&M Hennes & Mauritz", "h m hennes mauritz"},
		{"whitespace collapse", "  Acme   Robotics  ", "acme robotics"},
		{"hyphenated", "E-hälsa Konsult HB", "e halsa konsult"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.in); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

var normalizedShape = regexp.MustCompile(`^[a-z0-9 ]*$`)

func TestNameIdempotentAndShaped(t *testing.T) {
	inputs := []string{
		"", "Arla Plast AB", "Hövding Sverige AB (publ)", "CEVT",
		"mavenoid.com", "Växjö Energi Aktiebolag", "IKEA of Sweden AB",
		"Bröderna Anderssons Måleri i Göteborg HB", "42 Analytics Ltd.",
	}
	for _, in := range inputs {
		once := Name(in)
		if !normalizedShape.MatchString(once) {
			t.Errorf("Name(%q) = %q contains characters outside [a-z0-9 ]", in, once)
		}
		if twice := Name(once); twice != once {
			t.Errorf("Name not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
