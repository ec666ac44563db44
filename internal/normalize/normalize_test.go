package normalize_test

import (
	"testing"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/normalize"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Firefly",
			want:  "firefly",
		},
		{
			name:  "strips punctuation",
			input: "Firefly (Jim Yosef)",
			want:  "firefly jim yosef",
		},
		{
			name:  "underscores become spaces",
			input: "obscure_track",
			want:  "obscure track",
		},
		{
			name:  "collapses separator runs",
			input: "Don't  --  Stop!!",
			want:  "don t stop",
		},
		{
			name:  "keeps digits",
			input: "Track 03 (Remix 2019)",
			want:  "track 03 remix 2019",
		},
		{
			// U+0130 folds to "i" plus a combining dot; the dot must be
			// filtered like any other separator.
			name:  "dotted capital I",
			input: "DİSCO",
			want:  "di sco",
		},
		{
			name:  "dotted capital I mid-title",
			input: "İstanbul Trip",
			want:  "i stanbul trip",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "separators only",
			input: "-- __ ()",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalize.Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Firefly (Jim Yosef)",
		"obscure_track",
		"  Mixed   CASE  Title  ",
		"DİSCO",
		"İstanbul Trip",
		"",
	}
	for _, input := range inputs {
		once := normalize.Normalize(input)
		twice := normalize.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	// Punctuated titles and plain spellings must reduce to the same form so
	// file stems can match song names.
	pairs := [][2]string{
		{"Firefly (Jim Yosef)", "firefly jim yosef"},
		{"Obscure Track", "obscure_track"},
		{"AC/DC - Thunderstruck", "ac dc thunderstruck"},
	}
	for _, pair := range pairs {
		a := normalize.Normalize(pair[0])
		b := normalize.Normalize(pair[1])
		if a != b {
			t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q; want equal", pair[0], a, pair[1], b)
		}
	}
}
