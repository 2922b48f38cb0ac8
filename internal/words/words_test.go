package words

import "testing"

func TestIsPlayable(t *testing.T) {
	cases := []struct {
		answer string
		letter string
		want   bool
	}{
		{"Bear", "B", true},
		{"bear", "B", true},
		{"  Bear  ", "B", true},
		{"Bear", "C", false},
		{"", "B", false},
		{"   ", "B", false},
		{"B3ar", "B", false},
		{"New York", "N", true},
		{"O'Brien", "O", true},
		{"Jean-Luc", "J", true},
		{"Bear!", "B", false},
	}
	for _, tc := range cases {
		if got := IsPlayable(tc.answer, tc.letter); got != tc.want {
			t.Errorf("IsPlayable(%q, %q) = %v, want %v", tc.answer, tc.letter, got, tc.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"ben", "bon", 1},
		{"ben", "bean", 1},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLikelyName(t *testing.T) {
	if !LikelyName("Ben") {
		t.Error("Ben is a dictionary name")
	}
	if !LikelyName("  BENJAMIN  ") {
		t.Error("normalization should make Benjamin match")
	}
	// One edit away from "ben" but too short for fuzzy matching.
	if LikelyName("Bn") {
		t.Error("two-letter inputs never fuzzy-match")
	}
	if !LikelyName("Benjamim") {
		t.Error("one typo away from Benjamin should match")
	}
	if LikelyName("Xqzw") {
		t.Error("nonsense should not look like a name")
	}
	if LikelyName("") {
		t.Error("empty input is not a name")
	}
}

func TestMatchesCategory(t *testing.T) {
	cases := []struct {
		category string
		answer   string
		want     bool
	}{
		{"Animal", "Bear", true},
		{"animal", "  BEAR ", true},
		{"Animal", "Bzzz", false},
		{"Name", "Ben", true},
		{"Country", "Brazil", true},
		{"City", "Berlin", true},
		{"Place", "Berlin", true},
		{"Place", "Brazil", true},
		{"Place", "Ben", false},
		{"Food", "Burger", true},
		{"Movie", "Batman", true},
		{"Brand", "BMW", true},
		{"Thing", "Bottle", true},
		{"Thing", "Bear", false},
		{"Thing", "Berlin", false},
		{"Quest", "Balloon", true}, // unknown categories accept anything
		{"Animal", "", false},
	}
	for _, tc := range cases {
		if got := MatchesCategory(tc.category, tc.answer); got != tc.want {
			t.Errorf("MatchesCategory(%q, %q) = %v, want %v", tc.category, tc.answer, got, tc.want)
		}
	}
}

func TestKnownMatch(t *testing.T) {
	cases := []struct {
		category string
		answer   string
		want     bool
	}{
		{"Animal", "Bear", true},
		{"Name", "Ben", true},
		{"Name", "Benjamim", false}, // fuzzy is not a positive hit
		{"Place", "Berlin", true},
		{"Thing", "Bottle", false}, // no positive set for Thing
		{"Quest", "Balloon", false},
		{"Animal", "", false},
	}
	for _, tc := range cases {
		if got := KnownMatch(tc.category, tc.answer); got != tc.want {
			t.Errorf("KnownMatch(%q, %q) = %v, want %v", tc.category, tc.answer, got, tc.want)
		}
	}
}
