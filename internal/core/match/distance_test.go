package match

import "testing"

func TestLevenshteinDistance_Table(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"smith", "smyth", 1},
		{"alice", "alicia", 2},
		{"müller", "muller", 1},
	}
	for _, tc := range tests {
		if got := LevenshteinDistance(tc.a, tc.b); got != tc.want {
			t.Fatalf("LevenshteinDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLevenshteinDistance_SymmetryAndIdentity(t *testing.T) {
	words := []string{"", "a", "john", "jon", "jonathan", "smith", "smyth", "ahmad", "ahmed", "Ω≈ç"}
	for _, a := range words {
		if d := LevenshteinDistance(a, a); d != 0 {
			t.Fatalf("LevenshteinDistance(%q, %q) = %d, want 0", a, a, d)
		}
		for _, b := range words {
			if ab, ba := LevenshteinDistance(a, b), LevenshteinDistance(b, a); ab != ba {
				t.Fatalf("asymmetric distance %q/%q: %d vs %d", a, b, ab, ba)
			}
		}
	}
}
