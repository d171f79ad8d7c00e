package match

import "github.com/agnivade/levenshtein"

// LevenshteinDistance returns the unit cost edit distance between a and b
// counted in runes
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	return levenshtein.ComputeDistance(a, b)
}
