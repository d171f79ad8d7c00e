package match

import "strings"

// minFuzzyPartLen is the length a name part must exceed before fuzzy rules apply
const minFuzzyPartLen = 3

// maxPartDistance is the edit distance tolerated between two long name parts
const maxPartDistance = 2

// NamePartSimilarity scores how many whitespace separated parts of name1 find a
// counterpart in name2, over the larger part count. Parts match when identical,
// or when both are longer than three runes and one contains the other or they
// are within two edits. The result is in [0,1].
func NamePartSimilarity(name1, name2 string) float64 {
	p1 := strings.Fields(NormalizeName(name1))
	p2 := strings.Fields(NormalizeName(name2))
	if len(p1) == 0 || len(p2) == 0 {
		return 0
	}

	matched := 0
	for _, a := range p1 {
		for _, b := range p2 {
			if partsMatch(a, b) {
				matched++
				break
			}
		}
	}

	denom := len(p1)
	if len(p2) > denom {
		denom = len(p2)
	}
	return float64(matched) / float64(denom)
}

func partsMatch(a, b string) bool {
	if a == b {
		return true
	}
	if runeLen(a) <= minFuzzyPartLen || runeLen(b) <= minFuzzyPartLen {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return LevenshteinDistance(a, b) <= maxPartDistance
}

func runeLen(s string) int { return len([]rune(s)) }
