package match

// Scores assigned by the interactive signals
const (
	ExactScore         = 1.0
	SimilarPhoneScore  = 0.8
	SoundingNameScore  = 0.9
	SimilarEmailScore  = 0.7
	NamePartsThreshold = 0.7
)

// phoneSimilarSuffix is the trailing digit count compared for near phone matches
const phoneSimilarSuffix = 6

// maxLocalPartDistance bounds the edit distance between email local parts
const maxLocalPartDistance = 3

// Signal is the outcome of comparing one field of two records
type Signal struct {
	Similarity float64
	Reasons    Reasons
}

// Matched reports whether the signal fired
func (s Signal) Matched() bool { return len(s.Reasons) > 0 }

// ComparePhones matches normalized phones exactly, then on their last six digits
func ComparePhones(a, b string) Signal {
	na, nb := NormalizePhone(a), NormalizePhone(b)
	if na == "" || nb == "" {
		return Signal{}
	}
	if na == nb {
		return Signal{Similarity: ExactScore, Reasons: Reasons{ExactPhone}}
	}
	if len(na) >= phoneSimilarSuffix && len(nb) >= phoneSimilarSuffix &&
		na[len(na)-phoneSimilarSuffix:] == nb[len(nb)-phoneSimilarSuffix:] {
		return Signal{Similarity: SimilarPhoneScore, Reasons: Reasons{SimilarPhone}}
	}
	return Signal{}
}

// CompareNames fires when the name parts overlap above the threshold or the
// phonetic keys agree; similarity is the larger of the two scores
func CompareNames(a, b string) Signal {
	if NormalizeName(a) == "" || NormalizeName(b) == "" {
		return Signal{}
	}
	partSim := NamePartSimilarity(a, b)
	ka, kb := PhoneticKey(a), PhoneticKey(b)
	phonetic := ka != "" && ka == kb

	var out Signal
	if partSim > NamePartsThreshold {
		out.Similarity = partSim
		out.Reasons = out.Reasons.Add(SimilarNameParts)
	}
	if phonetic {
		if SoundingNameScore > out.Similarity {
			out.Similarity = SoundingNameScore
		}
		out.Reasons = out.Reasons.Add(SimilarSoundingName)
	}
	return out
}

// CompareEmails matches full addresses exactly (case sensitive), then on equal
// domains with local parts within three edits
func CompareEmails(a, b string) Signal {
	if a == "" || b == "" {
		return Signal{}
	}
	if a == b {
		return Signal{Similarity: ExactScore, Reasons: Reasons{ExactEmail}}
	}
	la, da, okA := splitEmail(a)
	lb, db, okB := splitEmail(b)
	if !okA || !okB || da != db {
		return Signal{}
	}
	if LevenshteinDistance(la, lb) <= maxLocalPartDistance {
		return Signal{Similarity: SimilarEmailScore, Reasons: Reasons{SimilarEmail}}
	}
	return Signal{}
}
