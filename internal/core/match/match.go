// Package match holds the pure duplicate matching kernel: normalization,
// edit distance, phonetic folding, name part scoring and reason tags
package match

import "sort"

// Record is a customer record as read from the record store
// empty strings stand for absent fields
type Record struct {
	ID          string
	FullName    string
	PhoneNumber string
	Email       string
}

// Empty reports whether the record carries nothing to match on
func (r Record) Empty() bool {
	return r.FullName == "" && r.PhoneNumber == "" && r.Email == ""
}

// Candidate is a record scored against a probe record
type Candidate struct {
	ID          string
	FullName    string
	PhoneNumber string
	Email       string
	Similarity  float64
	Reasons     Reasons
}

// FromRecord builds a candidate carrying r's fields and the given signal
func FromRecord(r Record, s Signal) Candidate {
	return Candidate{
		ID:          r.ID,
		FullName:    r.FullName,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Similarity:  clamp(s.Similarity),
		Reasons:     append(Reasons(nil), s.Reasons...),
	}
}

// SortBySimilarity orders candidates by similarity descending, keeping the
// relative order of equal scores
func SortBySimilarity(cs []Candidate) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Similarity > cs[j].Similarity })
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
