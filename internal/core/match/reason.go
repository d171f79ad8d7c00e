package match

import (
	"encoding/json"
	"fmt"
)

// Reason tags why two records were judged to be duplicates
type Reason uint8

// Reasons are declared in signal priority order
const (
	ExactPhone Reason = iota + 1
	SimilarPhone
	SimilarNameParts
	SimilarSoundingName
	ExactEmail
	SimilarEmail
)

var reasonLabels = map[Reason]string{
	ExactPhone:          "Exact phone number match",
	SimilarPhone:        "Similar phone number",
	SimilarNameParts:    "Similar name parts",
	SimilarSoundingName: "Similar sounding name",
	ExactEmail:          "Exact email match",
	SimilarEmail:        "Similar email address",
}

var reasonCodes = map[Reason]string{
	ExactPhone:          "exact_phone",
	SimilarPhone:        "similar_phone",
	SimilarNameParts:    "similar_name_parts",
	SimilarSoundingName: "similar_sounding_name",
	ExactEmail:          "exact_email",
	SimilarEmail:        "similar_email",
}

// AllReasons lists every reason in priority order
func AllReasons() []Reason {
	return []Reason{ExactPhone, SimilarPhone, SimilarNameParts, SimilarSoundingName, ExactEmail, SimilarEmail}
}

// String returns the human readable label shown to operators
func (r Reason) String() string {
	if s, ok := reasonLabels[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", uint8(r))
}

// Code returns the stable machine code used on the wire
func (r Reason) Code() string {
	if s, ok := reasonCodes[r]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether r is one of the declared reasons
func (r Reason) Valid() bool {
	_, ok := reasonLabels[r]
	return ok
}

// MarshalJSON encodes the reason as its code
func (r Reason) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("match: invalid reason %d", uint8(r))
	}
	return json.Marshal(r.Code())
}

// UnmarshalJSON decodes a reason code
func (r *Reason) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseReason(s)
	if err != nil {
		return err
	}
	*r = p
	return nil
}

// ParseReason maps a code back to its Reason
func ParseReason(code string) (Reason, error) {
	for r, c := range reasonCodes {
		if c == code {
			return r, nil
		}
	}
	return 0, fmt.Errorf("match: unknown reason %q", code)
}

// Reasons is an ordered set of reason tags
type Reasons []Reason

// Has reports whether rs contains r
func (rs Reasons) Has(r Reason) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

// Add returns rs with r appended when it is not already present
func (rs Reasons) Add(r Reason) Reasons {
	if rs.Has(r) {
		return rs
	}
	return append(rs, r)
}

// Union returns rs extended with the members of other not yet present,
// keeping first-seen order
func (rs Reasons) Union(other Reasons) Reasons {
	out := append(Reasons(nil), rs...)
	for _, r := range other {
		out = out.Add(r)
	}
	return out
}

// Labels renders each reason as its human readable label
func (rs Reasons) Labels() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}
	return out
}
