package match

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// phoneSuffixLen is the number of trailing digits kept from a phone number
const phoneSuffixLen = 8

// casers are not safe for concurrent use so each caller takes a chain from the pool
var lowerPool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFC, cases.Lower(language.Und))
	},
}

// NormalizePhone keeps the digits of phone and returns the last eight of them
// absent input yields an empty string that never matches
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > phoneSuffixLen {
		return digits[len(digits)-phoneSuffixLen:]
	}
	return digits
}

// NormalizeName lowercases name, collapses internal whitespace and trims it
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	tr := lowerPool.Get().(transform.Transformer)
	lowered, _, err := transform.String(tr, strings.ToValidUTF8(name, ""))
	tr.Reset()
	lowerPool.Put(tr)
	if err != nil {
		lowered = strings.ToLower(name)
	}
	return strings.Join(strings.Fields(lowered), " ")
}

// NormalizeEmail trims and lowercases an email address
// used for bucketing, interactive exact matching stays case sensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// splitEmail returns the local and domain parts of an address
func splitEmail(email string) (local, domain string, ok bool) {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "", "", false
	}
	return email[:at], email[at+1:], true
}
