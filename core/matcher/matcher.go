package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinISBNDigits is the number of digits a query needs before ISBN matching applies.
const MinISBNDigits = 10

// Normalize lowercases s, strips diacritics and collapses whitespace.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// Tokens splits an already normalized string on whitespace.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// DigitsOnly returns the ASCII digits of s in order.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CountPresent returns how many tokens occur in haystack.
func CountPresent(haystack string, tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			n++
		}
	}
	return n
}

// Query is a search term prepared once for repeated matching.
type Query struct {
	Raw        string
	Normalized string
	Tokens     []string
	ISBNDigits string
}

// NewQuery normalizes raw. isbn is optional and only used by MatchesISBN.
func NewQuery(raw, isbn string) Query {
	n := Normalize(raw)
	return Query{
		Raw:        raw,
		Normalized: n,
		Tokens:     Tokens(n),
		ISBNDigits: DigitsOnly(isbn),
	}
}

// Empty reports whether the query has nothing to match on.
func (q Query) Empty() bool {
	return q.Normalized == "" && !q.HasISBN()
}

// HasISBN reports whether the ISBN rule applies to this query.
func (q Query) HasISBN() bool {
	return len(q.ISBNDigits) >= MinISBNDigits
}

// MatchesISBN compares digits only, in either direction.
func (q Query) MatchesISBN(candidate string) bool {
	if !q.HasISBN() {
		return false
	}
	digits := DigitsOnly(candidate)
	if digits == "" {
		return false
	}
	return strings.Contains(digits, q.ISBNDigits) || strings.Contains(q.ISBNDigits, digits) && len(digits) >= MinISBNDigits
}

// MatchesName applies the catalog name rule against a candidate product name.
func (q Query) MatchesName(candidate string) bool {
	if q.Normalized == "" {
		return false
	}
	c := Normalize(candidate)
	if c == "" {
		return false
	}
	if strings.Contains(c, q.Normalized) || strings.Contains(q.Normalized, c) {
		return true
	}
	if len(q.Tokens) >= 2 {
		return CountPresent(c, q.Tokens) >= min(len(q.Tokens), 2)
	}
	return false
}

// MatchesCandidate applies the ISBN rule when the query carries an ISBN,
// and the name rule otherwise.
func (q Query) MatchesCandidate(name, isbn string) bool {
	if q.HasISBN() {
		return q.MatchesISBN(isbn)
	}
	return q.MatchesName(name)
}

// MatchesFields applies the search rule over a set of item fields.
func (q Query) MatchesFields(fields ...string) bool {
	if q.Normalized == "" {
		return false
	}
	normalized := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		nf := Normalize(f)
		if strings.Contains(nf, q.Normalized) {
			return true
		}
		normalized = append(normalized, nf)
	}
	if len(q.Tokens) < 2 {
		return false
	}
	for _, tok := range q.Tokens {
		found := false
		for _, nf := range normalized {
			if strings.Contains(nf, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
