package index

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases s and extracts maximal runs of letters, digits
// and underscores, discarding punctuation and whitespace. Duplicates
// are retained in order; empty input yields nil.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 24)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// TokenSet is the deduplicated view of Tokenize, for overlap checks.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		out[token] = struct{}{}
	}
	return out
}
