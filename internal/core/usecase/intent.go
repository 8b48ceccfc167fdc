package usecase

import "strings"

// Lead words that mark an input as an informational question rather
// than a guided answer. The check is a heuristic gate, not a
// classifier with confidence: false positives and false negatives are
// accepted product risk.
var questionLeadWords = []string{
	"how", "what", "why", "when", "where", "who", "which",
	"can", "could", "should", "is", "are", "do", "does",
}

// looksLikeQuestion reports whether text reads as a side question.
// True if it ends with '?' or starts with a question lead word followed
// by a word boundary. Total: empty input is simply false.
func looksLikeQuestion(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, "?") {
		return true
	}
	for _, lead := range questionLeadWords {
		if t == lead {
			return true
		}
		if strings.HasPrefix(t, lead) && len(t) > len(lead) && isWordBreak(rune(t[len(lead)])) {
			return true
		}
	}
	return false
}

func isWordBreak(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return false
	case r >= '0' && r <= '9':
		return false
	case r == '_':
		return false
	default:
		return true
	}
}
