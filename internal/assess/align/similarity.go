package align

import "github.com/antzucaro/matchr"

// Similarity returns a normalized edit-distance similarity between two word
// tokens in [0, 1]. Identical non-empty strings score 1.0; if either string
// is empty the score is 0.0. Otherwise the score is
// 1 − levenshtein(a, b) / max(len(a), len(b)), computed over runes so that
// non-Latin scripts (Thai, Arabic, CJK) are compared character by character
// in their native form, without transliteration.
//
// Similarity is symmetric and has no side effects.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	s := 1.0 - float64(matchr.Levenshtein(a, b))/float64(maxLen)
	if s < 0 {
		return 0.0
	}
	return s
}
