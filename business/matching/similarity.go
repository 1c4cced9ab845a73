// Package matching holds the pure scoring functions behind duplicate detection
// and quick-pick search. Nothing in here performs I/O or reads the clock.
package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EditDistance returns the Levenshtein distance between a and b, counting
// code points. Comparison is case-sensitive; callers fold case first.
func EditDistance(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return utf8.RuneCountInString(b)
	}
	if b == "" {
		return utf8.RuneCountInString(a)
	}
	return levenshtein.ComputeDistance(a, b)
}

// SimilarityRatio maps the edit distance into [0,1] relative to the longer
// string. Two empty strings are identical.
func SimilarityRatio(a, b string) float64 {
	longer, shorter := a, b
	longerLen, shorterLen := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if shorterLen > longerLen || (shorterLen == longerLen && b > a) {
		longer, shorter = b, a
		longerLen = shorterLen
	}
	if longerLen == 0 {
		return 1.0
	}

	ratio := float64(longerLen-EditDistance(longer, shorter)) / float64(longerLen)
	return clamp01(ratio)
}

// FuzzySubsequenceScore scores needle against haystack, ignoring case.
// A contiguous hit scores len(needle)/len(haystack); otherwise the needle's
// characters must all appear in order, scoring matched/len(haystack).
func FuzzySubsequenceScore(haystack, needle string) float64 {
	h := []rune(lower(haystack))
	n := []rune(lower(needle))
	if len(h) == 0 || len(n) == 0 {
		return 0
	}

	if strings.Contains(string(h), string(n)) {
		return float64(len(n)) / float64(len(h))
	}

	matched := 0
	for _, r := range h {
		if matched == len(n) {
			break
		}
		if r == n[matched] {
			matched++
		}
	}
	if matched < len(n) {
		return 0
	}
	return float64(matched) / float64(len(h))
}

// lower folds case with full Unicode mappings. Casers are not safe for
// concurrent use, so one is built per call.
func lower(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
