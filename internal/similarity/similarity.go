// Package similarity decides whether a candidate title plausibly matches a
// freeform citation line.
//
// The heuristic is keyword coverage: how many of the title's significant
// words occur somewhere in the citation. It is deliberately asymmetric and
// order-insensitive so that author names, venues, and punctuation around the
// true title do not count against a match.
package similarity

import (
	"regexp"
	"strings"
)

// CoverageThreshold is the fraction of title keywords that must appear in
// the query for a match. Untuned reference value; see DESIGN.md.
const CoverageThreshold = 0.6

// Characters outside word characters, whitespace, and the CJK unified
// ideograph block are treated as noise and replaced with spaces.
var noisePattern = regexp.MustCompile(`[^\w\s\x{4e00}-\x{9fa5}]`)

// IsMatch reports whether candidateTitle plausibly names the same work as
// the citation in query. Empty inputs never match.
func IsMatch(query, candidateTitle string) bool {
	if query == "" || candidateTitle == "" {
		return false
	}

	normQuery := normalize(query)
	normTitle := normalize(candidateTitle)

	keywords := extractKeywords(normTitle)
	if len(keywords) == 0 {
		return false
	}

	matched := 0
	for _, kw := range keywords {
		if strings.Contains(normQuery, kw) {
			matched++
		}
	}
	coverage := float64(matched) / float64(len(keywords))

	// The substring fallback handles very short titles, where per-keyword
	// coverage is too coarse a signal.
	return coverage > CoverageThreshold || strings.Contains(normQuery, normTitle)
}

// normalize lowercases s and blanks out everything that is not a word
// character, whitespace, or a CJK ideograph.
func normalize(s string) string {
	return noisePattern.ReplaceAllString(strings.ToLower(s), " ")
}

// extractKeywords returns the significant tokens of a normalized title:
// ASCII alphanumeric tokens longer than two characters, plus any token
// containing a CJK ideograph (CJK titles carry signal in single characters).
func extractKeywords(normTitle string) []string {
	var keywords []string
	for _, tok := range strings.Fields(normTitle) {
		if (len(tok) > 2 && isASCIIAlnum(tok)) || containsCJK(tok) {
			keywords = append(keywords, tok)
		}
	}
	return keywords
}

func isASCIIAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4e00 && r <= 0x9fa5 {
			return true
		}
	}
	return false
}
