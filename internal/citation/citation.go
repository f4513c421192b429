// Package citation defines the core domain types for citation verification.
package citation

import (
	"regexp"
	"strings"
)

// Status classifies a citation after all providers have been consulted.
type Status string

const (
	// StatusVerified means at least one provider returned a title that
	// matches the citation.
	StatusVerified Status = "verified"

	// StatusSuspicious means at least one provider found a record, but no
	// returned title matched the citation.
	StatusSuspicious Status = "suspicious"

	// StatusNotFound means no provider found anything. Provider errors fold
	// into this status; per-provider results retain the distinction.
	StatusNotFound Status = "not_found"
)

// Leading enumeration markers commonly found in pasted reference lists:
// "[12] ", "3. ", "(4) ".
var markerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\[\d+\]\s*`),
	regexp.MustCompile(`^\d+\.\s*`),
	regexp.MustCompile(`^\(\d+\)\s*`),
}

// Normalize strips a single leading enumeration marker from a citation line
// and trims surrounding whitespace. At most one marker is removed; markers
// are never stripped recursively. Lines without a marker pass through
// trimmed but otherwise unchanged.
func Normalize(line string) string {
	for _, pat := range markerPatterns {
		if stripped := pat.ReplaceAllString(line, ""); stripped != line {
			line = stripped
			break
		}
	}
	return strings.TrimSpace(line)
}

// SplitLines splits raw input text into citation lines, dropping blank
// lines and preserving order.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
