// Package pdfref extracts the reference list from a PDF so a paper's
// bibliography can be verified without copy-pasting it.
package pdfref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Section headings that start a reference list. Matched against a whole
// line, case-insensitively, with optional section numbering and colon.
var headingPattern = regexp.MustCompile(`(?i)^\s*(?:[0-9ivx]+\.?\s+)?(references|bibliography|literature cited|works cited|参考文献)\s*:?\s*$`)

// ExtractReferences reads a PDF and returns the text of its reference
// section. It returns an error if the file cannot be read or no reference
// heading is found.
func ExtractReferences(filePath string) (string, error) {
	text, err := extractText(filePath)
	if err != nil {
		return "", fmt.Errorf("reading PDF: %w", err)
	}

	section, ok := ReferencesSection(text)
	if !ok {
		return "", fmt.Errorf("no reference section found in %s", filePath)
	}
	return section, nil
}

// ReferencesSection locates the reference list inside extracted page text
// and returns everything after its heading. The last matching heading wins,
// since papers may mention "References" in running text before the actual
// section.
func ReferencesSection(text string) (string, bool) {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if headingPattern.MatchString(line) {
			start = i + 1
		}
	}
	if start < 0 || start >= len(lines) {
		return "", false
	}

	return strings.Join(lines[start:], "\n"), true
}

// extractText extracts plain text from every page of a PDF. Pages that fail
// to decode are skipped.
func extractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var builder strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
