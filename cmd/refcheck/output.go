package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"refcheck/internal/citation"
	"refcheck/internal/verify"
)

// Title truncation length for human-readable record summaries.
const SummaryTitleLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SearchLinks are manual-review search URLs for a citation.
type SearchLinks struct {
	GoogleScholar string `json:"google_scholar"`
	BaiduXueshu   string `json:"baidu_xueshu"`
}

// buildSearchLinks builds manual-review links for a normalized query.
func buildSearchLinks(query string) SearchLinks {
	escaped := url.QueryEscape(query)
	return SearchLinks{
		GoogleScholar: "https://scholar.google.com/scholar?q=" + escaped,
		BaiduXueshu:   "https://xueshu.baidu.com/s?wd=" + escaped,
	}
}

// RecordView is a verification record plus presentation extras.
type RecordView struct {
	verify.Record
	SearchLinks SearchLinks `json:"search_links"`
}

// VerifyResult is the response for the verify command.
type VerifyResult struct {
	Total      int          `json:"total"`
	Verified   int          `json:"verified"`
	Suspicious int          `json:"suspicious"`
	NotFound   int          `json:"not_found"`
	Records    []RecordView `json:"records"`
}

// buildVerifyResult wraps records with search links and status counts.
func buildVerifyResult(records []verify.Record) VerifyResult {
	result := VerifyResult{
		Total:   len(records),
		Records: make([]RecordView, 0, len(records)),
	}
	for _, rec := range records {
		switch rec.Status {
		case citation.StatusVerified:
			result.Verified++
		case citation.StatusSuspicious:
			result.Suspicious++
		case citation.StatusNotFound:
			result.NotFound++
		}
		result.Records = append(result.Records, RecordView{
			Record:      rec,
			SearchLinks: buildSearchLinks(rec.Query),
		})
	}
	return result
}

// statusLabel maps a status to its human-readable marker.
func statusLabel(s citation.Status) string {
	switch s {
	case citation.StatusVerified:
		return "[OK]  "
	case citation.StatusSuspicious:
		return "[WARN]"
	default:
		return "[MISS]"
	}
}

// printVerifyResultHuman prints verification results in human-readable format.
func printVerifyResultHuman(result VerifyResult) {
	for i, view := range result.Records {
		fmt.Printf("%s [%d] %s\n", statusLabel(view.Status), i+1, truncateString(view.Original, SummaryTitleLen))

		for _, name := range []string{"openalex", "crossref"} {
			res, ok := view.Results[name]
			if !ok {
				continue
			}
			switch {
			case res.Errored:
				fmt.Printf("       %s: error (%s)\n", name, res.Error)
			case !res.Found:
				fmt.Printf("       %s: no record\n", name)
			case res.Matched:
				fmt.Printf("       %s: matched %q (%d)\n", name, res.Title, res.Year)
			default:
				fmt.Printf("       %s: found %q (%d) - title differs\n", name, res.Title, res.Year)
			}
		}

		if view.Status != citation.StatusVerified {
			fmt.Printf("       review: %s\n", view.SearchLinks.GoogleScholar)
		}
		fmt.Println()
	}

	fmt.Printf("%d citations: %d verified, %d suspicious, %d not found\n",
		result.Total, result.Verified, result.Suspicious, result.NotFound)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
