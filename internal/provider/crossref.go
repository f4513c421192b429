package provider

import (
	"context"
	"fmt"
	"net/url"

	"refcheck/internal/similarity"
)

// CrossRefBaseURL is the CrossRef REST API base URL.
const CrossRefBaseURL = "https://api.crossref.org"

// CrossRef queries the CrossRef bibliographic match endpoint, which is
// built for exactly this kind of unstructured citation string.
type CrossRef struct {
	client
}

// NewCrossRef creates a CrossRef provider.
func NewCrossRef(opts ...Option) *CrossRef {
	return &CrossRef{client: newClient(CrossRefBaseURL, opts...)}
}

// Name implements Provider.
func (p *CrossRef) Name() string { return "crossref" }

// crossRefResponse is the subset of the works response we consume.
// Title is a list; Created carries the record creation date as nested
// date-parts. Both are routinely missing on partial records.
type crossRefResponse struct {
	Message struct {
		Items []struct {
			Title   []string `json:"title"`
			Created struct {
				DateParts [][]int `json:"date-parts"`
			} `json:"created"`
			URL string `json:"URL"`
		} `json:"items"`
	} `json:"message"`
}

// Lookup implements Provider. It requests a single row for the query and
// reports whether its title matches the citation. Missing fields degrade to
// zero values; a record with no title still counts as found but unmatched.
func (p *CrossRef) Lookup(ctx context.Context, query string) Result {
	u := fmt.Sprintf("%s/works?query.bibliographic=%s&rows=1", p.baseURL, url.QueryEscape(query))

	var resp crossRefResponse
	if err := p.getJSON(ctx, u, &resp); err != nil {
		return errorResult(p.Name(), err)
	}

	if len(resp.Message.Items) == 0 {
		return notFoundResult(p.Name())
	}

	hit := resp.Message.Items[0]

	var title string
	if len(hit.Title) > 0 {
		title = hit.Title[0]
	}

	var year int
	if parts := hit.Created.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		year = parts[0][0]
	}

	return Result{
		Provider: p.Name(),
		Found:    true,
		Matched:  similarity.IsMatch(query, title),
		Title:    title,
		Year:     year,
		URL:      hit.URL,
	}
}
