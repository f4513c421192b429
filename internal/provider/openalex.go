package provider

import (
	"context"
	"fmt"
	"net/url"

	"refcheck/internal/similarity"
)

// OpenAlexBaseURL is the OpenAlex API base URL.
const OpenAlexBaseURL = "https://api.openalex.org"

// OpenAlex queries the OpenAlex works search endpoint and scores the first
// hit against the citation.
type OpenAlex struct {
	client
	mailto string
}

// OpenAlexOption configures an OpenAlex provider beyond the shared options.
type OpenAlexOption func(*OpenAlex)

// WithMailto adds a mailto parameter to requests, which routes them into
// OpenAlex's polite pool. Optional; requests work without it.
func WithMailto(email string) OpenAlexOption {
	return func(p *OpenAlex) {
		p.mailto = email
	}
}

// NewOpenAlex creates an OpenAlex provider.
func NewOpenAlex(opts []Option, oaOpts ...OpenAlexOption) *OpenAlex {
	p := &OpenAlex{client: newClient(OpenAlexBaseURL, opts...)}
	for _, opt := range oaOpts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *OpenAlex) Name() string { return "openalex" }

// openAlexResponse is the subset of the works search response we consume.
type openAlexResponse struct {
	Results []struct {
		DisplayName     string `json:"display_name"`
		PublicationYear int    `json:"publication_year"`
		DOI             string `json:"doi"`
	} `json:"results"`
}

// Lookup implements Provider. It requests a single result for the query and
// reports whether its display title matches the citation.
func (p *OpenAlex) Lookup(ctx context.Context, query string) Result {
	u := fmt.Sprintf("%s/works?search=%s&per-page=1", p.baseURL, url.QueryEscape(query))
	if p.mailto != "" {
		u += "&mailto=" + url.QueryEscape(p.mailto)
	}

	var resp openAlexResponse
	if err := p.getJSON(ctx, u, &resp); err != nil {
		return errorResult(p.Name(), err)
	}

	if len(resp.Results) == 0 {
		return notFoundResult(p.Name())
	}

	hit := resp.Results[0]
	return Result{
		Provider: p.Name(),
		Found:    true,
		Matched:  similarity.IsMatch(query, hit.DisplayName),
		Title:    hit.DisplayName,
		Year:     hit.PublicationYear,
		URL:      hit.DOI,
	}
}
