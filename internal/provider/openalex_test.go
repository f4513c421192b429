package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAlexLookupMatch(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("search")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [{
				"display_name": "Attention Is All You Need",
				"publication_year": 2017,
				"doi": "https://doi.org/10.48550/arXiv.1706.03762"
			}]
		}`))
	}))
	defer srv.Close()

	p := NewOpenAlex([]Option{WithBaseURL(srv.URL)})
	res := p.Lookup(context.Background(), "Attention Is All You Need, Vaswani et al. 2017")

	if gotPath != "/works" {
		t.Errorf("request path = %q, want /works", gotPath)
	}
	if gotQuery != "Attention Is All You Need, Vaswani et al. 2017" {
		t.Errorf("search query = %q", gotQuery)
	}
	if res.Errored {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !res.Found || !res.Matched {
		t.Errorf("Found = %v, Matched = %v, want both true", res.Found, res.Matched)
	}
	if res.Title != "Attention Is All You Need" || res.Year != 2017 {
		t.Errorf("Title = %q, Year = %d", res.Title, res.Year)
	}
	if res.URL != "https://doi.org/10.48550/arXiv.1706.03762" {
		t.Errorf("URL = %q", res.URL)
	}
	if res.Provider != "openalex" {
		t.Errorf("Provider = %q, want openalex", res.Provider)
	}
}

func TestOpenAlexLookupFoundButDifferent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"display_name": "An Entirely Different Manuscript", "publication_year": 1999}]}`))
	}))
	defer srv.Close()

	p := NewOpenAlex([]Option{WithBaseURL(srv.URL)})
	res := p.Lookup(context.Background(), "Attention Is All You Need")

	if !res.Found {
		t.Error("expected Found for a non-empty result set")
	}
	if res.Matched {
		t.Error("expected Matched false for an unrelated title")
	}
}

func TestOpenAlexLookupEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	p := NewOpenAlex([]Option{WithBaseURL(srv.URL)})
	res := p.Lookup(context.Background(), "ghost citation")

	if res.Found || res.Matched || res.Errored {
		t.Errorf("want clean not-found, got %+v", res)
	}
}

func TestOpenAlexLookupHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenAlex([]Option{WithBaseURL(srv.URL)})
	res := p.Lookup(context.Background(), "anything")

	if !res.Errored {
		t.Fatal("expected Errored for HTTP 429")
	}
	if res.Found || res.Matched {
		t.Errorf("errored result must not be found/matched: %+v", res)
	}
	if res.Error == "" {
		t.Error("expected a diagnostic message")
	}
}

func TestOpenAlexLookupTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	p := NewOpenAlex([]Option{WithBaseURL(srv.URL)})
	res := p.Lookup(context.Background(), "anything")

	if !res.Errored {
		t.Fatal("expected Errored for transport failure")
	}
}

func TestOpenAlexLookupMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{}]}`))
	}))
	defer srv.Close()

	p := NewOpenAlex([]Option{WithBaseURL(srv.URL)})
	res := p.Lookup(context.Background(), "anything")

	if res.Errored {
		t.Fatalf("partial record must not error: %s", res.Error)
	}
	if !res.Found {
		t.Error("a result with missing fields still counts as found")
	}
	if res.Matched {
		t.Error("empty title must not match")
	}
}

func TestOpenAlexMailto(t *testing.T) {
	var gotMailto string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMailto = r.URL.Query().Get("mailto")
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	p := NewOpenAlex([]Option{WithBaseURL(srv.URL)}, WithMailto("ops@example.org"))
	p.Lookup(context.Background(), "anything")

	if gotMailto != "ops@example.org" {
		t.Errorf("mailto = %q, want ops@example.org", gotMailto)
	}
}
