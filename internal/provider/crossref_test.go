package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCrossRefLookupMatch(t *testing.T) {
	var gotQuery, gotRows string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query.bibliographic")
		gotRows = r.URL.Query().Get("rows")
		w.Write([]byte(`{
			"message": {
				"items": [{
					"title": ["Attention Is All You Need", "Alternate Title"],
					"created": {"date-parts": [[2017, 12, 6]]},
					"URL": "https://doi.org/10.48550/arXiv.1706.03762"
				}]
			}
		}`))
	}))
	defer srv.Close()

	p := NewCrossRef(WithBaseURL(srv.URL))
	res := p.Lookup(context.Background(), "[1] Attention Is All You Need. Vaswani et al. 2017.")

	if gotQuery != "[1] Attention Is All You Need. Vaswani et al. 2017." {
		t.Errorf("query.bibliographic = %q", gotQuery)
	}
	if gotRows != "1" {
		t.Errorf("rows = %q, want 1", gotRows)
	}
	if res.Errored {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if !res.Found || !res.Matched {
		t.Errorf("Found = %v, Matched = %v, want both true", res.Found, res.Matched)
	}
	if res.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q, want first list element", res.Title)
	}
	if res.Year != 2017 {
		t.Errorf("Year = %d, want 2017", res.Year)
	}
	if res.URL != "https://doi.org/10.48550/arXiv.1706.03762" {
		t.Errorf("URL = %q", res.URL)
	}
	if res.Provider != "crossref" {
		t.Errorf("Provider = %q, want crossref", res.Provider)
	}
}

func TestCrossRefLookupEmptyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"items": []}}`))
	}))
	defer srv.Close()

	p := NewCrossRef(WithBaseURL(srv.URL))
	res := p.Lookup(context.Background(), "ghost citation")

	if res.Found || res.Errored {
		t.Errorf("want clean not-found, got %+v", res)
	}
}

func TestCrossRefLookupMissingFields(t *testing.T) {
	// No title, no created date, no URL: still a found record.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"items": [{}]}}`))
	}))
	defer srv.Close()

	p := NewCrossRef(WithBaseURL(srv.URL))
	res := p.Lookup(context.Background(), "anything")

	if res.Errored {
		t.Fatalf("partial record must not error: %s", res.Error)
	}
	if !res.Found {
		t.Error("a result with missing fields still counts as found")
	}
	if res.Matched || res.Title != "" || res.Year != 0 || res.URL != "" {
		t.Errorf("want zero-valued fields, got %+v", res)
	}
}

func TestCrossRefLookupEmptyDateParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"items": [{"title": ["Some Work"], "created": {"date-parts": [[]]}}]}}`))
	}))
	defer srv.Close()

	p := NewCrossRef(WithBaseURL(srv.URL))
	res := p.Lookup(context.Background(), "Some Work")

	if res.Errored {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if res.Year != 0 {
		t.Errorf("Year = %d, want 0 for empty date-parts", res.Year)
	}
}

func TestCrossRefLookupMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": `))
	}))
	defer srv.Close()

	p := NewCrossRef(WithBaseURL(srv.URL))
	res := p.Lookup(context.Background(), "anything")

	if !res.Errored {
		t.Fatal("expected Errored for malformed JSON")
	}
}

func TestCrossRefLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewCrossRef(WithBaseURL(srv.URL))
	res := p.Lookup(context.Background(), "anything")

	if !res.Errored || res.Found {
		t.Errorf("want errored not-found, got %+v", res)
	}
}
