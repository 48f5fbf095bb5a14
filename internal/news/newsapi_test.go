package news

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

func TestNewsAPISearch(t *testing.T) {
	var gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/everything" {
			t.Errorf("path = %s, want /v2/everything", r.URL.Path)
		}
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.Query().Get("q")

		fmt.Fprint(w, `{
			"status": "ok",
			"articles": [
				{"source": {"name": "Reuters"}, "title": "Election latest",
				 "description": "Polls tighten.", "url": "https://example.com/a",
				 "publishedAt": "2026-08-20T10:00:00Z"}
			]
		}`)
	}))
	defer srv.Close()

	client := NewNewsAPIClient("key-1", srv.URL, zap.NewNop())

	articles, err := client.Search(t.Context(), "election")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotKey != "key-1" {
		t.Errorf("X-Api-Key = %q, want key-1", gotKey)
	}
	if gotQuery != "election" {
		t.Errorf("q = %q, want election", gotQuery)
	}
	if len(articles) != 1 {
		t.Fatalf("len = %d, want 1", len(articles))
	}
	if articles[0].Source != "Reuters" || articles[0].Title != "Election latest" {
		t.Errorf("article = %+v", articles[0])
	}
}

func TestNewsAPISearchMissingKey(t *testing.T) {
	client := NewNewsAPIClient("", "http://unused", zap.NewNop())

	_, err := client.Search(t.Context(), "anything")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewsAPISearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "error", "message": "apiKeyInvalid"}`)
	}))
	defer srv.Close()

	client := NewNewsAPIClient("bad-key", srv.URL, zap.NewNop())

	_, err := client.Search(t.Context(), "anything")
	if err == nil {
		t.Fatal("expected error for status=error response")
	}

	var apiErr *types.RemoteAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *types.RemoteAPIError", err)
	}
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s, want /search", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"results": [
				{"title": "Fed decision", "url": "https://example.com/b", "content": "Rates held."}
			]
		}`)
	}))
	defer srv.Close()

	client := NewTavilyClient("key-1", srv.URL, zap.NewNop())

	articles, err := client.Search(t.Context(), "fed rates")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("len = %d, want 1", len(articles))
	}
	if articles[0].Source != "tavily" || articles[0].Description != "Rates held." {
		t.Errorf("article = %+v", articles[0])
	}
}
