package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mselser95/polymarket-agent/pkg/types"
	"go.uber.org/zap"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(&Config{Logger: zap.NewNop()})
	if err == nil {
		t.Fatal("expected error without API key")
	}

	var llmErr *types.LLMError
	if !errors.As(err, &llmErr) {
		t.Fatalf("error type = %T, want *types.LLMError", err)
	}
}

func TestAsk(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"forty-two"}}]}`)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	answer, err := client.Ask(t.Context(), "What is the answer?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "forty-two" {
		t.Errorf("answer = %q, want forty-two", answer)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want Bearer sk-test", gotAuth)
	}
}

func TestAskUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Ask(t.Context(), "anything")
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var llmErr *types.LLMError
	if !errors.As(err, &llmErr) {
		t.Fatalf("error type = %T, want *types.LLMError", err)
	}
	if llmErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", llmErr.StatusCode)
	}
}

func TestAskRateLimited(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	// 60/min refills one token per second; burst 1 means the second call
	// must wait a full second.
	client, err := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL, RatePerMin: 60, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Ask(t.Context(), "first"); err != nil {
		t.Fatalf("first Ask: %v", err)
	}

	// A deadline shorter than the refill interval makes the limiter fail
	// fast, before any request is sent.
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Ask(ctx, "second")
	if err == nil {
		t.Fatal("expected error when limiter wait exceeds the deadline")
	}
	var llmErr *types.LLMError
	if !errors.As(err, &llmErr) {
		t.Fatalf("error type = %T, want *types.LLMError", err)
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1 (second call must not reach the API)", calls)
	}
}

func TestAskPacesConsecutiveCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	// 3000/min is 50/s: three calls reserve at least 40ms of wait.
	client, err := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL, RatePerMin: 3000, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.Ask(t.Context(), "q"); err != nil {
			t.Fatalf("Ask %d: %v", i, err)
		}
	}

	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Errorf("elapsed = %v, want at least the limiter pacing", elapsed)
	}
}

func TestEmbedIndexAligned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %s, want /embeddings", r.URL.Path)
		}
		// Out-of-order indices must still align by index.
		fmt.Fprint(w, `{"data":[
			{"index": 1, "embedding": [0.0, 1.0]},
			{"index": 0, "embedding": [1.0, 0.0]}
		]}`)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	vectors, err := client.Embed(t.Context(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if len(vectors) != 2 {
		t.Fatalf("len = %d, want 2", len(vectors))
	}
	if vectors[0][0] != 1.0 || vectors[1][1] != 1.0 {
		t.Errorf("vectors not index-aligned: %v", vectors)
	}
}

func TestEmbedCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"index": 0, "embedding": [1.0]}]}`)
	}))
	defer srv.Close()

	client, err := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Embed(t.Context(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error when embedding count does not match input count")
	}
}
