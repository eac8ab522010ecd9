package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func respond(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Fatal(err)
	}
}

func newTestClient(baseURL string, opts ...Option) *Client {
	cfg := Config{APIKey: "test-key", BaseURL: baseURL, Model: "test-model"}
	return NewClient(cfg, opts...)
}

func TestClassifyFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("expected system+user messages, got %d", len(req.Messages))
		}
		respond(t, w, `{"category": "documents", "reason": "pdf extension"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.ClassifyFile(context.Background(), []string{"documents", "images"}, "name=a.pdf size=10 mime=application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != "documents" {
		t.Fatalf("category = %q", got.Category)
	}
	if got.Raw == "" {
		t.Fatal("raw payload should be preserved")
	}
}

func TestClassifyFileRetriesOn429(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		respond(t, w, `{"category": "images"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL,
		WithRetryMaxAttempts(3),
		WithRetryBackoff(time.Millisecond, 10*time.Millisecond),
		WithSleeper(func(time.Duration) {}),
	)
	got, err := client.ClassifyFile(context.Background(), []string{"images"}, "name=a.png")
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != "images" {
		t.Fatalf("category = %q", got.Category)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestClassifyFileDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithRetryMaxAttempts(3), WithSleeper(func(time.Duration) {}))
	if _, err := client.ClassifyFile(context.Background(), []string{"images"}, "name=a.png"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestClassifyFileRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:1"})
	if _, err := client.ClassifyFile(context.Background(), []string{"x"}, "desc"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestDecodeJSONStripsCodeFence(t *testing.T) {
	var parsed Classification
	content := "```json\n{\"category\": \"music\"}\n```"
	if err := DecodeJSON(content, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Category != "music" {
		t.Fatalf("category = %q", parsed.Category)
	}
}

func TestDecodeJSONPlainPayload(t *testing.T) {
	var parsed Classification
	if err := DecodeJSON(`{"category":"videos","reason":"mkv"}`, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Category != "videos" || parsed.Reason != "mkv" {
		t.Fatalf("parsed = %+v", parsed)
	}
}
