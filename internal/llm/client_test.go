package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCompleteRoundTrip(t *testing.T) {
	var gotPath string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hello there"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-model", "", 5*time.Second)
	out, err := c.Complete(context.Background(), []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "hello there" {
		t.Fatalf("unexpected content: %q", out)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 2 {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
}

func TestCompleteErrorPaths(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http error", http.StatusBadGateway, "upstream down", "status 502"},
		{"api error field", http.StatusOK, `{"error":{"message":"rate limited","type":"rate_limit"}}`, "rate limited"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()
			c := NewHTTPClient(srv.URL, "m", "", 5*time.Second)
			_, err := c.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCompleteRequiresMessages(t *testing.T) {
	c := NewHTTPClient("http://localhost:0", "m", "", time.Second)
	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty messages")
	}
}
