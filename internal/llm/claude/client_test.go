package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New("test-key", "claude-sonnet-4-20250514",
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
}

func TestGenerate_ReturnsText(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", r.Header.Get("x-api-key"))
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["model"] != "claude-sonnet-4-20250514" {
			t.Errorf("model = %v, want claude-sonnet-4-20250514", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [
				{"type": "text", "text": "Heavy rainfall "},
				{"type": "text", "text": "warning for Chennai."}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 8}
		}`))
	})

	got, err := c.Generate(context.Background(), "Summarize the headlines")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Heavy rainfall warning for Chennai." {
		t.Errorf("text = %q, want concatenated blocks", got)
	}
}

func TestGenerate_APIError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	})

	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
