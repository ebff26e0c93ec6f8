package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pluqqy/pluqqy-convert/pkg/ai"
	"github.com/pluqqy/pluqqy-convert/pkg/normalize"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Fatalf("expected /api/chat, got %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llama3" {
			t.Fatalf("unexpected model: %q", req.Model)
		}
		if req.Stream {
			t.Fatalf("expected stream=false")
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Content != "convert me" {
			t.Fatalf("unexpected messages: %+v", req.Messages)
		}
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"x = 1"},"done":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "llama3", 5*time.Second)
	resp, err := client.Chat(context.Background(), "convert me")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if resp.Kind != normalize.KindSingleContent || resp.Content != "x = 1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChatStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: ai.ErrUnauthorized},
		{name: "rate limited", status: http.StatusTooManyRequests, want: ai.ErrRateLimited},
		{name: "server error", status: http.StatusBadGateway, want: ai.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewClient(server.URL, "llama3", time.Second).Chat(context.Background(), "p")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestChatBadRequestKeepsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"nope\" not found"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "nope", time.Second).Chat(context.Background(), "p")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != `request failed: 404 Not Found: {"error":"model \"nope\" not found"}` {
		t.Fatalf("unexpected error text: %q", got)
	}
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	client := NewClient("  ", "llama3", time.Second)
	if client.baseURL != DefaultBaseURL {
		t.Fatalf("expected default base URL, got %q", client.baseURL)
	}
}
