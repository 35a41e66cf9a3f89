package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/your-org/chat-gateway/pkg/chat"
)

func TestChatAttributionHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "https://example.com" {
			t.Fatalf("unexpected referer: %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "My App" {
			t.Fatalf("unexpected title: %q", got)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"model":"openrouter/auto","choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(chat.Config{APIKey: "test-key", BaseURL: srv.URL}, "https://example.com", "My App", srv.Client(), nil)
	reply, err := c.Chat(context.Background(), chat.Request{Message: "hello"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Model != "OpenRouter openrouter/auto" {
		t.Fatalf("unexpected model label: %q", reply.Model)
	}
}

func TestChatModelEchoShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bare string", `{"model":"anthropic/claude-3.5-sonnet","choices":[{"message":{"content":"ok"}}]}`, "OpenRouter anthropic/claude-3.5-sonnet"},
		{"object with id", `{"model":{"id":"meta-llama/llama-3-70b"},"choices":[{"message":{"content":"ok"}}]}`, "OpenRouter meta-llama/llama-3-70b"},
		{"missing model falls back to configured", `{"choices":[{"message":{"content":"ok"}}]}`, "OpenRouter openrouter/auto"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewClient(chat.Config{APIKey: "k", BaseURL: srv.URL}, "", "", srv.Client(), nil)
			reply, err := c.Chat(context.Background(), chat.Request{Message: "hello"})
			if err != nil {
				t.Fatalf("chat failed: %v", err)
			}
			if reply.Model != tc.want {
				t.Fatalf("model label = %q, want %q", reply.Model, tc.want)
			}
		})
	}
}

func TestChatNotFoundHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"no such model"}}`))
	}))
	defer srv.Close()

	c := NewClient(chat.Config{APIKey: "k", BaseURL: srv.URL}, "", "", srv.Client(), nil)
	_, err := c.Chat(context.Background(), chat.Request{Message: "hello"})
	cerr, ok := chat.AsError(err)
	if !ok || cerr.Kind != chat.KindNotFound {
		t.Fatalf("expected not_found error, got %v", err)
	}
}
