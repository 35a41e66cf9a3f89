package perplexity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/your-org/chat-gateway/pkg/chat"
)

func TestChatRootPath(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Perplexity mounts completions at the root, not under /v1.
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"the answer"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(chat.Config{APIKey: "test-key", BaseURL: srv.URL}, srv.Client(), nil)
	reply, err := c.Chat(context.Background(), chat.Request{Message: "what is it", System: "be brief"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Text != "the answer" || reply.Model != "Perplexity sonar" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	var payload struct {
		Messages []chat.Turn `json:"messages"`
	}
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("parse captured payload: %v", err)
	}
	if len(payload.Messages) != 2 || payload.Messages[0].Role != chat.RoleSystem {
		t.Fatalf("system prompt must lead the messages: %+v", payload.Messages)
	}
}

func TestChatUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	c := NewClient(chat.Config{APIKey: "wrong", BaseURL: srv.URL}, srv.Client(), nil)
	_, err := c.Chat(context.Background(), chat.Request{Message: "hi"})
	cerr, ok := chat.AsError(err)
	if !ok || cerr.Kind != chat.KindAuth {
		t.Fatalf("expected auth error, got %v", err)
	}
	if !strings.Contains(cerr.Message, "Perplexity") {
		t.Fatalf("message must name the provider: %q", cerr.Message)
	}
}
