package xai

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

func TestChatSuccess(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"world"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(chat.Config{APIKey: "test-key", BaseURL: srv.URL, Model: "grok-2-latest"}, srv.Client(), nil)
	reply, err := c.Chat(context.Background(), chat.Request{Message: "hello"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Text != "world" || reply.Model != "Grok grok-2-latest" {
		t.Fatalf("unexpected reply: %+v", reply)
	}

	var payload struct {
		Stream   *bool `json:"stream"`
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("parse captured payload: %v", err)
	}
	if payload.Stream == nil || *payload.Stream {
		t.Fatalf("stream must be explicitly false: %s", string(captured))
	}
	if len(payload.Messages) != 1 || payload.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages: %s", string(captured))
	}
}

func TestChatSystemPromptPrepended(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(chat.Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), nil)
	history := []chat.Turn{{Role: chat.RoleAssistant, Content: "earlier"}}
	if _, err := c.Chat(context.Background(), chat.Request{Message: "now", History: history, System: "be brief"}); err != nil {
		t.Fatalf("chat failed: %v", err)
	}

	var payload struct {
		Messages []chat.Turn `json:"messages"`
	}
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("parse captured payload: %v", err)
	}
	if len(payload.Messages) != 3 {
		t.Fatalf("expected system+history+current, got %d messages", len(payload.Messages))
	}
	if payload.Messages[0].Role != chat.RoleSystem || payload.Messages[0].Content != "be brief" {
		t.Fatalf("system prompt not first: %+v", payload.Messages[0])
	}
	if payload.Messages[1].Role != chat.RoleAssistant {
		t.Fatalf("assistant role must pass through unchanged: %+v", payload.Messages[1])
	}
}

func TestChatUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	c := NewClient(chat.Config{APIKey: "k", BaseURL: srv.URL}, srv.Client(), nil)
	_, err := c.Chat(context.Background(), chat.Request{Message: "hello"})
	cerr, ok := chat.AsError(err)
	if !ok || cerr.Kind != chat.KindAuth {
		t.Fatalf("expected auth error, got %v", err)
	}
	if !strings.Contains(cerr.Message, "Grok") {
		t.Fatalf("message should point at provider settings: %q", cerr.Message)
	}
}
