package chat

import (
	"strings"
	"testing"
)

func TestRedactURLMasksSecrets(t *testing.T) {
	got := RedactURL("https://example.com/v1beta/models/m:generateContent?key=sk-secret&alt=json")
	if strings.Contains(got, "sk-secret") {
		t.Fatalf("credential leaked: %s", got)
	}
	if !strings.Contains(got, "key=%2A%2A%2A") && !strings.Contains(got, "key=***") {
		t.Fatalf("key param not masked: %s", got)
	}
	if !strings.Contains(got, "alt=json") {
		t.Fatalf("non-secret param dropped: %s", got)
	}
}

func TestRedactURLPlain(t *testing.T) {
	raw := "https://api.x.ai/v1/chat/completions"
	if got := RedactURL(raw); got != raw {
		t.Fatalf("url without secrets changed: %s", got)
	}
}
