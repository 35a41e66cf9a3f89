// Package fallback provides the zero-dependency provider used when no
// upstream is configured. It never fails and performs no network I/O.
package fallback

import (
	"context"
	"strings"

	"github.com/your-org/chat-gateway/pkg/chat"
)

const displayName = "Basic Assistant"

// canned pairs an ordered keyword trigger with its response. Order matters:
// the first matching trigger wins.
var canned = []struct {
	triggers []string
	response string
}{
	{
		triggers: []string{"hello", "hi"},
		response: "Hello! How can I help you today?",
	},
	{
		triggers: []string{"help"},
		response: "I can answer questions about your servers, users, and settings. Ask me anything, or configure an AI provider in settings for richer answers.",
	},
	{
		triggers: []string{"server"},
		response: "You can manage servers from the server dashboard. Check the node list for status and resource usage.",
	},
	{
		triggers: []string{"thank"},
		response: "You're welcome! Let me know if there's anything else.",
	},
}

// Provider answers from a fixed keyword table. Deterministic and total:
// every input maps to exactly one response.
type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "fallback" }

func (p *Provider) Chat(_ context.Context, req chat.Request) (chat.Reply, error) {
	lower := strings.ToLower(req.Message)
	for _, c := range canned {
		for _, trigger := range c.triggers {
			if strings.Contains(lower, trigger) {
				return chat.Reply{Text: c.response, Model: displayName}, nil
			}
		}
	}
	return chat.Reply{
		Text:  "I'm a basic assistant. You asked: \"" + req.Message + "\". Configure an AI provider in settings for a smarter answer.",
		Model: displayName,
	}, nil
}
