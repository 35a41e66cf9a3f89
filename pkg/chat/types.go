package chat

import (
	"context"
	"time"
)

// Roles used in conversation turns. Adapters remap these into each
// upstream's own vocabulary before sending.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one role-tagged message in a conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries the inputs for one generation call. It is built per call
// and never persisted.
type Request struct {
	Message string
	History []Turn
	System  string
}

// Reply is a normalized generation result: the reply text verbatim and a
// human-readable model label such as "Gemini gemini-2.0-flash".
type Reply struct {
	Text  string
	Model string
}

// Provider is the common interface all chat adapters must satisfy.
// Implementations are immutable after construction and safe for concurrent
// use. Failures are reported as *Error; implementations never panic.
type Provider interface {
	Name() string
	Chat(ctx context.Context, req Request) (Reply, error)
}

// Sampling and transport defaults shared by every adapter.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048

	// HistoryWindow is the hard cap on turns forwarded upstream,
	// applied identically by every adapter.
	HistoryWindow = 10

	// CloudTimeout bounds one call to a hosted provider. LocalTimeout is
	// longer because self-hosted runtimes are slower under load.
	CloudTimeout = 30 * time.Second
	LocalTimeout = 60 * time.Second
)

// Config holds per-adapter construction parameters. Ownership passes to the
// adapter; it is never mutated after construction.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Normalize fills unset sampling fields with the shared defaults.
func (c Config) Normalize() Config {
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return c
}

// Window returns the most recent n turns of history. The returned slice
// aliases the input; callers must not mutate it.
func Window(history []Turn, n int) []Turn {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
