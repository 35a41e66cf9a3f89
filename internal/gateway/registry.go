package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/your-org/chat-gateway/internal/config"
	"github.com/your-org/chat-gateway/pkg/chat"
	"github.com/your-org/chat-gateway/pkg/chat/fallback"
	"github.com/your-org/chat-gateway/pkg/chat/gemini"
	"github.com/your-org/chat-gateway/pkg/chat/ollama"
	"github.com/your-org/chat-gateway/pkg/chat/openai"
	"github.com/your-org/chat-gateway/pkg/chat/openrouter"
	"github.com/your-org/chat-gateway/pkg/chat/perplexity"
	"github.com/your-org/chat-gateway/pkg/chat/xai"
)

var (
	ErrEmptyProviderID     = errors.New("provider id is empty")
	ErrNilConstructor      = errors.New("provider constructor is nil")
	ErrDuplicateProviderID = errors.New("provider id already registered")
)

// Constructor builds one adapter from its resolved settings. The http
// client is nil outside tests; adapters then install their own with the
// right timeout.
type Constructor func(s config.ProviderSettings, httpClient *http.Client, log *zap.Logger) chat.Provider

// Registry stores provider constructors by ID.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

func (r *Registry) Register(id string, fn Constructor) error {
	if id == "" {
		return ErrEmptyProviderID
	}
	if fn == nil {
		return ErrNilConstructor
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProviderID, id)
	}
	r.constructors[id] = fn
	return nil
}

func (r *Registry) Get(id string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.constructors[id]
	return fn, ok
}

// DefaultRegistry returns a registry with every built-in adapter bound.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register("fallback", func(_ config.ProviderSettings, _ *http.Client, _ *zap.Logger) chat.Provider {
		return fallback.New()
	})
	_ = r.Register("gemini", func(s config.ProviderSettings, hc *http.Client, log *zap.Logger) chat.Provider {
		return gemini.NewClient(s.ChatConfig(), hc, log)
	})
	_ = r.Register("xai", func(s config.ProviderSettings, hc *http.Client, log *zap.Logger) chat.Provider {
		return xai.NewClient(s.ChatConfig(), hc, log)
	})
	_ = r.Register("ollama", func(s config.ProviderSettings, hc *http.Client, log *zap.Logger) chat.Provider {
		return ollama.NewClient(s.ChatConfig(), hc, log)
	})
	_ = r.Register("openai", func(s config.ProviderSettings, hc *http.Client, log *zap.Logger) chat.Provider {
		return openai.NewClient(s.ChatConfig(), hc, log)
	})
	_ = r.Register("openrouter", func(s config.ProviderSettings, hc *http.Client, log *zap.Logger) chat.Provider {
		return openrouter.NewClient(s.ChatConfig(), s.Referer, s.Title, hc, log)
	})
	_ = r.Register("perplexity", func(s config.ProviderSettings, hc *http.Client, log *zap.Logger) chat.Provider {
		return perplexity.NewClient(s.ChatConfig(), hc, log)
	})
	return r
}

// BuildProvider resolves the selected provider from settings. An empty,
// unknown, or disabled selection degrades to the fallback provider rather
// than failing: the gateway must always be able to answer.
func BuildProvider(registry *Registry, settings config.Settings, log *zap.Logger) chat.Provider {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if log == nil {
		log = zap.NewNop()
	}

	id := settings.Selected
	if id == "" || id == "fallback" {
		return fallback.New()
	}

	fn, ok := registry.Get(id)
	if !ok {
		log.Warn("unknown provider selected, using fallback", zap.String("provider", id))
		return fallback.New()
	}

	ps := settings.Providers[id]
	if !ps.Enabled {
		log.Warn("selected provider is disabled, using fallback", zap.String("provider", id))
		return fallback.New()
	}

	return fn(ps, nil, log)
}
