package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/your-org/chat-gateway/pkg/chat"
)

// ProviderIDs lists every provider the gateway can dispatch to.
var ProviderIDs = []string{
	"fallback",
	"gemini",
	"xai",
	"ollama",
	"openai",
	"openrouter",
	"perplexity",
}

// ProviderSettings is the per-provider block from the settings store.
type ProviderSettings struct {
	Enabled     bool    `yaml:"enabled"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`

	// OpenRouter attribution headers; ignored by other providers.
	Referer string `yaml:"referer"`
	Title   string `yaml:"title"`
}

// ChatConfig converts a settings block to adapter construction parameters.
func (p ProviderSettings) ChatConfig() chat.Config {
	return chat.Config{
		APIKey:      p.APIKey,
		BaseURL:     p.BaseURL,
		Model:       p.Model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
}

// Settings is the gateway's full runtime configuration.
type Settings struct {
	Gateway   GatewaySettings             `yaml:"gateway"`
	Selected  string                      `yaml:"selected"`
	Providers map[string]ProviderSettings `yaml:"providers"`
}

// GatewaySettings configures the serving surface.
type GatewaySettings struct {
	Addr          string `yaml:"addr"`
	MetricsAddr   string `yaml:"metrics_addr"`
	HistoryWindow int    `yaml:"history_window"`
	AuditLogPath  string `yaml:"audit_log_path"`
}

// FromEnv loads baseline settings from environment with safe defaults.
// A YAML settings file, when configured, takes precedence (see LoadSettings).
func FromEnv() Settings {
	s := Settings{
		Gateway: GatewaySettings{
			Addr:          ":8080",
			MetricsAddr:   ":2112",
			HistoryWindow: chat.HistoryWindow,
			AuditLogPath:  strings.TrimSpace(os.Getenv("AUDIT_LOG_PATH")),
		},
		Selected:  strings.ToLower(strings.TrimSpace(os.Getenv("SELECTED_PROVIDER"))),
		Providers: make(map[string]ProviderSettings, len(ProviderIDs)),
	}

	if v := strings.TrimSpace(os.Getenv("GATEWAY_ADDR")); v != "" {
		s.Gateway.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("METRICS_ADDR")); v != "" {
		s.Gateway.MetricsAddr = v
	}
	if v := os.Getenv("HISTORY_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Gateway.HistoryWindow = n
		}
	}

	for _, id := range ProviderIDs {
		if id == "fallback" {
			s.Providers[id] = ProviderSettings{Enabled: true}
			continue
		}
		prefix := strings.ToUpper(id) + "_"
		p := ProviderSettings{
			APIKey:  os.Getenv(prefix + "API_KEY"),
			BaseURL: os.Getenv(prefix + "BASE_URL"),
			Model:   os.Getenv(prefix + "MODEL"),
		}
		p.Enabled = p.APIKey != "" || p.BaseURL != ""
		if id == "openrouter" {
			p.Referer = os.Getenv("OPENROUTER_REFERER")
			p.Title = os.Getenv("OPENROUTER_TITLE")
		}
		s.Providers[id] = p
	}

	return s
}
