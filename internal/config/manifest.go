package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoProviders     = errors.New("settings: providers map is empty")
	ErrUnknownSelected = errors.New("settings: selected provider is unknown")
)

// LoadSettings parses and validates a YAML settings file.
func LoadSettings(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: read %q: %w", path, err)
	}

	s := FromEnv()
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal %q: %w", path, err)
	}

	if err := ValidateSettings(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ValidateSettings enforces structural correctness before runtime.
func ValidateSettings(s Settings) error {
	if len(s.Providers) == 0 {
		return ErrNoProviders
	}

	known := make(map[string]struct{}, len(ProviderIDs))
	for _, id := range ProviderIDs {
		known[id] = struct{}{}
	}

	for id, p := range s.Providers {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("settings: unknown provider id %q", id)
		}
		if p.Temperature < 0 || p.Temperature > 1 {
			return fmt.Errorf("settings: provider %q temperature %v out of range [0,1]", id, p.Temperature)
		}
		if p.MaxTokens < 0 || p.MaxTokens > 8192 {
			return fmt.Errorf("settings: provider %q max_tokens %d out of range [0,8192]", id, p.MaxTokens)
		}
	}

	if s.Selected != "" {
		if _, ok := known[s.Selected]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSelected, s.Selected)
		}
	}

	if s.Gateway.HistoryWindow < 0 {
		return fmt.Errorf("settings: history_window %d is negative", s.Gateway.HistoryWindow)
	}
	return nil
}
