package chat

import (
	"fmt"
	"testing"
)

func TestWindowCapsHistory(t *testing.T) {
	history := make([]Turn, 0, 14)
	for i := 0; i < 14; i++ {
		history = append(history, Turn{Role: RoleUser, Content: fmt.Sprintf("turn-%d", i)})
	}

	got := Window(history, HistoryWindow)
	if len(got) != HistoryWindow {
		t.Fatalf("expected %d turns, got %d", HistoryWindow, len(got))
	}
	if got[0].Content != "turn-4" || got[len(got)-1].Content != "turn-13" {
		t.Fatalf("window kept wrong turns: first=%q last=%q", got[0].Content, got[len(got)-1].Content)
	}
}

func TestWindowShortHistoryUnchanged(t *testing.T) {
	history := []Turn{{Role: RoleUser, Content: "only"}}
	got := Window(history, HistoryWindow)
	if len(got) != 1 || got[0].Content != "only" {
		t.Fatalf("short history should pass through, got %+v", got)
	}
	if got := Window(nil, HistoryWindow); len(got) != 0 {
		t.Fatalf("nil history should stay empty, got %+v", got)
	}
}

func TestConfigNormalizeDefaults(t *testing.T) {
	cfg := Config{APIKey: "k"}.Normalize()
	if cfg.Temperature != DefaultTemperature {
		t.Fatalf("expected default temperature %v, got %v", DefaultTemperature, cfg.Temperature)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Fatalf("expected default max tokens %d, got %d", DefaultMaxTokens, cfg.MaxTokens)
	}

	cfg = Config{Temperature: 0.2, MaxTokens: 64}.Normalize()
	if cfg.Temperature != 0.2 || cfg.MaxTokens != 64 {
		t.Fatalf("explicit sampling values must be kept: %+v", cfg)
	}
}
