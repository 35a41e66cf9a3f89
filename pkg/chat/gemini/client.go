package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/your-org/chat-gateway/pkg/chat"
)

const (
	displayName    = "Gemini"
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"

	notFoundHint = "Check the model name and make sure the Generative Language API is enabled for your key."
)

// Client implements chat.Provider for the Gemini generateContent API.
type Client struct {
	cfg        chat.Config
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg chat.Config, httpClient *http.Client, log *zap.Logger) *Client {
	cfg = cfg.Normalize()
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: chat.CloudTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient, log: log}
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Chat(ctx context.Context, req chat.Request) (chat.Reply, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return chat.Reply{}, chat.MissingKeyError(displayName)
	}

	// Gemini nests text under parts and has no assistant role; prior
	// assistant turns become "model".
	history := chat.Window(req.History, chat.HistoryWindow)
	contents := make([]map[string]any, 0, len(history)+1)
	for _, t := range history {
		role := "user"
		if t.Role != chat.RoleUser {
			role = "model"
		}
		contents = append(contents, map[string]any{
			"role":  role,
			"parts": []map[string]any{{"text": t.Content}},
		})
	}
	contents = append(contents, map[string]any{
		"role":  "user",
		"parts": []map[string]any{{"text": req.Message}},
	})

	payload := map[string]any{
		"contents": contents,
		"generationConfig": map[string]any{
			"temperature":     c.cfg.Temperature,
			"topK":            40,
			"topP":            0.95,
			"maxOutputTokens": c.cfg.MaxTokens,
		},
	}
	// The system prompt rides in a dedicated top-level field, and only
	// when non-empty: the API rejects empty systemInstruction parts.
	if strings.TrimSpace(req.System) != "" {
		payload["systemInstruction"] = map[string]any{
			"parts": []map[string]any{{"text": req.System}},
		}
	}

	urlStr := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.cfg.Model))
	hReq, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, nil)
	if err != nil {
		return chat.Reply{}, chat.TransportToError(displayName, err, "", notFoundHint)
	}
	hReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	body, err := chat.DoJSON(ctx, c.httpClient, hReq, payload)
	if err != nil {
		cerr := chat.TransportToError(displayName, err, "", notFoundHint)
		c.log.Error("gemini request failed",
			zap.Int("status", cerr.Status),
			zap.String("url", chat.RedactURL(urlStr)),
			zap.Error(err),
		)
		return chat.Reply{}, cerr
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil ||
		len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		c.log.Error("unexpected gemini response",
			zap.String("url", chat.RedactURL(urlStr)),
			zap.String("body", chat.Truncate(string(body), 500)),
		)
		return chat.Reply{}, chat.BadResponseError(displayName)
	}

	return chat.Reply{
		Text:  parsed.Candidates[0].Content.Parts[0].Text,
		Model: displayName + " " + c.cfg.Model,
	}, nil
}
