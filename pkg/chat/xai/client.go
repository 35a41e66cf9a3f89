package xai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/your-org/chat-gateway/pkg/chat"
)

const (
	displayName    = "Grok"
	defaultBaseURL = "https://api.x.ai"
	defaultModel   = "grok-2-latest"

	notFoundHint = "Check the model name against the xAI model list."
)

// Client implements chat.Provider for the xAI chat completions API.
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

func (c *Client) Name() string { return "xai" }

func (c *Client) Chat(ctx context.Context, req chat.Request) (chat.Reply, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return chat.Reply{}, chat.MissingKeyError(displayName)
	}

	history := chat.Window(req.History, chat.HistoryWindow)
	messages := make([]chat.Turn, 0, len(history)+2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chat.Turn{Role: chat.RoleSystem, Content: req.System})
	}
	for _, t := range history {
		role := t.Role
		if role != chat.RoleUser {
			role = chat.RoleAssistant
		}
		messages = append(messages, chat.Turn{Role: role, Content: t.Content})
	}
	messages = append(messages, chat.Turn{Role: chat.RoleUser, Content: req.Message})

	payload := map[string]any{
		"model":       c.cfg.Model,
		"messages":    messages,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"stream":      false,
	}

	urlStr := c.baseURL + "/v1/chat/completions"
	hReq, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, nil)
	if err != nil {
		return chat.Reply{}, chat.TransportToError(displayName, err, "", notFoundHint)
	}
	hReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	body, err := chat.DoJSON(ctx, c.httpClient, hReq, payload)
	if err != nil {
		cerr := chat.TransportToError(displayName, err, "", notFoundHint)
		c.log.Error("xai request failed",
			zap.Int("status", cerr.Status),
			zap.String("url", chat.RedactURL(urlStr)),
			zap.Error(err),
		)
		return chat.Reply{}, cerr
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		c.log.Error("unexpected xai response",
			zap.String("url", chat.RedactURL(urlStr)),
			zap.String("body", chat.Truncate(string(body), 500)),
		)
		return chat.Reply{}, chat.BadResponseError(displayName)
	}

	return chat.Reply{
		Text:  parsed.Choices[0].Message.Content,
		Model: displayName + " " + c.cfg.Model,
	}, nil
}
