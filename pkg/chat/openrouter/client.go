package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/your-org/chat-gateway/pkg/chat"
)

const (
	displayName    = "OpenRouter"
	defaultBaseURL = "https://openrouter.ai/api"
	defaultModel   = "openrouter/auto"

	notFoundHint = "Check the model identifier on openrouter.ai/models."
)

// Client implements chat.Provider for the OpenRouter aggregator. OpenRouter
// routes to many underlying models, so the model label reports the model it
// actually used rather than the configured one.
type Client struct {
	cfg        chat.Config
	baseURL    string
	referer    string
	title      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg chat.Config, referer string, title string, httpClient *http.Client, log *zap.Logger) *Client {
	cfg = cfg.Normalize()
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if referer == "" {
		referer = "https://localhost"
	}
	if title == "" {
		title = "Chat Gateway"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: chat.CloudTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		baseURL:    strings.TrimRight(baseURL, "/"),
		referer:    referer,
		title:      title,
		httpClient: httpClient,
		log:        log,
	}
}

func (c *Client) Name() string { return "openrouter" }

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
	}

	urlStr := c.baseURL + "/v1/chat/completions"
	hReq, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, nil)
	if err != nil {
		return chat.Reply{}, chat.TransportToError(displayName, err, "", notFoundHint)
	}
	hReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	hReq.Header.Set("HTTP-Referer", c.referer)
	hReq.Header.Set("X-Title", c.title)

	body, err := chat.DoJSON(ctx, c.httpClient, hReq, payload)
	if err != nil {
		cerr := chat.TransportToError(displayName, err, "", notFoundHint)
		c.log.Error("openrouter request failed",
			zap.Int("status", cerr.Status),
			zap.String("url", chat.RedactURL(urlStr)),
			zap.Error(err),
		)
		return chat.Reply{}, cerr
	}

	var parsed struct {
		Model   json.RawMessage `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		c.log.Error("unexpected openrouter response",
			zap.String("url", chat.RedactURL(urlStr)),
			zap.String("body", chat.Truncate(string(body), 500)),
		)
		return chat.Reply{}, chat.BadResponseError(displayName)
	}

	model := echoedModel(parsed.Model)
	if model == "" {
		model = c.cfg.Model
	}
	return chat.Reply{
		Text:  parsed.Choices[0].Message.Content,
		Model: displayName + " " + model,
	}, nil
}

// echoedModel unpacks the model field from a response. OpenRouter has
// returned both a bare string and an {id: "..."} object here, so both
// shapes are accepted.
func echoedModel(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.ID
	}
	return ""
}
