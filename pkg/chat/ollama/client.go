package ollama

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/your-org/chat-gateway/pkg/chat"
)

const (
	displayName    = "Ollama"
	defaultBaseURL = "http://localhost:11434"
)

// Client implements chat.Provider for a self-hosted Ollama instance.
// Ollama is typically reachable only on a trusted network, so certificate
// verification is disabled and the timeout is the longer local one.
type Client struct {
	cfg        chat.Config
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg chat.Config, httpClient *http.Client, log *zap.Logger) *Client {
	cfg = cfg.Normalize()
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: chat.LocalTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient, log: log}
}

func (c *Client) Name() string { return "ollama" }

func (c *Client) Chat(ctx context.Context, req chat.Request) (chat.Reply, error) {
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
		"model":    c.cfg.Model,
		"messages": messages,
		"stream":   false,
		"options": map[string]any{
			"temperature": c.cfg.Temperature,
			"num_predict": c.cfg.MaxTokens,
		},
	}

	urlStr := c.baseURL + "/api/chat"
	connectHint := fmt.Sprintf("Could not connect to Ollama at %s. Make sure the Ollama service is running.", c.baseURL)
	notFoundHint := fmt.Sprintf("Pull it first with: ollama pull %s", c.cfg.Model)

	hReq, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, nil)
	if err != nil {
		return chat.Reply{}, chat.TransportToError(displayName, err, connectHint, notFoundHint)
	}

	body, err := chat.DoJSON(ctx, c.httpClient, hReq, payload)
	if err != nil {
		cerr := chat.TransportToError(displayName, err, connectHint, notFoundHint)
		c.log.Error("ollama request failed",
			zap.Int("status", cerr.Status),
			zap.String("url", urlStr),
			zap.Error(err),
		)
		return chat.Reply{}, cerr
	}

	var parsed struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Message.Content == "" {
		c.log.Error("unexpected ollama response",
			zap.String("url", urlStr),
			zap.String("body", chat.Truncate(string(body), 500)),
		)
		return chat.Reply{}, chat.BadResponseError(displayName)
	}

	return chat.Reply{
		Text:  parsed.Message.Content,
		Model: displayName + " " + c.cfg.Model,
	}, nil
}
