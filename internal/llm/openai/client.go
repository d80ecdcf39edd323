package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pantrypilot/receipt-scanner/internal/llm"
)

// Client calls the OpenAI chat-completions API and implements
// llm.ItemExtractor.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient builds a chat-completions client. Config defaults are applied
// here so callers only have to supply the API key.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ExtractItems sends the receipt text to the model and decodes the JSON
// array reply into item candidates. Transport failures, non-2xx statuses and
// replies with no array all come back as errors; the caller decides whether
// to fall back.
func (c *Client) ExtractItems(ctx context.Context, req llm.ExtractRequest) ([]llm.ItemCandidate, error) {
	reqID := uuid.NewString()
	start := time.Now()

	c.logger.Info("llm.extract.request",
		"req_id", reqID,
		"model", c.cfg.Model,
		"store", string(req.Store),
		"text_len", len(req.ReceiptText),
	)

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: llm.SystemPrompt},
			{Role: "user", Content: llm.BuildUserPrompt(req)},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("llm.extract.error", "req_id", reqID, "error", err.Error())
		return nil, fmt.Errorf("chat completion call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		c.logger.Error("llm.extract.error", "req_id", reqID, "status", resp.StatusCode, "error", msg)
		return nil, fmt.Errorf("chat completion status %d: %s", resp.StatusCode, msg)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	candidates, ok := llm.DecodeCandidates(parsed.Choices[0].Message.Content)
	if !ok {
		c.logger.Warn("llm.extract.no_array", "req_id", reqID, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("no JSON array in model reply")
	}

	c.logger.Info("llm.extract.ok",
		"req_id", reqID,
		"items", len(candidates),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return candidates, nil
}
