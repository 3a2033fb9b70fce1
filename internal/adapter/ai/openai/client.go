// Package openai implements the generative-text port against any
// OpenAI-compatible chat completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/pkoukk/tiktoken-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hirecraft/hirecraft-backend/internal/adapter/observability"
	"github.com/hirecraft/hirecraft-backend/internal/config"
	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// Client implements domain.AIClient over an OpenAI-compatible endpoint.
type Client struct {
	cfg config.Config
	hc  *http.Client
	enc *tiktoken.Tiktoken
}

// New constructs a Client. The HTTP timeout bounds every generative call so
// a stalled upstream cannot block a session turn indefinitely.
func New(cfg config.Config) *Client {
	timeout := cfg.ChatTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	// Encoding load failures leave enc nil; prompts are then passed through
	// without token budgeting.
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		slog.Warn("tiktoken encoding unavailable; prompt budgeting disabled", slog.Any("error", err))
	}
	transport := otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "ai.chat " + r.URL.Host
		}),
	)
	return &Client{cfg: cfg, hc: &http.Client{Timeout: timeout, Transport: transport}, enc: enc}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ChatText calls the chat completions endpoint and returns the raw message
// content.
func (c *Client) ChatText(ctx domain.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	return c.chat(ctx, "text", systemPrompt, userPrompt, temperature, maxTokens)
}

// ChatJSON is ChatText at a low temperature; callers parse the result with
// the strict parse-then-fallback contract.
func (c *Client) ChatJSON(ctx domain.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	return c.chat(ctx, "json", systemPrompt, userPrompt, 0.3, maxTokens)
}

func (c *Client) chat(ctx context.Context, kind, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	if c.cfg.OpenAIAPIKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY missing", domain.ErrInvalidArgument)
	}
	start := time.Now()
	userPrompt = c.truncateToBudget(userPrompt)

	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime, expo.InitialInterval, expo.MaxInterval, expo.Multiplier = c.cfg.GetAIBackoffConfig()

	var content string
	op := func() error {
		var err error
		content, err = c.doRequest(ctx, systemPrompt, userPrompt, temperature, maxTokens)
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	err := backoff.Retry(op, backoff.WithContext(expo, ctx))
	observability.ObserveAICall(kind, start, err)
	if err != nil {
		return "", err
	}
	return content, nil
}

func (c *Client) doRequest(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("op=ai.marshal: %w", err)
	}
	url := strings.TrimSuffix(c.cfg.OpenAIBaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("op=ai.request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAIAPIKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("%w: chat call: %v", domain.ErrUpstreamTimeout, err)
		}
		return "", fmt.Errorf("%w: chat call: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrUpstreamUnavailable, err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrSchemaInvalid, resp.StatusCode, snippet(b))
	}

	var cr chatResponse
	if err := json.Unmarshal(b, &cr); err != nil {
		return "", fmt.Errorf("%w: decode: %v", domain.ErrSchemaInvalid, err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrSchemaInvalid)
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// truncateToBudget drops the head of an over-budget prompt, keeping the most
// recent conversation context.
func (c *Client) truncateToBudget(prompt string) string {
	budget := c.cfg.PromptTokenBudget
	if budget <= 0 || c.enc == nil {
		return prompt
	}
	toks := c.enc.Encode(prompt, nil, nil)
	if len(toks) <= budget {
		return prompt
	}
	slog.Debug("truncating prompt to token budget",
		slog.Int("tokens", len(toks)), slog.Int("budget", budget))
	return c.enc.Decode(toks[len(toks)-budget:])
}

func retryable(err error) bool {
	return errors.Is(err, domain.ErrUpstreamUnavailable) || errors.Is(err, domain.ErrUpstreamTimeout)
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func snippet(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
