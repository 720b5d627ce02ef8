// Package llm wraps the external generation provider behind a small client.
// Calls go through the provider's OpenAI-compatible endpoint so the standard
// chat-completion SDK can be used for Gemini models.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/YoungkyuAlexKim/UniverseBuilder/pkg/retry"
)

// Generator is the interface the rest of the system calls. Implemented by
// Client and by test mocks.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request describes one generation call.
type Request struct {
	Prompt string
	Model  string
	// ExpectJSON asks the provider for a JSON response and validates that the
	// returned text contains one before it is handed back.
	ExpectJSON bool
	// APIKey overrides the server-level credential for this call only
	// (X-User-API-Key). The resolved credential is carried per call rather
	// than held in shared state so concurrent requests with different keys
	// cannot race.
	APIKey string
	// Temperature of 0 uses the provider default.
	Temperature float32
}

// Config holds configuration for creating an LLM client.
type Config struct {
	BaseURL string // OpenAI-compatible endpoint
	APIKey  string // Server-level credential; may be empty
	Timeout time.Duration
}

// Client provides access to the generation provider.
type Client struct {
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a new provider client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Client{
		cfg:    cfg,
		logger: logger.Named("llm"),
	}, nil
}

// HasKey reports whether a server-level credential is configured.
func (c *Client) HasKey() bool {
	return c.cfg.APIKey != ""
}

// Generate runs one generation call with bounded retries on transient
// provider errors and a hard per-call timeout. The caller supplies any
// per-request credential override in req.APIKey.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = c.cfg.APIKey
	}
	if apiKey == "" {
		return "", NewError(ErrorTypeAuth, "no API key configured", false, nil)
	}
	if req.Model == "" {
		return "", fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = strings.TrimSuffix(c.cfg.BaseURL, "/")
	sdk := openai.NewClientWithConfig(clientConfig)

	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
	}
	if req.ExpectJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	c.logger.Debug("provider request",
		zap.String("model", req.Model),
		zap.Int("prompt_len", len(req.Prompt)),
		zap.Bool("expect_json", req.ExpectJSON))

	start := time.Now()

	var content string
	err := retry.DoIfRetryable(ctx, nil, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		resp, err := sdk.CreateChatCompletion(callCtx, chatReq)
		if err != nil {
			return ClassifyError(err)
		}
		if len(resp.Choices) == 0 {
			return NewError(ErrorTypeUnavailable, "no choices in response", true, nil)
		}

		choice := resp.Choices[0]
		if choice.FinishReason == openai.FinishReasonContentFilter {
			return NewError(ErrorTypeBlocked, "response blocked by safety filter", false, nil)
		}

		content = choice.Message.Content
		return nil
	})
	if err != nil {
		c.logger.Error("provider request failed",
			zap.String("model", req.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	c.logger.Info("provider request completed",
		zap.String("model", req.Model),
		zap.Duration("elapsed", time.Since(start)))

	if req.ExpectJSON {
		jsonStr, err := ExtractJSON(content)
		if err != nil {
			return "", NewError(ErrorTypeMalformed, "expected JSON response", false, err)
		}
		return jsonStr, nil
	}

	return strings.TrimSpace(strings.ReplaceAll(content, "```", "")), nil
}

// Ensure Client implements Generator at compile time.
var _ Generator = (*Client)(nil)
