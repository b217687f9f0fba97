// Package llm sends prompts to the hosted generative model.
//
// The model is reached through an OpenAI-compatible chat completions
// endpoint (Gemini's by default), so the go-openai client is used as is with
// a different base URL. Calls are made once; there are no retries.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"doclens/internal/config"
	"doclens/internal/logger"
)

// Request is one generation call.
type Request struct {
	// System is an optional system instruction.
	System string

	// Prompt is the full user turn.
	Prompt string

	Temperature float32
	MaxTokens   int
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client implements Generator with go-openai.
type Client struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewClient creates a client for cfg.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &Error{Op: "NewClient", Model: cfg.Model, Err: ErrMissingAPIKey}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		log:    logger.WithComponent("llm"),
	}, nil
}

// NewClientFromConfig creates a client from the application configuration.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	return NewClient(ClientConfig{
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
	})
}

// Model returns the model id requests are sent to.
func (c *Client) Model() string { return c.model }

// Generate implements Generator. The reply text is returned verbatim.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	const op = "Generate"

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		c.log.Warn().
			Err(err).
			Str("model", c.model).
			Dur("took", time.Since(start)).
			Msg("Model request failed")
		return "", WrapError(op, c.model, err, "")
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", WrapError(op, c.model, ErrEmptyResponse, "")
	}

	c.log.Debug().
		Str("model", c.model).
		Float32("temperature", req.Temperature).
		Int("max_tokens", req.MaxTokens).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("took", time.Since(start)).
		Msg("Model response received")

	return resp.Choices[0].Message.Content, nil
}
