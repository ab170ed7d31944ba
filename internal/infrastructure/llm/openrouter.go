package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"SentimentAgent/internal/config"
	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/ports"
)

// OpenRouterClient implements ports.CompletionClient backed by OpenAI-compatible APIs.
type OpenRouterClient struct {
	client openai.Client
	model  string
}

var _ ports.CompletionClient = (*OpenRouterClient)(nil)

// NewOpenRouterClient builds a client from configuration. Extra options are
// appended after the configured ones.
func NewOpenRouterClient(cfg config.OpenRouterConfig, extra ...option.RequestOption) (*OpenRouterClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.NewConfigurationError("openrouter", "apiKey")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, domain.NewConfigurationError("openrouter", "baseUrl")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.Title))
	}
	opts = append(opts, extra...)

	return &OpenRouterClient{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Complete sends the system and user prompts as one chat completion.
func (c *OpenRouterClient) Complete(ctx context.Context, spec domain.PromptSpec) (domain.SentimentResult, error) {
	if c == nil {
		return "", fmt.Errorf("openrouter client is nil")
	}

	model := spec.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return "", domain.NewConfigurationError("openrouter", "model")
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(safePrompt(spec.SystemPrompt)),
			openai.UserMessage(spec.UserPrompt),
		},
		Temperature: openai.Float(spec.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter completion: no choices returned")
	}

	return domain.SentimentResult(resp.Choices[0].Message.Content), nil
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You are a financial sentiment analyst."
	}
	return prompt
}
