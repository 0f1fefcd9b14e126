package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/creatorlens/creatorlens/internal/domain"
	"github.com/creatorlens/creatorlens/internal/metrics"
)

// ChatClient calls an OpenAI-compatible chat-completion API with a JSON
// object response format. The query analyzer relies on the JSON constraint;
// the model is never asked for free-form prose.
type ChatClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *zap.Logger
}

// ChatConfig holds the chat-completion client settings. A zero Timeout
// leaves the caller's context deadline in charge.
type ChatConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	Logger      *zap.Logger
}

// NewChatClient creates an OpenAI-compatible chat-completion client.
func NewChatClient(cfg *ChatConfig) *ChatClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &ChatClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger,
	}
}

// Complete sends one system+user exchange and returns the raw JSON content
// of the first choice. Errors are wrapped with domain.ErrAnalyzerUnavailable.
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.AnalyzerRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("chat completion: %w: %w", domain.ErrAnalyzerUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		metrics.AnalyzerRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrAnalyzerUnavailable)
	}

	metrics.AnalyzerRequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.AnalyzerRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies the provider is reachable with the configured key.
func (c *ChatClient) HealthCheck(ctx context.Context) error {
	_, err := c.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("chat provider health check: %w", err)
	}
	return nil
}
