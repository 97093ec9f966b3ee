package chat

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/metrics"
	"github.com/gemma3n-site/backend/pkg/circuitbreaker"
	"github.com/gemma3n-site/backend/pkg/config"
	"github.com/gemma3n-site/backend/pkg/logger"
	"github.com/gemma3n-site/backend/pkg/retry"
)

const systemPrompt = "You are Gemma, a helpful open-weights AI assistant running in a demo environment. Keep answers concise."

// Client generates demo completions against an OpenAI-compatible endpoint
// and falls back to the local simulator after the first hard failure, so an
// unconfigured or unreachable backend never breaks the demo.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
	retryConfig retry.Config
	simulator   *Simulator
	fallback    atomic.Bool
}

func NewClient(cfg config.ChatConfig, simulator *Simulator) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		apiConfig.BaseURL = cfg.Endpoint
	}

	cb := circuitbreaker.New("chat", circuitbreaker.Config{
		MaxRequests:      5,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	retryConfig := retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
		Logger:         logger.GetLogger(),
	}

	client := &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     time.Duration(cfg.TimeoutSec) * time.Second,
		cb:          cb,
		retryConfig: retryConfig,
		simulator:   simulator,
	}

	if cfg.APIKey == "" {
		client.fallback.Store(true)
		logger.Info("Chat client starting in simulation mode (no API key)")
	} else {
		logger.Info("Chat client initialized", zap.String("model", cfg.Model))
	}

	return client
}

func (c *Client) Generate(ctx context.Context, params Params) (*Result, error) {
	if c.fallback.Load() {
		return c.simulator.Generate(ctx, params)
	}

	result, err := c.generateAPI(ctx, params)
	if err != nil {
		logger.Warn("Chat API failed, falling back to simulation", zap.Error(err))
		c.fallback.Store(true)
		return c.simulator.Generate(ctx, params)
	}
	return result, nil
}

func (c *Client) generateAPI(ctx context.Context, params Params) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temperature := params.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	maxTokens := params.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: params.Prompt},
	}

	var result *Result

	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryConfig, func() error {
			resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model:       c.model,
				Messages:    messages,
				Temperature: temperature,
				MaxTokens:   maxTokens,
				TopP:        params.TopP,
			})
			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("completion returned no choices")
			}

			result = &Result{
				Content: resp.Choices[0].Message.Content,
				Usage: Usage{
					PromptTokens:     resp.Usage.PromptTokens,
					CompletionTokens: resp.Usage.CompletionTokens,
					TotalTokens:      resp.Usage.TotalTokens,
				},
				FinishReason: string(resp.Choices[0].FinishReason),
			}
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	metrics.ChatRequests.WithLabelValues("api").Inc()
	metrics.ChatTokens.WithLabelValues("prompt").Add(float64(result.Usage.PromptTokens))
	metrics.ChatTokens.WithLabelValues("completion").Add(float64(result.Usage.CompletionTokens))

	return result, nil
}
