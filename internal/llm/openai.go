package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/adnanqk/newsanchor/internal/logger"
)

const (
	// Editorial work wants consistency over creativity.
	completionTemperature = 0.3
	completionMaxTokens   = 1000
)

// OpenAIProvider talks to one OpenAI-compatible endpoint (Groq,
// Together, Cerebras and similar all speak this protocol). A circuit
// breaker stops hammering an endpoint that keeps failing.
type OpenAIProvider struct {
	name    string
	model   string
	client  *openai.Client
	breaker *gobreaker.CircuitBreaker
}

// NewOpenAIProvider creates a provider for one endpoint. baseURL should
// include the /v1 suffix, e.g. https://api.groq.com/openai/v1.
func NewOpenAIProvider(name, baseURL, apiKey, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("[llm] breaker %s: %s -> %s", name, from, to)
		},
	})

	return &OpenAIProvider{
		name:    name,
		model:   model,
		client:  openai.NewClientWithConfig(cfg),
		breaker: breaker,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return p.name }

// Complete implements Provider. The response format is pinned to JSON
// so the editorial parser never sees prose preambles.
func (p *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	out, err := p.breaker.Execute(func() (interface{}, error) {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: completionTemperature,
			MaxTokens:   completionMaxTokens,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("empty response from %s", p.name)
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	return out.(string), nil
}
