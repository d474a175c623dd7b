package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/opencontratos/contratista/internal/model"
)

// Near-deterministic decoding: the task is extraction, not generation, and
// chunk merging assumes stable answers for identical input.
const extractionTemperature = 0.1

// OpenAIProvider implements Provider against any OpenAI-compatible endpoint.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIProvider creates a provider from the LLM configuration.
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete issues one chat completion and maps the finish reason onto the
// content-level failure classification.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (Completion, error) {
	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   p.maxTokens,
		Temperature: extractionTemperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Completion{Reason: FailEmpty}, nil
	}

	choice := resp.Choices[0]
	text := strings.TrimSpace(choice.Message.Content)

	switch choice.FinishReason {
	case openai.FinishReasonContentFilter:
		return Completion{Reason: FailContentFiltered}, nil
	case openai.FinishReasonLength:
		// Truncated output may still hold a complete JSON object.
		return Completion{Text: text, Reason: FailTruncated}, nil
	}
	if text == "" {
		return Completion{Reason: FailEmpty}, nil
	}
	return Completion{Text: text}, nil
}
