package config

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// NewOpenAIModel builds an eino chat model backed by the OpenAI API.
func (c ProvidersConfig) NewOpenAIModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.OpenAI.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	maxTokens := c.MaxTokens

	cfg := &openai.ChatModelConfig{
		APIKey:      c.OpenAI.APIKey,
		Model:       c.OpenAI.Model,
		MaxTokens:   &maxTokens,
		Temperature: temperature,
	}

	return openai.NewChatModel(ctx, cfg)
}

// NewAnthropicModel builds an eino chat model backed by the Anthropic API.
func (c ProvidersConfig) NewAnthropicModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Anthropic.Enabled() {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &claude.Config{
		APIKey:      c.Anthropic.APIKey,
		Model:       c.Anthropic.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return claude.NewChatModel(ctx, cfg)
}
