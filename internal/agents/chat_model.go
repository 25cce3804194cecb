// Package agents builds the tool-calling chat model that answers stock questions.
package agents

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/dyike/TickerTalk/config"
	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/tools"
)

const maxTokens = 4096

var ErrUnsupportedLLM = errors.New("unsupported llm provider")

// NewChatModel creates the configured chat model and binds the stock tools to it.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	base, err := newBaseModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	infos, err := tools.Infos()
	if err != nil {
		return nil, err
	}
	withTools, err := base.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("bind tools: %w", err)
	}

	if cfg.Debug {
		log.Printf("[ChatModel] %s/%s ready with %d tools", cfg.LLMProvider, cfg.LLMModel, len(infos))
	}
	return withTools, nil
}

func newBaseModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	switch cfg.LLMProvider {
	case consts.ProviderGroq, consts.ProviderOpenAI:
		tokens := maxTokens
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   cfg.Endpoint(),
			APIKey:    cfg.APIKey(),
			Model:     cfg.LLMModel,
			MaxTokens: &tokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s chat model: %w", cfg.LLMProvider, err)
		}
		return cm, nil

	case consts.ProviderDeepSeek:
		// An empty BaseURL keeps the client's own default endpoint.
		cm, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.APIKey(),
			Model:     cfg.LLMModel,
			BaseURL:   cfg.BackendURL,
			MaxTokens: maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create deepseek chat model: %w", err)
		}
		return cm, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLLM, cfg.LLMProvider)
}
