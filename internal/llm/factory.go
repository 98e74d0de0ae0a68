package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

type ProviderKind string

const (
	ProviderOpenAI     ProviderKind = "openai"
	ProviderCompatible ProviderKind = "openai_compatible"
	ProviderAnthropic  ProviderKind = "anthropic"
	ProviderGoogle     ProviderKind = "google"
	ProviderArk        ProviderKind = "ark"
)

type ProviderConfig struct {
	Kind    ProviderKind
	APIKey  string
	Model   string
	BaseURL string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Create builds the chat model for the configured provider. Exactly
// one provider handles a generation run; callers pick the kind from
// configuration, not from which SDK happens to be imported.
func (f *Factory) Create(ctx context.Context, cfg *ProviderConfig) (model.BaseChatModel, error) {
	if cfg == nil {
		return nil, fmt.Errorf("provider config is nil")
	}
	switch cfg.Kind {
	case ProviderOpenAI, ProviderCompatible:
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
	case ProviderAnthropic:
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: 4096,
		})
	case ProviderGoogle:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  cfg.Model,
		})
	case ProviderArk:
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Kind)
	}
}
