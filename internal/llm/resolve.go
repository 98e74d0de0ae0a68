package llm

import (
	"fmt"
	"sync"

	"github.com/narteyr/flashcards/internal/config"
)

var (
	cacheMu sync.Mutex
	cached  *ProviderConfig
)

// ResolveProviderConfig maps service configuration to the single
// provider used for this process. The result is memoized; resolution
// happens once at startup and the value is passed by injection from
// there on.
func ResolveProviderConfig(cfg *config.Config) (*ProviderConfig, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached != nil {
		return cached, nil
	}

	pc := &ProviderConfig{Kind: ProviderKind(cfg.LLMProvider)}
	switch pc.Kind {
	case ProviderOpenAI, ProviderCompatible:
		pc.APIKey = cfg.OpenAIAPIKey
		pc.Model = cfg.OpenAIModel
		pc.BaseURL = cfg.OpenAIBaseURL
	case ProviderAnthropic:
		pc.APIKey = cfg.AnthropicAPIKey
		pc.Model = cfg.AnthropicModel
	case ProviderGoogle:
		pc.APIKey = cfg.GeminiAPIKey
		pc.Model = cfg.GeminiModel
	case ProviderArk:
		pc.APIKey = cfg.ArkAPIKey
		pc.Model = cfg.ArkModel
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.LLMProvider)
	}

	if pc.APIKey == "" {
		return nil, fmt.Errorf("provider %s: missing API key", pc.Kind)
	}

	cached = pc
	return pc, nil
}

// ResetCache clears the memoized provider config for test isolation.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cached = nil
}
