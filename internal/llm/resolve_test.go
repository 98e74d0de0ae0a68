package llm

import (
	"testing"

	"github.com/narteyr/flashcards/internal/config"
)

func TestResolveProviderConfig(t *testing.T) {
	ResetCache()
	t.Cleanup(ResetCache)

	cfg := &config.Config{
		LLMProvider:     "anthropic",
		AnthropicAPIKey: "sk-test",
		AnthropicModel:  "claude-3-5-haiku-latest",
	}

	pc, err := ResolveProviderConfig(cfg)
	if err != nil {
		t.Fatalf("ResolveProviderConfig failed: %v", err)
	}
	if pc.Kind != ProviderAnthropic {
		t.Errorf("expected anthropic, got %s", pc.Kind)
	}
	if pc.Model != "claude-3-5-haiku-latest" {
		t.Errorf("unexpected model %s", pc.Model)
	}
}

func TestResolveProviderConfigIsMemoized(t *testing.T) {
	ResetCache()
	t.Cleanup(ResetCache)

	first, err := ResolveProviderConfig(&config.Config{LLMProvider: "openai", OpenAIAPIKey: "k1", OpenAIModel: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}

	// A different config must not replace the cached value
	second, err := ResolveProviderConfig(&config.Config{LLMProvider: "ark", ArkAPIKey: "k2"})
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if second != first {
		t.Error("resolution should be memoized until ResetCache")
	}

	ResetCache()
	third, err := ResolveProviderConfig(&config.Config{LLMProvider: "ark", ArkAPIKey: "k2", ArkModel: "m"})
	if err != nil {
		t.Fatalf("post-reset resolve failed: %v", err)
	}
	if third.Kind != ProviderArk {
		t.Errorf("expected ark after reset, got %s", third.Kind)
	}
}

func TestResolveProviderConfigErrors(t *testing.T) {
	ResetCache()
	t.Cleanup(ResetCache)

	if _, err := ResolveProviderConfig(&config.Config{LLMProvider: "carrier-pigeon"}); err == nil {
		t.Error("unknown provider must fail")
	}

	ResetCache()
	if _, err := ResolveProviderConfig(&config.Config{LLMProvider: "openai"}); err == nil {
		t.Error("missing API key must fail")
	}
}
