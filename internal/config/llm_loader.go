package config

import (
	"os"
	"strings"

	"github.com/josephgoksu/horizon/internal/llm"
)

// apiKeyEnvVars are consulted in order when ai.apiKey is not configured.
var apiKeyEnvVars = []string{"HORIZON_API_KEY", "API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"}

// LLMConfig builds the provider configuration from cfg, resolving credentials
// from the environment. A missing key is not an error here: each client detects
// it before any network call.
func LLMConfig(cfg *AppConfig) (llm.Config, error) {
	provider := llm.DefaultChatProvider
	if cfg.AI.Chat.Provider != "" {
		p, err := llm.ValidateProvider(cfg.AI.Chat.Provider)
		if err != nil {
			return llm.Config{}, err
		}
		provider = p
	}

	chatModel := cfg.AI.Chat.Model
	if chatModel == "" {
		chatModel = llm.DefaultChatModelForProvider(provider)
	}

	baseURL := cfg.AI.Chat.BaseURL
	if baseURL == "" && provider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	return llm.Config{
		APIKey:         ResolveAPIKey(cfg),
		PlanModel:      cfg.AI.PlanModel,
		ImageModel:     cfg.AI.ImageModel,
		ResearchModel:  cfg.AI.ResearchModel,
		ThinkingBudget: cfg.AI.ThinkingBudget,
		ChatProvider:   provider,
		ChatModel:      chatModel,
		ChatAPIKey:     ResolveChatAPIKey(cfg, provider),
		ChatBaseURL:    baseURL,
	}, nil
}

// ResolveAPIKey returns the Gemini credential: ai.apiKey, then HORIZON_API_KEY,
// API_KEY, GEMINI_API_KEY and GOOGLE_API_KEY.
func ResolveAPIKey(cfg *AppConfig) string {
	if key := strings.TrimSpace(cfg.AI.APIKey); key != "" {
		return key
	}
	for _, name := range apiKeyEnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return ""
}

// ResolveChatAPIKey returns the credential for a non-Gemini chat provider:
// ai.chat.apiKey, then the provider's conventional environment variable.
func ResolveChatAPIKey(cfg *AppConfig, provider llm.Provider) string {
	if key := strings.TrimSpace(cfg.AI.Chat.APIKey); key != "" {
		return key
	}
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	default:
		return ""
	}
}
