package llm

// Provider constants
const (
	// ProviderGemini represents the Google Gemini provider (default, and the only
	// provider for plans, images and research).
	ProviderGemini Provider = "gemini"

	// ProviderOpenAI represents the OpenAI provider (chat only)
	ProviderOpenAI Provider = "openai"

	// ProviderOllama represents the Ollama provider (chat only)
	ProviderOllama Provider = "ollama"

	// ProviderAnthropic represents the Anthropic provider (chat only)
	ProviderAnthropic Provider = "anthropic"

	// DefaultChatProvider is the default chat backend
	DefaultChatProvider = ProviderGemini
)

// Gemini model defaults
const (
	// DefaultPlanModel reasons about the idea and returns a structured plan.
	DefaultPlanModel = "gemini-3-pro-preview"

	// DefaultImageModel renders the project cover image.
	DefaultImageModel = "gemini-2.5-flash-image"

	// DefaultResearchModel answers search-grounded research queries.
	DefaultResearchModel = "gemini-2.5-flash"

	// DefaultGeminiChatModel backs the co-founder chat.
	DefaultGeminiChatModel = "gemini-2.5-flash"

	// DefaultThinkingBudget is the token budget for plan reasoning.
	DefaultThinkingBudget int32 = 2048
)

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultChatMaxTokens caps replies for providers that require an explicit limit.
const DefaultChatMaxTokens = 4096

// DefaultChatModelForProvider returns the default chat model for a provider.
func DefaultChatModelForProvider(p Provider) string {
	switch p {
	case ProviderGemini, "":
		return DefaultGeminiChatModel
	case ProviderOpenAI:
		return "gpt-5-mini"
	case ProviderOllama:
		return "llama3.2"
	case ProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	default:
		return ""
	}
}
