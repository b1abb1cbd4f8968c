// Package llm provides the provider plumbing shared by Horizon's AI clients:
// a Gemini content generator (google.golang.org/genai) for plans, images, research
// and chat, plus CloudWeGo Eino chat models for the alternate chat backends.
package llm

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Provider identifies the chat backend to use.
type Provider string

// Config holds configuration for creating provider clients.
type Config struct {
	APIKey         string // Gemini credential (plan, image, research, gemini chat)
	PlanModel      string
	ImageModel     string
	ResearchModel  string
	ThinkingBudget int32

	ChatProvider Provider
	ChatModel    string
	ChatAPIKey   string // Credential for non-Gemini chat providers
	ChatBaseURL  string // Ollama or OpenAI-compatible endpoint
}

// HasCredential reports whether a Gemini credential is configured.
func (c Config) HasCredential() bool {
	return c.APIKey != ""
}

// HasChatCredential reports whether the configured chat backend can be used
// without a network round-trip failing on authentication.
func (c Config) HasChatCredential() bool {
	switch c.ChatProvider {
	case "", ProviderGemini:
		return c.APIKey != ""
	case ProviderOllama:
		return true
	default:
		return c.ChatAPIKey != ""
	}
}

// ContentGenerator is the subset of the genai Models service used by Horizon.
// *genai.Models satisfies it; tests substitute fakes.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// NewContentGenerator creates a Gemini API client and returns its Models service.
// It fails with ErrNoCredential when no API key is configured.
func NewContentGenerator(ctx context.Context, cfg Config) (ContentGenerator, error) {
	if !cfg.HasCredential() {
		return nil, ErrNoCredential
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ProviderError{Op: "create gemini client", Err: err}
	}
	return client.Models, nil
}

// LazyGenerator defers creating the Gemini client until first use, so that a
// missing credential only affects the calls that need one.
type LazyGenerator struct {
	cfg Config

	once sync.Once
	gen  ContentGenerator
	err  error
}

// NewLazyGenerator returns a generator that connects on first use.
func NewLazyGenerator(cfg Config) *LazyGenerator {
	return &LazyGenerator{cfg: cfg}
}

func (l *LazyGenerator) resolve(ctx context.Context) (ContentGenerator, error) {
	l.once.Do(func() {
		l.gen, l.err = NewContentGenerator(ctx, l.cfg)
	})
	return l.gen, l.err
}

// GenerateContent implements ContentGenerator.
func (l *LazyGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	gen, err := l.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return gen.GenerateContent(ctx, model, contents, config)
}

// GenerateContentStream implements ContentGenerator.
func (l *LazyGenerator) GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	gen, err := l.resolve(ctx)
	if err != nil {
		return func(yield func(*genai.GenerateContentResponse, error) bool) {
			yield(nil, err)
		}
	}
	return gen.GenerateContentStream(ctx, model, contents, config)
}

// NewChatModel creates an Eino chat model for the non-Gemini chat backends.
// Gemini chat goes through ContentGenerator directly.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	switch cfg.ChatProvider {
	case ProviderOpenAI:
		if cfg.ChatAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required: %w", ErrNoCredential)
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:   cfg.ChatModel,
			APIKey:  cfg.ChatAPIKey,
			BaseURL: cfg.ChatBaseURL,
		})

	case ProviderOllama:
		baseURL := cfg.ChatBaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.ChatModel,
		})

	case ProviderAnthropic:
		if cfg.ChatAPIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required: %w", ErrNoCredential)
		}
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:    cfg.ChatAPIKey,
			Model:     cfg.ChatModel,
			MaxTokens: DefaultChatMaxTokens,
		})

	default:
		return nil, fmt.Errorf("unsupported chat provider for eino: %q (supported: openai, ollama, anthropic)", cfg.ChatProvider)
	}
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderOllama:
		return ProviderOllama, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}
