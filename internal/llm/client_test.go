package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
		wantErr  bool
	}{
		{name: "valid gemini", provider: "gemini", want: ProviderGemini},
		{name: "valid openai", provider: "openai", want: ProviderOpenAI},
		{name: "valid ollama", provider: "ollama", want: ProviderOllama},
		{name: "valid anthropic", provider: "anthropic", want: ProviderAnthropic},
		{name: "invalid provider", provider: "invalid", wantErr: true},
		{name: "empty provider", provider: "", wantErr: true},
		{name: "case sensitive - GEMINI fails", provider: "GEMINI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProvider(tt.provider)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProvider(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ValidateProvider(%q) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}

func TestDefaultChatModelForProvider(t *testing.T) {
	tests := []struct {
		provider Provider
		want     string
	}{
		{ProviderGemini, DefaultGeminiChatModel},
		{"", DefaultGeminiChatModel},
		{ProviderOllama, "llama3.2"},
		{ProviderAnthropic, "claude-3-5-sonnet-latest"},
		{"unknown", ""},
	}
	for _, tt := range tests {
		if got := DefaultChatModelForProvider(tt.provider); got != tt.want {
			t.Errorf("DefaultChatModelForProvider(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestNewContentGenerator_RequiresCredential(t *testing.T) {
	_, err := NewContentGenerator(context.Background(), Config{})
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("NewContentGenerator() error = %v, want ErrNoCredential", err)
	}
}

func TestLazyGenerator_PropagatesCredentialError(t *testing.T) {
	lazy := NewLazyGenerator(Config{})

	_, err := lazy.GenerateContent(context.Background(), "m", genai.Text("hi"), nil)
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("GenerateContent() error = %v, want ErrNoCredential", err)
	}

	var streamErr error
	for _, err := range lazy.GenerateContentStream(context.Background(), "m", genai.Text("hi"), nil) {
		streamErr = err
	}
	if !errors.Is(streamErr, ErrNoCredential) {
		t.Fatalf("GenerateContentStream() error = %v, want ErrNoCredential", streamErr)
	}
}

func TestNewChatModel_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "openai requires API key",
			cfg:     Config{ChatProvider: ProviderOpenAI, ChatModel: "gpt-4o"},
			wantErr: "OpenAI API key is required",
		},
		{
			name:    "anthropic requires API key",
			cfg:     Config{ChatProvider: ProviderAnthropic, ChatModel: "claude-3"},
			wantErr: "anthropic API key is required",
		},
		{
			name:    "gemini is not an eino backend",
			cfg:     Config{ChatProvider: ProviderGemini},
			wantErr: "unsupported chat provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChatModel(ctx, tt.cfg)
			if err == nil {
				t.Fatalf("NewChatModel() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewChatModel() error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_HasChatCredential(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"gemini with key", Config{APIKey: "k"}, true},
		{"gemini without key", Config{}, false},
		{"ollama never needs a key", Config{ChatProvider: ProviderOllama}, true},
		{"openai needs chat key", Config{ChatProvider: ProviderOpenAI, APIKey: "gemini"}, false},
		{"openai with chat key", Config{ChatProvider: ProviderOpenAI, ChatAPIKey: "sk"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasChatCredential(); got != tt.want {
				t.Errorf("HasChatCredential() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("boom")
	pe := &ProviderError{Op: "generate plan", Err: cause}
	if !errors.Is(pe, cause) {
		t.Error("ProviderError should unwrap to its cause")
	}
	if pe.Error() != "generate plan: boom" {
		t.Errorf("ProviderError.Error() = %q", pe.Error())
	}

	parseErr := &ParseError{Violations: []string{"Title is required", "Tasks is required"}}
	if !strings.Contains(parseErr.Error(), "Title is required; Tasks is required") {
		t.Errorf("ParseError.Error() = %q", parseErr.Error())
	}

	if !IsConfigurationError(errors.Join(errors.New("x"), ErrNoCredential)) {
		t.Error("IsConfigurationError should detect wrapped ErrNoCredential")
	}
}
