package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	AI        AIConfig        `mapstructure:"ai"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AIConfig configures the provider clients.
type AIConfig struct {
	APIKey         string        `mapstructure:"apiKey"`
	PlanModel      string        `mapstructure:"planModel" validate:"required"`
	ImageModel     string        `mapstructure:"imageModel" validate:"required"`
	ResearchModel  string        `mapstructure:"researchModel" validate:"required"`
	ThinkingBudget int32         `mapstructure:"thinkingBudget" validate:"gte=0,lte=32768"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Chat           ChatConfig    `mapstructure:"chat"`
}

// ChatConfig selects the co-founder chat backend.
type ChatConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=gemini openai ollama anthropic"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"apiKey"`
	BaseURL  string `mapstructure:"baseURL" validate:"omitempty,url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `mapstructure:"maxBackups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"maxAgeDays" validate:"gte=0"`
}

// TelemetryConfig configures the PostHog destination. Consent lives in
// ~/.horizon/telemetry.json, not here.
type TelemetryConfig struct {
	APIKey   string `mapstructure:"apiKey"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AI.Chat.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Chat.Provider))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct rules and reports every violation.
func Validate(cfg *AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "AppConfig.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", field)
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range (%s %s)", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
