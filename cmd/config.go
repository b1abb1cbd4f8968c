package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/telemetry"
	"github.com/spf13/viper"
)

// initConfig reads .env, the config file and HORIZON_* environment variables
// into the global viper instance and returns the validated configuration.
func initConfig() (*config.AppConfig, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	v := viper.GetViper()
	config.SetDefaults(v)

	v.SetEnvPrefix(config.EnvPrefix)                    // e.g., HORIZON_AI_PLANMODEL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // ai.planModel -> AI_PLANMODEL
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(config.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	} else if v.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}

	return config.Load(v)
}

// newAppContext builds the shared app context for a command. The returned
// cleanup flushes telemetry and must be called before exit.
func newAppContext(cfg *config.AppConfig) (*app.Context, func(), error) {
	llmCfg, err := config.LLMConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	tel := newTelemetryClient(cfg)
	actx := app.NewContext(llmCfg, tel)
	actx.Timeout = cfg.AI.Timeout

	cleanup := func() {
		if err := tel.Close(); err != nil {
			slog.Debug("telemetry flush failed", "error", err)
		}
	}
	return actx, cleanup, nil
}

// newTelemetryClient returns a PostHog client when the user opted in and an API
// key is configured, and a no-op client otherwise.
func newTelemetryClient(cfg *config.AppConfig) telemetry.Client {
	store, err := telemetry.DefaultStore()
	if err != nil {
		slog.Debug("telemetry store unavailable", "error", err)
		return telemetry.NewNoopClient()
	}
	consent, err := store.Load()
	if err != nil {
		slog.Debug("telemetry config unreadable", "error", err)
		return telemetry.NewNoopClient()
	}
	return telemetry.New(telemetry.ClientConfig{
		APIKey:   cfg.Telemetry.APIKey,
		Version:  version,
		Config:   consent,
		Endpoint: cfg.Telemetry.Endpoint,
	})
}
