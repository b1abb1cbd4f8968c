// Package config provides Horizon's configuration: defaults, the validated
// application config loaded through viper, credential resolution and paths.
package config

import (
	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the config file name searched in ./ and $HOME (.horizon.yaml).
	ConfigName = ".horizon"

	// EnvPrefix prefixes environment overrides, e.g. HORIZON_AI_PLANMODEL.
	EnvPrefix = "HORIZON"
)

// Log rotation defaults for the workspace log file.
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ai.planModel", llm.DefaultPlanModel)
	v.SetDefault("ai.imageModel", llm.DefaultImageModel)
	v.SetDefault("ai.researchModel", llm.DefaultResearchModel)
	v.SetDefault("ai.thinkingBudget", llm.DefaultThinkingBudget)
	v.SetDefault("ai.timeout", "0s")
	v.SetDefault("ai.chat.provider", string(llm.DefaultChatProvider))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.maxSizeMB", DefaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", DefaultLogMaxBackups)
	v.SetDefault("log.maxAgeDays", DefaultLogMaxAgeDays)
}
