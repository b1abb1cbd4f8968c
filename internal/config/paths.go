package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the path to the global Horizon directory (~/.horizon).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".horizon"), nil
}

// LogFilePath returns the workspace log file, honoring log.file when set.
func LogFilePath(cfg *AppConfig) string {
	if cfg != nil && cfg.Log.File != "" {
		return cfg.Log.File
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "horizon.log")
	}
	return filepath.Join(dir, "logs", "horizon.log")
}
