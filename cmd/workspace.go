package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/logger"
	"github.com/josephgoksu/horizon/internal/telemetry"
	"github.com/josephgoksu/horizon/internal/ui"
	"github.com/spf13/cobra"
)

// ErrNotInteractive is returned when the workspace is started without a TTY.
var ErrNotInteractive = errors.New("the workspace needs an interactive terminal; use 'horizon new' or 'horizon mcp' instead")

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Open the terminal workspace",
	Long: `Open the full-screen workspace: a dashboard of this session's projects,
and for each project a task board, a streaming co-founder chat and research.

Projects live for the session only.`,
	Args: cobra.NoArgs,
	RunE: runWorkspace,
}

func init() {
	rootCmd.AddCommand(workspaceCmd)
}

func runWorkspace(cmd *cobra.Command, _ []string) error {
	if !ui.IsInteractive() {
		return ErrNotInteractive
	}

	closer, err := logger.SetupFile(logger.FileOptions{
		Path:       config.LogFilePath(appCfg),
		MaxSizeMB:  appCfg.Log.MaxSizeMB,
		MaxBackups: appCfg.Log.MaxBackups,
		MaxAgeDays: appCfg.Log.MaxAgeDays,
	}, logger.ParseLevel(appCfg.Log.Level))
	if err != nil {
		logger.Setup(io.Discard, slog.LevelError)
		fmt.Fprintf(os.Stderr, "warning: could not open log file: %v\n", err)
	} else {
		defer func() { _ = closer.Close() }()
	}

	actx, cleanup, err := appContextFactory(appCfg)
	if err != nil {
		return err
	}
	defer cleanup()
	actx.Telemetry.Track(telemetry.EventCommandExecuted, telemetry.Properties{"command": "workspace"})

	slog.Info("workspace started", "version", version, "credential", actx.LLMCfg.HasCredential())
	return ui.RunWorkspace(cmd.Context(), actx)
}

// crashBasePath is the directory crash logs are written under.
func crashBasePath() string {
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "horizon")
	}
	return dir
}
