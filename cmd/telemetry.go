package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/horizon/internal/telemetry"
	"github.com/josephgoksu/horizon/internal/ui"
	"github.com/spf13/cobra"
)

// telemetryStore opens the consent file. Tests point it at a MemMapFs.
var telemetryStore = telemetry.DefaultStore

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage Horizon's anonymous telemetry settings.

Telemetry is off until you enable it. Only event names and counts are sent:
never ideas, plans, chat messages or research queries.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := loadTelemetryConfig()
		if err != nil {
			return err
		}

		var body strings.Builder
		switch {
		case cfg.NeedsConsent():
			body.WriteString("Telemetry: not configured (off)\n")
			body.WriteString("To enable: horizon telemetry enable")
		case cfg.IsEnabled():
			body.WriteString("Telemetry: enabled\n")
			fmt.Fprintf(&body, "Anonymous ID: %s\n", cfg.AnonymousID)
			fmt.Fprintf(&body, "Config: %s\n\n", store.Path())
			body.WriteString("To disable: horizon telemetry disable")
		default:
			body.WriteString("Telemetry: disabled\n\n")
			body.WriteString("To enable: horizon telemetry enable")
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderInfoPanel("📊 Telemetry", body.String()))
		return nil
	},
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := loadTelemetryConfig()
		if err != nil {
			return err
		}
		cfg.Enable()
		if err := store.Save(cfg); err != nil {
			return fmt.Errorf("failed to enable telemetry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderSuccessPanel("✅ Telemetry enabled", "Thank you for helping improve Horizon!"))
		return nil
	},
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := loadTelemetryConfig()
		if err != nil {
			return err
		}
		cfg.Disable()
		if err := store.Save(cfg); err != nil {
			return fmt.Errorf("failed to disable telemetry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Telemetry disabled.")
		return nil
	},
}

func loadTelemetryConfig() (*telemetry.Store, *telemetry.Config, error) {
	store, err := telemetryStore()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read telemetry status: %w", err)
	}
	return store, cfg, nil
}

func init() {
	rootCmd.AddCommand(telemetryCmd)
	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryEnableCmd)
	telemetryCmd.AddCommand(telemetryDisableCmd)
}
