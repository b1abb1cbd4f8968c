package cmd

import (
	"fmt"
	"os"

	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/logger"
	"github.com/josephgoksu/horizon/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version, overridden at build time.
	version = "0.1.0"

	// appCfg is the validated configuration, loaded before any command runs.
	appCfg *config.AppConfig
)

// rootCmd represents the base command when called without any subcommands.
// Without a subcommand it opens the terminal workspace.
var rootCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Horizon - turn vague ideas into actionable projects",
	Long: `Horizon turns a one-line idea into a structured project plan with a
task board, a streaming AI co-founder chat and web-grounded research.

Run without arguments to open the terminal workspace, or use the one-shot
commands below.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := initConfig()
		if err != nil {
			return err
		}
		appCfg = cfg
		logger.SetBasePath(crashBasePath())
		logger.SetVersion(version)
		logger.SetCommand(cmd.Name())
		if !ownsTerminal(cmd) {
			logger.SetupStderr(cfg.Log.Level, cfg.Verbose)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWorkspace(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg := FriendlyMessage(err)
		if ui.IsInteractive() && !viper.GetBool("verbose") {
			msg = ui.RenderErrorPanel("Error", msg)
		}
		PrintError(msg, err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.horizon.yaml or $HOME/.horizon.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("horizon %s\n", version))
}

// ownsTerminal reports whether cmd draws a full-screen UI, in which case logs
// go to a file instead of stderr.
func ownsTerminal(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "workspace"
}
