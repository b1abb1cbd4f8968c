package cmd

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/logger"
	mcppresenter "github.com/josephgoksu/horizon/internal/mcp"
	"github.com/josephgoksu/horizon/internal/telemetry"
	"github.com/josephgoksu/horizon/internal/ui"
	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "Research a topic with Google Search grounding",
	Long: `Ask a question and get a concise summary grounded in live web search,
followed by the sources it used.

Example:
  horizon research "best wood for outdoor birdhouses"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	rootCmd.AddCommand(researchCmd)
	researchCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runResearch(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	actx, cleanup, err := appContextFactory(appCfg)
	if err != nil {
		return err
	}
	defer cleanup()
	actx.Telemetry.Track(telemetry.EventCommandExecuted, telemetry.Properties{"command": "research"})

	query := strings.Join(args, " ")
	logger.SetLastInput(logger.InputResearch, query)

	var spin *ui.Spinner
	if ui.IsInteractive() && !asJSON {
		spin = ui.NewSpinner(cmd.ErrOrStderr(), "Searching...")
		spin.Start()
	}
	res, err := app.NewWorkspaceApp(actx).Research(cmd.Context(), query)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return writeJSON(out, res)
	case !ui.IsStdoutTerminal():
		fmt.Fprintln(out, mcppresenter.FormatResearch(res))
	default:
		fmt.Fprintln(out, ui.RenderResearch(res, 80))
	}
	return nil
}
