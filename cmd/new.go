package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/logger"
	mcppresenter "github.com/josephgoksu/horizon/internal/mcp"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/telemetry"
	"github.com/josephgoksu/horizon/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// appContextFactory builds the app context for one-shot commands. Tests swap
// it for a context backed by a fake generator.
var appContextFactory = newAppContext

var newCmd = &cobra.Command{
	Use:   "new <idea>",
	Short: "Turn an idea into a project plan",
	Long: `Generate a structured plan for an idea: title, description, tags and an
initial task board, plus concept art.

Examples:
  horizon new "smart mirror with calendar and weather"
  horizon new build a birdhouse --yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().Bool("json", false, "print the project as JSON")
	newCmd.Flags().Bool("yaml", false, "print the project as YAML")
	newCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func runNew(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	actx, cleanup, err := appContextFactory(appCfg)
	if err != nil {
		return err
	}
	defer cleanup()
	actx.Telemetry.Track(telemetry.EventCommandExecuted, telemetry.Properties{"command": "new"})

	idea := strings.Join(args, " ")
	logger.SetLastInput(logger.InputIdea, idea)

	var spin *ui.Spinner
	if ui.IsInteractive() && !asJSON && !asYAML {
		spin = ui.NewSpinner(cmd.ErrOrStderr(), app.StepPlanning)
		spin.Start()
	}
	onStep := func(step string) {
		if spin != nil {
			spin.SetSuffix(step)
		}
	}

	p, err := app.NewProjectApp(actx).Create(cmd.Context(), idea, onStep)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return writeJSON(out, p)
	case asYAML:
		return writeYAML(out, p)
	case !ui.IsStdoutTerminal():
		fmt.Fprintln(out, mcppresenter.FormatProject(p))
		return nil
	default:
		printProject(out, p)
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// printProject writes a styled summary for a terminal. The cover image is left
// out; it is a data URL or a placeholder link.
func printProject(w io.Writer, p *project.Project) {
	const width = 80

	fmt.Fprintln(w, ui.RenderPageHeader(p.Title, ui.StatusBadge(p.Status)))
	fmt.Fprintln(w)
	if p.Description != "" {
		fmt.Fprintln(w, ui.NewPanel("Overview", ui.WrapText(p.Description, width-4)).WithBorderColor(ui.ColorCyan).WithWidth(width).Render())
		fmt.Fprintln(w)
	}
	if tags := ui.FormatTags(p.Tags, len(p.Tags)); tags != "" {
		fmt.Fprintln(w, ui.StyleTag.Render(tags))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, ui.RenderBoard(p.Tasks, -1, width))
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.StyleSubtle.Render("ID: "+p.ID))
}
