package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/config"
	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/josephgoksu/horizon/internal/llm/llmtest"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/telemetry"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"gopkg.in/yaml.v3"
)

const mirrorPlan = `{
  "title": "SmartMirror Hub",
  "description": "A two-way mirror showing calendar and weather.",
  "tags": ["IoT", "RaspberryPi", "Hardware"],
  "tasks": [
    {"title": "Source parts", "description": "Pi and acrylic", "category": "Research", "estimatedTime": "2 days"},
    {"title": "Build the frame", "description": "Wood", "category": "Design"}
  ]
}`

// useFakeGenerator routes one-shot commands through gen for the test.
func useFakeGenerator(t *testing.T, gen *llmtest.Generator, cfg llm.Config) {
	t.Helper()
	orig := appContextFactory
	appContextFactory = func(*config.AppConfig) (*app.Context, func(), error) {
		return app.NewContextWithGenerator(gen, cfg, project.NewStore(), nil), func() {}, nil
	}
	t.Cleanup(func() { appContextFactory = orig })
}

func resetFlag(t *testing.T, cmd *cobra.Command, name string) {
	t.Helper()
	f := cmd.Flags().Lookup(name)
	require.NotNil(t, f)
	require.NoError(t, f.Value.Set(f.DefValue))
	f.Changed = false
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	// Flag values persist across Execute calls on the shared command tree.
	resetFlag(t, newCmd, "json")
	resetFlag(t, newCmd, "yaml")
	resetFlag(t, researchCmd, "json")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "turns a one-line idea into a structured project plan")
	assert.Contains(t, out, "Usage:")
	for _, sub := range []string{"new", "research", "workspace", "mcp", "telemetry", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "horizon "+GetVersion())
}

func TestNewCmd_JSON(t *testing.T) {
	gen := &llmtest.Generator{ByModel: map[string]*genai.GenerateContentResponse{
		llm.DefaultPlanModel: llmtest.TextResponse(mirrorPlan),
	}}
	useFakeGenerator(t, gen, llm.Config{
		APIKey:     "k",
		PlanModel:  llm.DefaultPlanModel,
		ImageModel: llm.DefaultImageModel,
	})

	out, err := execute(t, "new", "smart", "mirror", "--json")
	require.NoError(t, err)

	var p project.Project
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "SmartMirror Hub", p.Title)
	assert.Equal(t, project.StatusPlanning, p.Status)
	assert.Equal(t, "Initial idea: smart mirror", p.Notes)
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, "task-0", p.Tasks[0].ID)
	assert.NotEmpty(t, p.ImageURL)
}

func TestNewCmd_YAML(t *testing.T) {
	gen := &llmtest.Generator{ByModel: map[string]*genai.GenerateContentResponse{
		llm.DefaultPlanModel: llmtest.TextResponse(mirrorPlan),
	}}
	useFakeGenerator(t, gen, llm.Config{
		APIKey:     "k",
		PlanModel:  llm.DefaultPlanModel,
		ImageModel: llm.DefaultImageModel,
	})

	out, err := execute(t, "new", "smart mirror", "--yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "SmartMirror Hub", doc["title"])
	assert.Equal(t, "PLANNING", doc["status"])
}

func TestNewCmd_Markdown(t *testing.T) {
	gen := &llmtest.Generator{ByModel: map[string]*genai.GenerateContentResponse{
		llm.DefaultPlanModel: llmtest.TextResponse(mirrorPlan),
	}}
	useFakeGenerator(t, gen, llm.Config{
		APIKey:     "k",
		PlanModel:  llm.DefaultPlanModel,
		ImageModel: llm.DefaultImageModel,
	})

	// Output is not a terminal under go test, so the summary is Markdown.
	out, err := execute(t, "new", "smart mirror")
	require.NoError(t, err)
	assert.Contains(t, out, "## SmartMirror Hub")
	assert.Contains(t, out, "- [ ] `task-0` Source parts (Research, 2 days)")
	assert.Contains(t, out, "**Progress**: 0/2 tasks completed")
	assert.NotContains(t, out, "picsum")
}

func TestNewCmd_NoCredential(t *testing.T) {
	useFakeGenerator(t, &llmtest.Generator{}, llm.Config{})

	_, err := execute(t, "new", "smart mirror")
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrNoCredential)
	assert.Contains(t, FriendlyMessage(err), "API key is missing")
}

func TestNewCmd_RequiresIdea(t *testing.T) {
	_, err := execute(t, "new")
	assert.Error(t, err)
}

func TestResearchCmd(t *testing.T) {
	gen := &llmtest.Generator{Response: llmtest.TextResponse("Cedar resists rot.")}
	useFakeGenerator(t, gen, llm.Config{APIKey: "k", ResearchModel: llm.DefaultResearchModel})

	out, err := execute(t, "research", "best", "birdhouse", "wood")
	require.NoError(t, err)
	assert.Contains(t, out, "Cedar resists rot.")

	calls := gen.CallsFor(llm.DefaultResearchModel)
	require.Len(t, calls, 1)
	assert.Equal(t, "best birdhouse wood", calls[0].Contents[0].Parts[0].Text)
}

func TestWorkspaceCmd_RequiresTerminal(t *testing.T) {
	// go test never runs with a terminal on stdin and stdout.
	_, err := execute(t, "workspace")
	assert.ErrorIs(t, err, ErrNotInteractive)
}

func TestTelemetryCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	orig := telemetryStore
	telemetryStore = func() (*telemetry.Store, error) {
		return telemetry.NewStore(fs, "/home/test/.horizon"), nil
	}
	t.Cleanup(func() { telemetryStore = orig })

	out, err := execute(t, "telemetry", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "not configured")

	out, err = execute(t, "telemetry", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, "Telemetry enabled")

	out, err = execute(t, "telemetry", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Telemetry: enabled")
	assert.Contains(t, out, "Anonymous ID")

	out, err = execute(t, "telemetry", "disable")
	require.NoError(t, err)
	assert.Contains(t, out, "Telemetry disabled")

	cfg, err := telemetry.NewStore(fs, "/home/test/.horizon").Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsEnabled())
	assert.False(t, cfg.NeedsConsent())
}

func TestOwnsTerminal(t *testing.T) {
	assert.True(t, ownsTerminal(rootCmd))
	assert.True(t, ownsTerminal(workspaceCmd))
	assert.False(t, ownsTerminal(newCmd))
	assert.False(t, ownsTerminal(mcpCmd))
}
