package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/horizon/internal/app"
	mcppresenter "github.com/josephgoksu/horizon/internal/mcp"
	"github.com/josephgoksu/horizon/internal/telemetry"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio so AI assistants
can plan ideas, work the task board, chat and research through Horizon.

Projects and chat sessions live in memory for as long as the server runs.

Example:
  horizon mcp`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// mcpMarkdownResponse wraps Markdown content in an MCP tool result.
func mcpMarkdownResponse(markdown string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: markdown}},
	}, nil
}

// mcpErrorResponse wraps an error in an MCP tool result with IsError=true.
// Tool errors go in the result, not the protocol, so the client can self-correct.
func mcpErrorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: mcppresenter.FormatError(err.Error())}},
		IsError: true,
	}, nil
}

// mcpValidationErrorResponse wraps a validation error with IsError=true.
func mcpValidationErrorResponse(field, message string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: mcppresenter.FormatValidationError(field, message)}},
		IsError: true,
	}, nil
}

// mcpToolResult turns a handler outcome into a tool result.
func mcpToolResult(markdown string, err error) (*mcpsdk.CallToolResultFor[any], error) {
	if err == nil {
		return mcpMarkdownResponse(markdown)
	}
	var verr *mcppresenter.ValidationError
	if errors.As(err, &verr) {
		return mcpValidationErrorResponse(verr.Field, verr.Message)
	}
	return mcpErrorResponse(err)
}

// addTool registers a handler that takes typed arguments and returns Markdown.
func addTool[T any](server *mcpsdk.Server, name, description string, handle func(context.Context, T) (string, error)) {
	tool := &mcpsdk.Tool{Name: name, Description: description}
	mcpsdk.AddTool(server, tool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[T]) (*mcpsdk.CallToolResultFor[any], error) {
		return mcpToolResult(handle(ctx, params.Arguments))
	})
}

// newMCPServer builds the server and registers every tool against one shared
// app context.
func newMCPServer(actx *app.Context) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "horizon-mcp",
		Version: version,
	}

	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			fmt.Fprintf(os.Stderr, "✓ MCP connection established\n")
			if viper.GetBool("verbose") {
				fmt.Fprintf(os.Stderr, "[DEBUG] Client initialized\n")
			}
		},
	}

	server := mcpsdk.NewServer(impl, serverOpts)
	h := mcppresenter.NewHandlers(actx)

	addTool(server, mcppresenter.ToolCreateProject,
		"Turn a loose idea into a project: title, description, 3-5 tags and 5-8 categorized tasks. Takes several seconds. Use {\"idea\":\"...\"}.",
		h.CreateProject)
	addTool(server, mcppresenter.ToolListProjects,
		"List this session's projects, newest first, with status and task progress. Optional {\"status\":\"in_progress\"} filter.",
		h.ListProjects)
	addTool(server, mcppresenter.ToolGetProject,
		"Show a project with its task board and notes. project_id accepts a unique prefix.",
		h.GetProject)
	addTool(server, mcppresenter.ToolToggleTask,
		"Flip a task between done and open. Task ids look like \"task-0\". An unknown task id changes nothing.",
		h.ToggleTask)
	addTool(server, mcppresenter.ToolUpdateProject,
		"Change a project's status (idea, planning, in_progress, completed, stuck) and/or replace its notes.",
		h.UpdateProject)
	addTool(server, mcppresenter.ToolResearch,
		"Research a topic with Google Search grounding. Returns a concise summary and its sources.",
		h.Research)
	addTool(server, mcppresenter.ToolChat,
		"Ask the project's AI co-founder. The conversation continues across calls while the server runs.",
		h.Chat)

	return server
}

func runMCPServer(ctx context.Context) error {
	// stdout carries JSON-RPC only; status goes to stderr.
	fmt.Fprintln(os.Stderr, "Horizon MCP Server starting...")

	actx, cleanup, err := appContextFactory(appCfg)
	if err != nil {
		return err
	}
	defer cleanup()
	actx.Telemetry.Track(telemetry.EventCommandExecuted, telemetry.Properties{"command": "mcp"})

	if !actx.LLMCfg.HasCredential() {
		fmt.Fprintln(os.Stderr, "⚠  API key is missing: create_project, chat and research need one.")
	}

	server := newMCPServer(actx)
	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
