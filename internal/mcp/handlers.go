package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/project"
)

// ValidationError reports bad tool input so the client can self-correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// Handlers implements the Horizon tools over one in-memory session. Each
// handler returns Markdown for the tool result.
type Handlers struct {
	projects  *app.ProjectApp
	workspace *app.WorkspaceApp
}

// NewHandlers creates tool handlers sharing appCtx's store and sessions.
func NewHandlers(appCtx *app.Context) *Handlers {
	return &Handlers{
		projects:  app.NewProjectApp(appCtx),
		workspace: app.NewWorkspaceApp(appCtx),
	}
}

// CreateProject plans an idea and stores the resulting project.
func (h *Handlers) CreateProject(ctx context.Context, params CreateProjectParams) (string, error) {
	if err := required("idea", params.Idea); err != nil {
		return "", err
	}
	p, err := h.projects.Create(ctx, params.Idea, nil)
	if err != nil {
		return "", err
	}
	return FormatProject(p), nil
}

// ListProjects lists projects, optionally filtered by status.
func (h *Handlers) ListProjects(_ context.Context, params ListProjectsParams) (string, error) {
	projects := h.projects.List()
	if params.Status != "" {
		status, err := project.ParseStatus(params.Status)
		if err != nil {
			return "", &ValidationError{Field: "status", Message: err.Error()}
		}
		filtered := projects[:0]
		for _, p := range projects {
			if p.Status == status {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}
	return FormatProjectList(projects), nil
}

// GetProject returns one project with its board.
func (h *Handlers) GetProject(_ context.Context, params GetProjectParams) (string, error) {
	if err := required("project_id", params.ProjectID); err != nil {
		return "", err
	}
	p, err := h.projects.Get(params.ProjectID)
	if err != nil {
		return "", err
	}
	return FormatProject(p), nil
}

// ToggleTask flips a task's completion. An unknown task id changes nothing.
func (h *Handlers) ToggleTask(_ context.Context, params ToggleTaskParams) (string, error) {
	if err := required("project_id", params.ProjectID); err != nil {
		return "", err
	}
	if err := required("task_id", params.TaskID); err != nil {
		return "", err
	}
	p, found, err := h.projects.ToggleTask(params.ProjectID, params.TaskID)
	if err != nil {
		return "", err
	}
	return FormatToggle(p, params.TaskID, found), nil
}

// UpdateProject changes a project's status and/or notes.
func (h *Handlers) UpdateProject(_ context.Context, params UpdateProjectParams) (string, error) {
	if err := required("project_id", params.ProjectID); err != nil {
		return "", err
	}
	if params.Status == "" && params.Notes == nil {
		return "", &ValidationError{Field: "status", Message: "status or notes is required"}
	}

	var patch project.Patch
	if params.Status != "" {
		status, err := project.ParseStatus(params.Status)
		if err != nil {
			return "", &ValidationError{Field: "status", Message: err.Error()}
		}
		patch.Status = &status
	}
	patch.Notes = params.Notes

	p, err := h.projects.Update(params.ProjectID, patch)
	if err != nil {
		return "", err
	}
	return FormatProject(p), nil
}

// Research runs a search-grounded query.
func (h *Handlers) Research(ctx context.Context, params ResearchParams) (string, error) {
	if err := required("query", params.Query); err != nil {
		return "", err
	}
	res, err := h.workspace.Research(ctx, params.Query)
	if err != nil {
		return "", err
	}
	return FormatResearch(res), nil
}

// Chat sends a message in the project's co-founder chat and returns the reply.
// The conversation persists across calls for the life of the server.
func (h *Handlers) Chat(ctx context.Context, params ChatParams) (string, error) {
	if err := required("project_id", params.ProjectID); err != nil {
		return "", err
	}
	if err := required("message", params.Message); err != nil {
		return "", err
	}
	msgs, err := h.workspace.Send(ctx, params.ProjectID, params.Message, nil)
	if err != nil {
		return "", err
	}
	return FormatChatReply(msgs), nil
}
