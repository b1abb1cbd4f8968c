// Package mcp provides the tool parameters, handlers and Markdown presenters
// of the Horizon MCP server.
package mcp

// Tool names exposed by the server.
const (
	ToolCreateProject = "create_project"
	ToolListProjects  = "list_projects"
	ToolGetProject    = "get_project"
	ToolToggleTask    = "toggle_task"
	ToolUpdateProject = "update_project"
	ToolResearch      = "research"
	ToolChat          = "chat"
)

// CreateProjectParams defines the parameters for create_project.
type CreateProjectParams struct {
	// Idea is the loose project idea to plan.
	// Required.
	Idea string `json:"idea"`
}

// ListProjectsParams defines the parameters for list_projects.
type ListProjectsParams struct {
	// Status filters projects by status (idea, planning, in_progress, completed, stuck).
	// Optional.
	Status string `json:"status,omitempty"`
}

// GetProjectParams defines the parameters for get_project.
type GetProjectParams struct {
	// ProjectID is the project id or a unique prefix of it.
	// Required.
	ProjectID string `json:"project_id"`
}

// ToggleTaskParams defines the parameters for toggle_task.
type ToggleTaskParams struct {
	ProjectID string `json:"project_id"` // Required
	TaskID    string `json:"task_id"`    // Required, e.g. "task-0"
}

// UpdateProjectParams defines the parameters for update_project.
// At least one of Status and Notes must be set.
type UpdateProjectParams struct {
	ProjectID string `json:"project_id"`

	// Status is the new status. Any status may follow any other.
	Status string `json:"status,omitempty"`

	// Notes replaces the project notes when non-nil. An empty string clears them.
	Notes *string `json:"notes,omitempty"`
}

// ResearchParams defines the parameters for research.
type ResearchParams struct {
	Query string `json:"query"` // Required
}

// ChatParams defines the parameters for chat.
type ChatParams struct {
	ProjectID string `json:"project_id"` // Required
	Message   string `json:"message"`    // Required
}
