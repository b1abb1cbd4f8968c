package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/josephgoksu/horizon/internal/app"
	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/josephgoksu/horizon/internal/llm/llmtest"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const birdhouseID = "0192aaaa-0000-7000-8000-000000000001"

func birdhouse() project.Project {
	return project.New(birdhouseID, project.Params{
		Title:       "Birdhouse",
		Description: "A cedar birdhouse.",
		Tags:        []string{"woodwork"},
		Tasks: []task.Draft{
			{Title: "Sketch", Category: task.CategoryDesign},
			{Title: "Cut wood", Category: task.CategoryOther, EstimatedTime: "2 hours"},
		},
		Idea: "birdhouse",
	}, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
}

func newHandlers(gen *llmtest.Generator, cfg llm.Config, seed ...project.Project) *Handlers {
	return NewHandlers(app.NewContextWithGenerator(gen, cfg, project.NewStore(seed...), nil))
}

func TestHandlers_Validation(t *testing.T) {
	h := newHandlers(&llmtest.Generator{}, llm.Config{APIKey: "k"}, birdhouse())
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() (string, error)
		field string
	}{
		{"create without idea", func() (string, error) { return h.CreateProject(ctx, CreateProjectParams{Idea: " "}) }, "idea"},
		{"get without id", func() (string, error) { return h.GetProject(ctx, GetProjectParams{}) }, "project_id"},
		{"toggle without task", func() (string, error) {
			return h.ToggleTask(ctx, ToggleTaskParams{ProjectID: birdhouseID})
		}, "task_id"},
		{"update with nothing", func() (string, error) {
			return h.UpdateProject(ctx, UpdateProjectParams{ProjectID: birdhouseID})
		}, "status"},
		{"update bad status", func() (string, error) {
			return h.UpdateProject(ctx, UpdateProjectParams{ProjectID: birdhouseID, Status: "done-ish"})
		}, "status"},
		{"list bad status", func() (string, error) { return h.ListProjects(ctx, ListProjectsParams{Status: "nope"}) }, "status"},
		{"research without query", func() (string, error) { return h.Research(ctx, ResearchParams{}) }, "query"},
		{"chat without message", func() (string, error) {
			return h.Chat(ctx, ChatParams{ProjectID: birdhouseID})
		}, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestHandlers_CreateProject(t *testing.T) {
	plan := `{"title": "SmartMirror Hub", "description": "Mirror", "tags": ["IoT"], "tasks": [{"title": "Parts", "description": "Buy", "category": "Research"}]}`
	gen := &llmtest.Generator{ByModel: map[string]*genai.GenerateContentResponse{
		llm.DefaultPlanModel: llmtest.TextResponse(plan),
	}}
	h := newHandlers(gen, llm.Config{APIKey: "k"})

	out, err := h.CreateProject(context.Background(), CreateProjectParams{Idea: "smart mirror"})
	require.NoError(t, err)
	assert.Contains(t, out, "## SmartMirror Hub")
	assert.Contains(t, out, "**Status**: Planning")
	assert.Contains(t, out, "- [ ] `task-0` Parts (Research)")
	assert.NotContains(t, out, "data:image")

	list, err := h.ListProjects(context.Background(), ListProjectsParams{})
	require.NoError(t, err)
	assert.Contains(t, list, "## Projects (1)")
}

func TestHandlers_CreateProject_NoCredential(t *testing.T) {
	h := newHandlers(&llmtest.Generator{}, llm.Config{})

	_, err := h.CreateProject(context.Background(), CreateProjectParams{Idea: "smart mirror"})
	assert.ErrorIs(t, err, llm.ErrNoCredential)

	list, err := h.ListProjects(context.Background(), ListProjectsParams{})
	require.NoError(t, err)
	assert.Contains(t, list, "No projects yet")
}

func TestHandlers_ListProjects_StatusFilter(t *testing.T) {
	other := birdhouse()
	other.ID = "0192aaaa-0000-7000-8000-000000000002"
	other.Title = "Treehouse"
	other.Status = project.StatusStuck
	h := newHandlers(&llmtest.Generator{}, llm.Config{}, birdhouse(), other)

	out, err := h.ListProjects(context.Background(), ListProjectsParams{Status: "stuck"})
	require.NoError(t, err)
	assert.Contains(t, out, "Treehouse")
	assert.NotContains(t, out, "Birdhouse")
}

func TestHandlers_ToggleTask(t *testing.T) {
	h := newHandlers(&llmtest.Generator{}, llm.Config{}, birdhouse())
	ctx := context.Background()

	out, err := h.ToggleTask(ctx, ToggleTaskParams{ProjectID: "0192aaaa", TaskID: "task-1"})
	require.NoError(t, err)
	assert.Contains(t, out, "is now **done**")
	assert.Contains(t, out, "1/2 tasks completed")

	out, err = h.ToggleTask(ctx, ToggleTaskParams{ProjectID: birdhouseID, TaskID: "task-9"})
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing changed")
}

func TestHandlers_UpdateProject(t *testing.T) {
	h := newHandlers(&llmtest.Generator{}, llm.Config{}, birdhouse())
	notes := "Use cedar"

	out, err := h.UpdateProject(context.Background(), UpdateProjectParams{
		ProjectID: birdhouseID,
		Status:    "in progress",
		Notes:     &notes,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "**Status**: In Progress")
	assert.Contains(t, out, "### Notes\nUse cedar")
}

func TestHandlers_GetProject_NotFound(t *testing.T) {
	h := newHandlers(&llmtest.Generator{}, llm.Config{})

	_, err := h.GetProject(context.Background(), GetProjectParams{ProjectID: "missing"})
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestHandlers_Chat(t *testing.T) {
	gen := &llmtest.Generator{Chunks: []string{"Start ", "with a sketch."}}
	h := newHandlers(gen, llm.Config{APIKey: "k"}, birdhouse())

	out, err := h.Chat(context.Background(), ChatParams{ProjectID: birdhouseID, Message: "Where do I begin?"})
	require.NoError(t, err)
	assert.Equal(t, "Start with a sketch.", out)

	_, err = h.Chat(context.Background(), ChatParams{ProjectID: birdhouseID, Message: "And then?"})
	require.NoError(t, err)

	calls := gen.Calls()
	require.Len(t, calls, 2)
	// welcome, first question, first reply, second question
	assert.Len(t, calls[1].Contents, 4)
}

func TestHandlers_Research(t *testing.T) {
	gen := &llmtest.Generator{Response: llmtest.TextResponse("Cedar resists rot.")}
	h := newHandlers(gen, llm.Config{APIKey: "k"})

	out, err := h.Research(context.Background(), ResearchParams{Query: "best birdhouse wood"})
	require.NoError(t, err)
	assert.Equal(t, "Cedar resists rot.", out)
}
