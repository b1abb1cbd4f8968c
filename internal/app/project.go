package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/josephgoksu/horizon/internal/llm"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/task"
	"github.com/josephgoksu/horizon/internal/telemetry"
)

// Generation steps reported by ProjectApp.Create.
const (
	StepPlanning    = "Analyzing concept & Planning structure..."
	StepVisualizing = "Visualizing identity..."
)

// ErrBlankIdea is returned when Create is called without an idea.
var ErrBlankIdea = errors.New("idea is blank")

// ProjectApp provides project lifecycle operations.
// CLI, TUI and MCP all call these methods.
type ProjectApp struct {
	ctx *Context
}

// NewProjectApp creates a new project application service.
func NewProjectApp(ctx *Context) *ProjectApp {
	return &ProjectApp{ctx: ctx}
}

// Create plans idea, renders its cover image and inserts the resulting project
// at the front of the store. Image generation runs strictly after planning and
// never fails creation. When planning fails nothing is inserted.
//
// onStep, if non-nil, receives StepPlanning and StepVisualizing as work begins.
func (a *ProjectApp) Create(ctx context.Context, idea string, onStep func(step string)) (*project.Project, error) {
	if strings.TrimSpace(idea) == "" {
		return nil, ErrBlankIdea
	}
	if onStep == nil {
		onStep = func(string) {}
	}

	onStep(StepPlanning)
	planCtx, cancel := a.ctx.withTimeout(ctx)
	plan, err := a.ctx.Planner.GeneratePlan(planCtx, idea)
	cancel()
	if err != nil {
		slog.Warn("plan generation failed", "error", err)
		a.ctx.Telemetry.Track(telemetry.EventProjectFailed, telemetry.Properties{
			"configuration_error": llm.IsConfigurationError(err),
		})
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	onStep(StepVisualizing)
	imgCtx, cancel := a.ctx.withTimeout(ctx)
	imageURL := a.ctx.Imagery.Generate(imgCtx, plan.Description)
	cancel()

	p := project.New(project.NewID(), project.Params{
		Title:       plan.Title,
		Description: plan.Description,
		Tags:        plan.Tags,
		Tasks:       plan.Drafts(),
		Idea:        idea,
		ImageURL:    imageURL,
	}, a.ctx.Now())

	if err := a.ctx.Store.Insert(p); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	a.ctx.Telemetry.Track(telemetry.EventProjectCreated, telemetry.Properties{
		"tasks": len(p.Tasks),
		"tags":  len(p.Tags),
	})
	slog.Debug("project created", "id", p.ID, "tasks", len(p.Tasks))
	return &p, nil
}

// List returns all projects, most recent first.
func (a *ProjectApp) List() []project.Project {
	return a.ctx.Store.List()
}

// Get resolves a project by id or unique id prefix.
func (a *ProjectApp) Get(idOrPrefix string) (*project.Project, error) {
	p, err := a.ctx.Store.Resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ToggleTask flips the completion of one task. An unknown task id leaves the
// project unchanged and reports false.
func (a *ProjectApp) ToggleTask(projectID, taskID string) (*project.Project, bool, error) {
	p, err := a.Get(projectID)
	if err != nil {
		return nil, false, err
	}

	updated, found, changed := a.ctx.Store.Modify(p.ID, func(cur project.Project) (project.Patch, bool) {
		tasks, ok := task.Toggle(cur.Tasks, taskID)
		return project.Patch{Tasks: tasks}, ok
	})
	if !found {
		return nil, false, fmt.Errorf("%w: %s", project.ErrNotFound, p.ID)
	}
	if !changed {
		return &updated, false, nil
	}

	a.ctx.Telemetry.Track(telemetry.EventTaskToggled, nil)
	return &updated, true, nil
}

// SetStatus moves a project to status. Any transition is allowed.
func (a *ProjectApp) SetStatus(projectID string, status project.Status) (*project.Project, error) {
	return a.update(projectID, project.Patch{Status: &status}, telemetry.EventStatusChanged)
}

// UpdateNotes replaces a project's notes.
func (a *ProjectApp) UpdateNotes(projectID, notes string) (*project.Project, error) {
	return a.update(projectID, project.Patch{Notes: &notes}, "")
}

// Update merges an arbitrary patch into a project.
func (a *ProjectApp) Update(projectID string, patch project.Patch) (*project.Project, error) {
	return a.update(projectID, patch, "")
}

func (a *ProjectApp) update(projectID string, patch project.Patch, event string) (*project.Project, error) {
	p, err := a.Get(projectID)
	if err != nil {
		return nil, err
	}
	updated, ok := a.ctx.Store.Update(p.ID, patch)
	if !ok {
		return nil, fmt.Errorf("%w: %s", project.ErrNotFound, p.ID)
	}
	if event != "" {
		a.ctx.Telemetry.Track(event, nil)
	}
	return &updated, nil
}
