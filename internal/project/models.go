// Package project holds the Project entity and the in-memory store of a session.
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/horizon/internal/task"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status represents where a project stands. Transitions are user-driven and
// unconstrained: any status may follow any other.
type Status string

const (
	StatusIdea       Status = "IDEA"
	StatusPlanning   Status = "PLANNING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusStuck      Status = "STUCK"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusIdea,
	StatusPlanning,
	StatusInProgress,
	StatusCompleted,
	StatusStuck,
}

var labelCaser = cases.Title(language.English)

// Label returns a human-readable label, e.g. "In Progress".
func (s Status) Label() string {
	return labelCaser.String(strings.ReplaceAll(string(s), "_", " "))
}

// ParseStatus accepts canonical names case-insensitively, with spaces or
// dashes in place of underscores ("in progress", "in-progress").
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for _, st := range Statuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (valid: idea, planning, in_progress, completed, stuck)", s)
}

// Project is a planned idea together with its task board.
type Project struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Tags        []string    `json:"tags" yaml:"tags"`
	Status      Status      `json:"status" yaml:"status"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	Tasks       []task.Task `json:"tasks" yaml:"tasks"`
	ImageURL    string      `json:"imageUrl" yaml:"imageUrl"`
	Notes       string      `json:"notes" yaml:"notes"`
}

// Progress returns the completed fraction of the project's tasks.
func (p Project) Progress() float64 {
	return task.Progress(p.Tasks)
}

// Clone returns a deep copy so callers never share slices with the store.
func (p Project) Clone() Project {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Tasks != nil {
		out.Tasks = append([]task.Task(nil), p.Tasks...)
	}
	return out
}

// Params are the inputs assembled by the create pipeline.
type Params struct {
	Title       string
	Description string
	Tags        []string
	Tasks       []task.Draft
	Idea        string
	ImageURL    string
}

// NewID returns a unique, time-ordered project id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// New assembles a freshly planned project. New projects start at PLANNING and
// their notes are seeded with the original idea.
func New(id string, params Params, now time.Time) Project {
	return Project{
		ID:          id,
		Title:       params.Title,
		Description: params.Description,
		Tags:        append([]string(nil), params.Tags...),
		Status:      StatusPlanning,
		CreatedAt:   now,
		Tasks:       task.FromDrafts(params.Tasks),
		ImageURL:    params.ImageURL,
		Notes:       "Initial idea: " + params.Idea,
	}
}
