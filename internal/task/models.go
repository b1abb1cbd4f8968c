// Package task models the tasks of a project plan and the board operations on them.
package task

import (
	"fmt"
	"strings"
)

// Category classifies a task. The set mirrors the enum sent to the plan provider.
type Category string

const (
	CategoryResearch    Category = "Research"
	CategoryDevelopment Category = "Development"
	CategoryDesign      Category = "Design"
	CategoryMarketing   Category = "Marketing"
	CategoryOther       Category = "Other"
)

// Categories lists every category in schema order.
var Categories = []Category{
	CategoryResearch,
	CategoryDevelopment,
	CategoryDesign,
	CategoryMarketing,
	CategoryOther,
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Task is a single step of a project plan. Tasks are owned by their project.
type Task struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description" yaml:"description"`
	Category      Category `json:"category" yaml:"category"`
	EstimatedTime string   `json:"estimatedTime,omitempty" yaml:"estimatedTime,omitempty"`
	IsCompleted   bool     `json:"isCompleted" yaml:"isCompleted"`
}

// Draft is a task as produced by plan generation, before it has an identity.
type Draft struct {
	Title         string
	Description   string
	Category      Category
	EstimatedTime string
}

// IDForIndex returns the generation-time id of the task at index i.
func IDForIndex(i int) string {
	return fmt.Sprintf("task-%d", i)
}

// FromDrafts assigns ids in generation order. Every task starts incomplete.
func FromDrafts(drafts []Draft) []Task {
	tasks := make([]Task, 0, len(drafts))
	for i, d := range drafts {
		tasks = append(tasks, Task{
			ID:            IDForIndex(i),
			Title:         d.Title,
			Description:   d.Description,
			Category:      d.Category,
			EstimatedTime: d.EstimatedTime,
		})
	}
	return tasks
}

// Validate checks if the task has all required fields and valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("task id required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("invalid task category: %q", t.Category)
	}
	return nil
}
