package mcp

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/horizon/internal/chat"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/research"
	"github.com/josephgoksu/horizon/internal/task"
)

// FormatProject converts a Project into concise Markdown. The cover image is
// omitted.
func FormatProject(p *project.Project) string {
	if p == nil {
		return "No project information."
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s\n", p.Title))
	sb.WriteString(fmt.Sprintf("**ID**: `%s` | **Status**: %s | **Created**: %s\n\n",
		p.ID, p.Status.Label(), p.CreatedAt.Format("2006-01-02")))

	if p.Description != "" {
		sb.WriteString(p.Description + "\n\n")
	}
	if len(p.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags**: %s\n\n", strings.Join(p.Tags, ", ")))
	}

	if len(p.Tasks) > 0 {
		sb.WriteString("### Tasks\n")
		for _, t := range p.Tasks {
			sb.WriteString(formatTaskLine(t) + "\n")
		}
		sb.WriteString(fmt.Sprintf("\n**Progress**: %d/%d tasks completed\n\n", task.CompletedCount(p.Tasks), len(p.Tasks)))
	}

	if p.Notes != "" {
		sb.WriteString("### Notes\n" + p.Notes + "\n")
	}

	return strings.TrimSpace(sb.String())
}

func formatTaskLine(t task.Task) string {
	checkbox := "[ ]"
	if t.IsCompleted {
		checkbox = "[x]"
	}
	line := fmt.Sprintf("- %s `%s` %s (%s", checkbox, t.ID, t.Title, t.Category)
	if t.EstimatedTime != "" {
		line += ", " + t.EstimatedTime
	}
	return line + ")"
}

// FormatProjectList renders one line per project, newest first.
func FormatProjectList(projects []project.Project) string {
	if len(projects) == 0 {
		return "No projects yet. Use create_project to plan an idea."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Projects (%d)\n", len(projects)))
	for _, p := range projects {
		sb.WriteString(fmt.Sprintf("- `%s` **%s** | %s | %d/%d tasks\n",
			p.ID, p.Title, p.Status.Label(), task.CompletedCount(p.Tasks), len(p.Tasks)))
	}
	return strings.TrimSpace(sb.String())
}

// FormatToggle reports the new state of a toggled task.
func FormatToggle(p *project.Project, taskID string, found bool) string {
	if p == nil {
		return "No project information."
	}
	if !found {
		return fmt.Sprintf("No task `%s` in **%s**. Nothing changed.", taskID, p.Title)
	}
	t, _ := task.Find(p.Tasks, taskID)
	state := "open"
	if t.IsCompleted {
		state = "done"
	}
	return fmt.Sprintf("Task `%s` %s is now **%s**.\n\n**Progress**: %d/%d tasks completed",
		t.ID, t.Title, state, task.CompletedCount(p.Tasks), len(p.Tasks))
}

// FormatResearch converts a research result into a summary plus numbered sources.
func FormatResearch(res *research.Result) string {
	if res == nil {
		return "No results found."
	}

	var sb strings.Builder
	sb.WriteString(res.Text)
	if len(res.Links) > 0 {
		sb.WriteString("\n\n### Sources\n")
		for i, l := range res.Links {
			sb.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, l.Title, l.URI))
		}
	}
	return strings.TrimSpace(sb.String())
}

// FormatChatReply returns the text of the last model message, which is either
// the completed reply or the fixed error text.
func FormatChatReply(msgs []chat.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == chat.RoleModel {
			return msgs[i].Text
		}
	}
	return "No reply."
}

// FormatError returns a Markdown error for tool failures.
func FormatError(message string) string {
	return fmt.Sprintf("## Error\n\n**Details**: %s", message)
}

// FormatValidationError returns a Markdown error for validation failures.
func FormatValidationError(field, message string) string {
	return fmt.Sprintf("## Validation Error\n\n**Field**: `%s`\n**Details**: %s", field, message)
}
