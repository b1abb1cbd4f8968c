package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/horizon/internal/chat"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/research"
	"github.com/josephgoksu/horizon/internal/task"
)

const (
	checkDone  = "✓"
	checkOpen  = "○"
	cursorMark = "›"
)

// RenderProjectCard renders one dashboard entry: title, status, progress and
// the first three tags.
func RenderProjectCard(p project.Project, selected bool, width int) string {
	title := StyleTitle.Render(p.Title)
	marker := "  "
	if selected {
		title = StyleSelected.Render(p.Title)
		marker = StyleSelected.Render(cursorMark + " ")
	}

	var b strings.Builder
	b.WriteString(marker + title + "  " + StatusBadge(p.Status) + "\n")
	if desc := Truncate(p.Description, max(width-4, 20)); desc != "" {
		b.WriteString("    " + StyleSubtle.Render(desc) + "\n")
	}
	b.WriteString("    " + ProgressBar(p.Progress(), 20))
	if tags := FormatTags(p.Tags, 3); tags != "" {
		b.WriteString("  " + StyleTag.Render(tags))
	}
	return b.String()
}

// RenderDashboard renders the project list, or a hint when it is empty.
func RenderDashboard(projects []project.Project, cursor, width int) string {
	if len(projects) == 0 {
		return StyleSubtle.Render("No projects yet. Press [n] to turn an idea into a plan.")
	}
	cards := make([]string, len(projects))
	for i, p := range projects {
		cards[i] = RenderProjectCard(p, i == cursor, width)
	}
	return strings.Join(cards, "\n\n")
}

// RenderTask renders a single board row.
func RenderTask(t task.Task, selected bool) string {
	check := StyleSubtle.Render(checkOpen)
	title := StyleText.Render(t.Title)
	if t.IsCompleted {
		check = StylePrefixDone.Render(checkDone)
		title = StyleSubtle.Strikethrough(true).Render(t.Title)
	}
	marker := "  "
	if selected {
		marker = StyleSelected.Render(cursorMark + " ")
	}

	line := marker + check + " " + title + "  " +
		lipgloss.NewStyle().Foreground(CategoryColor(t.Category)).Render("["+string(t.Category)+"]")
	if t.EstimatedTime != "" {
		line += " " + StyleSubtle.Render(t.EstimatedTime)
	}
	return line
}

// RenderBoard renders the task board with a completion header. The selected
// task's description is expanded beneath it.
func RenderBoard(tasks []task.Task, cursor, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n",
		StyleSectionTitle.Render("Tasks"),
		StyleSubtle.Render(fmt.Sprintf("%d of %d done", task.CompletedCount(tasks), len(tasks))))
	if len(tasks) == 0 {
		b.WriteString(StyleSubtle.Render("This plan has no tasks."))
		return b.String()
	}
	for i, t := range tasks {
		b.WriteString(RenderTask(t, i == cursor) + "\n")
		if i == cursor && t.Description != "" {
			for _, line := range strings.Split(WrapText(t.Description, max(width-6, 20)), "\n") {
				b.WriteString("      " + StyleSubtle.Render(line) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderChat renders the conversation. A streaming reply shows a cursor block.
func RenderChat(msgs []chat.Message, width int) string {
	wrap := max(width-4, 20)
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		prefix := StylePrefixAgent.Render("◆ Horizon")
		if m.Role == chat.RoleUser {
			prefix = StylePrefixUser.Render("▸ You")
		}
		text := m.Text
		if m.IsStreaming {
			text += "▌"
		}
		if m.Role == chat.RoleModel && m.Text == chat.ErrorText {
			text = StyleError.Render(text)
		}
		b.WriteString(prefix + "\n" + WrapText(text, wrap))
	}
	return b.String()
}

// RenderResearch renders a research summary followed by its sources.
func RenderResearch(res *research.Result, width int) string {
	if res == nil {
		return StyleSubtle.Render("Search for libraries, tools, or tutorials. Answers are grounded in Google Search.")
	}
	var b strings.Builder
	b.WriteString(WrapText(res.Text, max(width-2, 20)))
	if len(res.Links) > 0 {
		b.WriteString("\n\n" + StyleSectionTitle.Render("Sources") + "\n")
		for i, l := range res.Links {
			fmt.Fprintf(&b, "%2d. %s\n    %s\n", i+1, l.Title, StyleLink.Render(l.URI))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
