package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/task"
	"github.com/josephgoksu/horizon/internal/util"
)

// Table renders data in a compact markdown-style table format.
// Widths are measured in terminal cells, so cells may carry ANSI styling.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
}

// ColumnWidths calculates optimal column widths based on content.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))

	for i, h := range t.Headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if w := ansi.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	if t.MaxWidth > 0 {
		for i := range widths {
			widths[i] = min(widths[i], t.MaxWidth)
		}
	}
	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var headerCells []string
	for i, h := range t.Headers {
		headerCells = append(headerCells, headerStyle.Render(padRight(h, widths[i])))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	var sepParts []string
	for _, w := range widths {
		sepParts = append(sepParts, dimStyle.Render(strings.Repeat("─", w)))
	}
	sb.WriteString(" " + strings.Join(sepParts, "──") + "\n")

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if ansi.StringWidth(val) > widths[i] {
				val = ansi.Truncate(val, widths[i], "…")
			}
			cells = append(cells, padRight(val, widths[i]))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// padRight pads a string to the specified display width.
func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ShortIDLen covers the millisecond timestamp of a v7 project id.
const ShortIDLen = 13

// TruncateID shortens an ID for display. The result is accepted back as a
// prefix by the project store.
func TruncateID(id string) string {
	return util.ShortID(id, ShortIDLen)
}

// ProjectTable lays out projects as ID, title, status, progress and tags.
func ProjectTable(projects []project.Project) *Table {
	t := &Table{
		Headers:  []string{"ID", "Title", "Status", "Progress", "Tags"},
		MaxWidth: 40,
	}
	for _, p := range projects {
		t.Rows = append(t.Rows, []string{
			TruncateID(p.ID),
			p.Title,
			p.Status.Label(),
			fmt.Sprintf("%d/%d", task.CompletedCount(p.Tasks), len(p.Tasks)),
			FormatTags(p.Tags, 3),
		})
	}
	return t
}

// FormatTags renders up to limit tags as "#a #b"; limit <= 0 shows all.
func FormatTags(tags []string, limit int) string {
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag
	}
	return strings.Join(parts, " ")
}
