package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Name", "Status"},
		Rows: [][]string{
			{"abc123", "First item", "active"},
			{"def456", "Second item with longer name", "pending"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 6, widths[0])
	assert.Equal(t, 28, widths[1])
	assert.Equal(t, 7, widths[2])
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Description"},
		Rows:     [][]string{{"a", "This is a very long description that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_ColumnWidths_IgnoresStyling(t *testing.T) {
	table := &Table{
		Headers: []string{"S"},
		Rows:    [][]string{{"\x1b[31mStuck\x1b[0m"}},
	}
	assert.Equal(t, 5, table.ColumnWidths()[0])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"1", "Alice"}, {"2", "Bob"}},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "Bob")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	assert.Empty(t, (&Table{}).Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}
	assert.Contains(t, table.Render(), "…")
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Name", "Status"},
		Rows:    [][]string{{"1", "Alice"}},
	}

	output := table.Render()

	assert.Contains(t, output, "Alice")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 3)
}

func TestTruncateID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0192aaaa-0000-7000-8000-000000000001", "0192aaaa-0000"},
		{"short", "short"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, TruncateID(tc.input))
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
		{"né", 3, "né "},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}

func TestProjectTable(t *testing.T) {
	p := project.New("0192aaaa-0000-7000-8000-000000000001", project.Params{
		Title: "SmartMirror Hub",
		Tags:  []string{"IoT", "RaspberryPi", "Hardware", "Extra"},
		Tasks: []task.Draft{{Title: "a"}, {Title: "b"}, {Title: "c"}},
	}, time.Now())
	p.Tasks[1].IsCompleted = true

	table := ProjectTable([]project.Project{p})

	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"0192aaaa-0000", "SmartMirror Hub", "Planning", "1/3", "#IoT #RaspberryPi #Hardware"}, table.Rows[0])
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "", FormatTags(nil, 3))
	assert.Equal(t, "#a #b", FormatTags([]string{"a", "b"}, 0))
	assert.Equal(t, "#a", FormatTags([]string{"a", "b"}, 1))
}
