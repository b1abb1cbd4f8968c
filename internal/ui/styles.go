package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/josephgoksu/horizon/internal/project"
	"github.com/josephgoksu/horizon/internal/task"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")
	ColorBlue      = lipgloss.Color("75")
	ColorPurple    = lipgloss.Color("141")

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)

	// Input Box Style for textarea border
	StyleInputBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSecondary).
			Padding(0, 1)

	// Focused input
	StyleReadyBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(0, 1)

	// Modal for the create flow
	StyleModal = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	StyleTabActive   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Underline(true).Padding(0, 1)
	StyleTabInactive = lipgloss.NewStyle().Foreground(ColorSecondary).Padding(0, 1)

	StyleSelected = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleTag      = lipgloss.NewStyle().Foreground(ColorCyan)
	StyleLink     = lipgloss.NewStyle().Foreground(ColorBlue).Underline(true)

	// Semantic Prefix Styles
	StylePrefixDone  = lipgloss.NewStyle().Foreground(ColorSuccess)
	StylePrefixError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePrefixAgent = lipgloss.NewStyle().Foreground(ColorPrimary) // model replies
	StylePrefixUser  = lipgloss.NewStyle().Foreground(ColorSuccess)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// StatusColor returns the badge color for a project status.
func StatusColor(s project.Status) lipgloss.Color {
	switch s {
	case project.StatusIdea:
		return ColorSecondary
	case project.StatusPlanning:
		return ColorBlue
	case project.StatusInProgress:
		return ColorWarning
	case project.StatusCompleted:
		return ColorSuccess
	case project.StatusStuck:
		return ColorError
	default:
		return ColorText
	}
}

// StatusBadge renders a status as a colored label, e.g. "● In Progress".
func StatusBadge(s project.Status) string {
	return lipgloss.NewStyle().Foreground(StatusColor(s)).Render("● " + s.Label())
}

// CategoryColor returns the color used for a task category label.
func CategoryColor(c task.Category) lipgloss.Color {
	switch c {
	case task.CategoryResearch:
		return ColorCyan
	case task.CategoryDevelopment:
		return ColorBlue
	case task.CategoryDesign:
		return ColorPurple
	case task.CategoryMarketing:
		return ColorWarning
	default:
		return ColorSecondary
	}
}
