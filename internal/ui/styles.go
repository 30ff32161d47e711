package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan: headings
	colorAccent  = lipgloss.Color("#FFD700") // Gold: warnings
	colorSuccess = lipgloss.Color("#00E676") // Green: written files
	colorDanger  = lipgloss.Color("#FF5252") // Red: errors
	colorMuted   = lipgloss.Color("#8C8C8C") // Gray: labels
)

// Status icons.
const (
	iconDone = "✓"
	iconWarn = "⚠"
	iconFail = "✗"
	iconItem = "·"
)

// styles is bound to one renderer so color support follows the writer.
type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	danger  lipgloss.Style
	box     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Foreground(colorPrimary).Bold(true),
		heading: r.NewStyle().Foreground(colorPrimary).Bold(true).MarginTop(1),
		label:   r.NewStyle().Foreground(colorMuted).Width(20),
		value:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		success: r.NewStyle().Foreground(colorSuccess),
		warn:    r.NewStyle().Foreground(colorAccent),
		danger:  r.NewStyle().Foreground(colorDanger).Bold(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),
	}
}
