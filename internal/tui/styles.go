package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#7D56F4")
	orange = lipgloss.Color("#F5A524")
	green  = lipgloss.Color("#04B575")
	gray   = lipgloss.Color("#888888")

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1)

	// Label column of the summary
	LabelStyle = lipgloss.NewStyle().
			Foreground(gray).
			Width(22)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(orange)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	// Subtle text styling
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// NewHuhTheme returns the charm theme with the orange/accent palette used by
// the rest of the output.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeCharm()

	t.Focused.Title = t.Focused.Title.Foreground(orange).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(gray)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(gray).
		Background(lipgloss.Color("#2A2A2A"))
	t.Blurred.Title = t.Blurred.Title.Foreground(gray)

	return t
}
