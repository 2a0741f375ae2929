// Package ui styles tix terminal output: status colours in lists and
// ticket views, and the labels on error and hint lines. All styling goes
// through lipgloss, so ApplyColorProfile decides whether any escape codes
// are emitted at all.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tixcli/tix/internal/types"
)

// Ayu palette, adaptive to light and dark terminals.
var (
	ColorDone   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	warnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	failStyle   = lipgloss.NewStyle().Foreground(ColorFail).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	accentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	boldStyle   = lipgloss.NewStyle().Bold(true)

	// statusStyles follows the workflow: TODO muted, PROGRESS yellow,
	// DONE green.
	statusStyles = map[types.Status]lipgloss.Style{
		types.StatusTodo:     mutedStyle,
		types.StatusProgress: warnStyle,
		types.StatusDone:     lipgloss.NewStyle().Foreground(ColorDone),
	}
)

// RenderWarn styles hint and warning labels.
func RenderWarn(s string) string {
	return warnStyle.Render(s)
}

// RenderFail styles the label on fatal error lines.
func RenderFail(s string) string {
	return failStyle.Render(s)
}

// RenderMuted styles secondary text such as table rules.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}

// RenderAccent styles ticket ids.
func RenderAccent(s string) string {
	return accentStyle.Render(s)
}

// RenderBold styles headers and titles.
func RenderBold(s string) string {
	return boldStyle.Render(s)
}

// RenderStatus colours a status by workflow position. Unknown values are
// printed unstyled.
func RenderStatus(s types.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}
