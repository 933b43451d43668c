package ui

import (
	"github.com/arthur-debert/svcgen/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"}
	warningColor = lipgloss.AdaptiveColor{Light: "#EF6C00", Dark: "#FFB74D"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"}
	accentColor  = lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"}
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor).MarginBottom(1)
	createdStyle = lipgloss.NewStyle().Foreground(successColor).Width(12)
	overStyle    = lipgloss.NewStyle().Foreground(warningColor).Width(12)
	skippedStyle = lipgloss.NewStyle().Foreground(mutedColor).Width(12)
	pathStyle    = lipgloss.NewStyle()
	dirStyle     = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)

func kindStyle(k types.EntryKind) lipgloss.Style {
	switch k {
	case types.EntryCreated:
		return createdStyle
	case types.EntryOverwritten:
		return overStyle
	default:
		return skippedStyle
	}
}
