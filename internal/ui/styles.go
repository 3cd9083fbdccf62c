package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	colorRed    = lipgloss.Color("#FF0000")
	colorGreen  = lipgloss.Color("#00FF00")
	colorYellow = lipgloss.Color("#FFFF00")
	colorCyan   = lipgloss.Color("#00FFFF")
	colorGray   = lipgloss.Color("#666666")
	colorWhite  = lipgloss.Color("#FFFFFF")
)

// Base styles reused by the views.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	userTurnStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	systemTurnStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	citationStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	onlineBadgeStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	offlineBadgeStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	recordingDotStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)

	busyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	footerDescStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)
)
