package tui

import "charm.land/lipgloss/v2"

// Theme colors (catppuccin mocha)
var (
	colorPrimary   = lipgloss.Color("#cba6f7") // Mauve
	colorSecondary = lipgloss.Color("#89b4fa") // Blue
	colorMuted     = lipgloss.Color("#a6adc8") // Subtext0
	colorBase      = lipgloss.Color("#cdd6f4") // Text
	colorSuccess   = lipgloss.Color("#a6e3a1") // Green
	colorWarning   = lipgloss.Color("#f9e2af") // Yellow
	colorError     = lipgloss.Color("#f38ba8") // Red
	colorSurface   = lipgloss.Color("#585b70") // Surface2
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleShareLink = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleStatusMessage = lipgloss.NewStyle().
				Foreground(colorBase)

	styleErrorMessage = lipgloss.NewStyle().
				Foreground(colorError).
				Bold(true)

	styleLogsLink = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Underline(true)

	styleBanner = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true).
			PaddingLeft(1)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterLabel = lipgloss.NewStyle().
				Foreground(colorMuted)

	stylePickerBorder = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(colorSurface)

	stylePickerHeader = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				PaddingLeft(1)

	stylePickerSelected = lipgloss.NewStyle().
				Foreground(colorSuccess)

	stylePickerCursor = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	stylePickerDisabled = lipgloss.NewStyle().
				Foreground(colorSurface).
				Strikethrough(true)
)
