package diffview

import "charm.land/lipgloss/v2"

// Catppuccin Mocha.
var (
	colorAdd       = lipgloss.Color("#a6e3a1") // Green
	colorDelete    = lipgloss.Color("#f38ba8") // Red
	colorAddBg     = lipgloss.Color("#2d3d2e")
	colorDeleteBg  = lipgloss.Color("#3d2d33")
	colorLineNo    = lipgloss.Color("#585b70") // Surface2
	colorHunk      = lipgloss.Color("#45475a") // Surface1
	colorNoticeTxt = lipgloss.Color("#a6adc8") // Subtext0

	styleDiffContext = lipgloss.NewStyle()
	styleDiffAdd     = lipgloss.NewStyle().Foreground(colorAdd).Background(colorAddBg)
	styleDiffDelete  = lipgloss.NewStyle().Foreground(colorDelete).Background(colorDeleteBg)
	styleLineNo      = lipgloss.NewStyle().Foreground(colorLineNo)
	styleGutter      = lipgloss.NewStyle().Foreground(colorHunk)
	styleHunkHeader  = lipgloss.NewStyle().Foreground(colorHunk)
	styleEmptyDiff   = lipgloss.NewStyle().Foreground(colorNoticeTxt).Italic(true).Padding(1, 2)
)
