package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Footer renders the bottom footer bar with navigation hints.
type Footer struct {
	width   int
	compact bool
}

// NewFooter creates a new Footer component.
func NewFooter() *Footer {
	return &Footer{}
}

// SetSize updates the footer width.
func (f *Footer) SetSize(width int) {
	f.width = width
}

// SetCompact switches to the condensed hint set for narrow terminals.
func (f *Footer) SetCompact(compact bool) {
	f.compact = compact
}

// Render returns the footer bar as a single line.
func (f *Footer) Render() string {
	hints := []struct {
		key, label string
	}{
		{"tab", "Focus"},
		{"j/k", "Move"},
		{"enter", "Select"},
		{"o", "Open"},
		{"r", "Reload"},
		{"q", "Quit"},
	}

	var parts []string
	for _, h := range hints {
		parts = append(parts, styleFooterKey.Render("["+h.key+"]")+" "+styleFooterLabel.Render(h.label))
	}
	content := strings.Join(parts, "  ")

	if f.compact || lipgloss.Width(content) > f.width {
		content = styleFooterKey.Render("[tab]") + " " +
			styleFooterKey.Render("[enter]") + " " +
			styleFooterKey.Render("[q]")
	}
	return styleFooter.Width(f.width).Render(" " + content)
}
