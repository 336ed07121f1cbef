package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/mark3labs/promptdiff/internal/version"
)

// VersionPicker displays the catalog in a compact list with a cursor.
// Options that would invert the comparison are disabled but still shown.
type VersionPicker struct {
	title        string
	options      version.Catalog
	selected     string
	cursor       int
	scrollOffset int
	width        int
	height       int
	focused      bool

	// disabled reports whether picking the label would make from > to.
	disabled func(label string) bool
}

// NewVersionPicker creates a picker component.
func NewVersionPicker(title string, disabled func(string) bool) *VersionPicker {
	return &VersionPicker{title: title, disabled: disabled}
}

// SetOptions replaces the option list and clamps the cursor.
func (p *VersionPicker) SetOptions(options version.Catalog) {
	p.options = options
	if p.cursor >= len(options) {
		p.cursor = len(options) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// SetSelected moves the selection marker and the cursor to the label.
func (p *VersionPicker) SetSelected(label string) {
	p.selected = label
	for i, opt := range p.options {
		if opt == label {
			p.cursor = i
			p.adjustScroll()
			return
		}
	}
}

// Selected returns the currently applied label.
func (p *VersionPicker) Selected() string {
	return p.selected
}

// Update handles keyboard input when focused. It returns the label the
// user committed with enter, or "" when nothing was committed.
func (p *VersionPicker) Update(msg tea.Msg) (picked string) {
	if !p.focused {
		return ""
	}
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return ""
	}

	maxIndex := len(p.options) - 1
	if maxIndex < 0 {
		return ""
	}

	switch key.String() {
	case "j", "down":
		if p.cursor < maxIndex {
			p.cursor++
			p.adjustScroll()
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
			p.adjustScroll()
		}
	case "g":
		p.cursor = 0
		p.scrollOffset = 0
	case "G":
		p.cursor = maxIndex
		p.adjustScroll()
	case "enter":
		label := p.options[p.cursor]
		if p.disabled != nil && p.disabled(label) {
			return ""
		}
		p.selected = label
		return label
	}
	return ""
}

// adjustScroll keeps the cursor inside the visible window.
func (p *VersionPicker) adjustScroll() {
	// Each option is 1 line, reserve 3 for header and borders
	visibleLines := p.height - 3
	if visibleLines < 1 {
		visibleLines = 1
	}

	if p.cursor >= p.scrollOffset+visibleLines {
		p.scrollOffset = p.cursor - visibleLines + 1
	} else if p.cursor < p.scrollOffset {
		p.scrollOffset = p.cursor
	}
}

// Render returns the picker view as a string.
func (p *VersionPicker) Render() string {
	if p.width < 10 || p.height < 4 {
		return ""
	}

	header := stylePickerHeader.Width(p.width - 2).Render(p.title)

	visibleLines := p.height - 3
	if visibleLines < 1 {
		visibleLines = 1
	}

	var lines []string
	for i, opt := range p.options {
		if i < p.scrollOffset {
			continue
		}
		if len(lines) >= visibleLines {
			break
		}
		lines = append(lines, p.renderOption(opt, i == p.cursor))
	}
	if len(lines) == 0 {
		lines = append(lines, styleDim.Render("  no versions"))
	}
	for len(lines) < visibleLines {
		lines = append(lines, "")
	}

	content := header + "\n" + strings.Join(lines, "\n")
	border := stylePickerBorder
	if p.focused {
		border = border.BorderForeground(colorPrimary)
	}
	return border.Width(p.width - 2).Render(content)
}

func (p *VersionPicker) renderOption(label string, underCursor bool) string {
	marker := " "
	if label == p.selected {
		marker = "✓"
	}

	text := label
	maxWidth := p.width - 8
	if maxWidth >= 4 && lipgloss.Width(text) > maxWidth {
		text = truncateLabel(text, maxWidth-3) + "..."
	}

	switch {
	case p.disabled != nil && p.disabled(label):
		text = stylePickerDisabled.Render(text)
	case label == p.selected:
		text = stylePickerSelected.Render(text)
	}

	cursor := " "
	if underCursor && p.focused {
		cursor = stylePickerCursor.Render("›")
	}
	return fmt.Sprintf(" %s %s %s", cursor, marker, text)
}

// truncateLabel cuts a label to at most width terminal cells without
// splitting a multi-byte rune.
func truncateLabel(label string, width int) string {
	runes := []rune(label)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}

// SetFocused sets whether the picker has keyboard focus.
func (p *VersionPicker) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether the picker has keyboard focus.
func (p *VersionPicker) IsFocused() bool {
	return p.focused
}

// UpdateSize updates the picker dimensions.
func (p *VersionPicker) UpdateSize(width, height int) {
	p.width = width
	p.height = height
	p.adjustScroll()
}
