package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"charm.land/lipgloss/v2"

	"github.com/mark3labs/promptdiff/internal/version"
)

func TestPickerTruncatesWideLabels(t *testing.T) {
	p := NewVersionPicker("From", nil)
	p.SetOptions(version.Catalog{"1.0.0-リリース候補"})
	p.UpdateSize(14, 10)

	out := p.renderOption("1.0.0-リリース候補", false)
	if !strings.Contains(out, "...") {
		t.Errorf("expected ellipsis in truncated option: %q", out)
	}
	if !utf8.ValidString(out) {
		t.Errorf("truncation split a rune: %q", out)
	}
	if got := lipgloss.Width(out); got > p.width {
		t.Errorf("option width: got %d, want <= %d", got, p.width)
	}
}

func TestPickerKeepsShortLabelsIntact(t *testing.T) {
	p := NewVersionPicker("From", nil)
	p.UpdateSize(26, 10)

	out := p.renderOption("1.0.0", false)
	if !strings.Contains(out, "1.0.0") || strings.Contains(out, "...") {
		t.Errorf("short label should render untouched: %q", out)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width int
		want  string
	}{
		{"1.0.0", 5, "1.0.0"},
		{"1.0.0-beta", 5, "1.0.0"},
		{"リリース", 5, "リリ"},
		{"リリース", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateLabel(tt.label, tt.width); got != tt.want {
			t.Errorf("truncateLabel(%q, %d): got %q, want %q", tt.label, tt.width, got, tt.want)
		}
	}
}
