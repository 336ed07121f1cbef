// Package diffview renders a read-only, soft-wrapped diff between two
// prompt documents. It is the embedded "widget" of the tool: it computes
// nothing about versions or fetching, it only owns the two content models
// and their rendering.
//
// At most one Session is alive at a time and its owner controls the
// lifecycle: models are replaced as a pair on every selection change and
// everything is released on Close. Using a closed session is an error.
package diffview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/aymanbagabas/go-udiff"

	"github.com/mark3labs/promptdiff/internal/errors"
)

// DefaultBreakpoint is the width in columns at or above which the diff
// renders side by side. Below it the view stacks into a unified list.
const DefaultBreakpoint = 120

// Config is the fixed widget configuration. The view is always
// read-only with soft line wrapping; only the layout thresholds vary.
type Config struct {
	Breakpoint   int // side-by-side width threshold, columns
	ContextLines int // unchanged lines shown around each hunk
}

// Document is one content model: a version label and its raw prompt
// text. Disposing a document releases its text; a disposed document must
// not be handed to a session again.
type Document struct {
	Version  string
	text     string
	disposed bool
}

// NewDocument creates a content model for a version's prompt text.
func NewDocument(version, text string) *Document {
	return &Document{Version: version, text: text}
}

// Dispose releases the document's content.
func (d *Document) Dispose() {
	d.text = ""
	d.disposed = true
}

// Disposed reports whether the document has been released.
func (d *Document) Disposed() bool {
	return d.disposed
}

// Text returns the document content. Empty after Dispose.
func (d *Document) Text() string {
	return d.text
}

// Session is the live diff widget instance.
type Session struct {
	cfg        Config
	from, to   *Document
	rows       []row
	width      int
	height     int
	sideBySide bool
	closed     bool
}

// NewSession creates a widget instance. The instance is reused across
// selection changes; only its models are replaced.
func NewSession(cfg Config) *Session {
	if cfg.Breakpoint <= 0 {
		cfg.Breakpoint = DefaultBreakpoint
	}
	if cfg.ContextLines <= 0 {
		cfg.ContextLines = udiff.DefaultContextLines
	}
	return &Session{cfg: cfg, width: cfg.Breakpoint}
}

// SetDocuments installs a fresh pair of content models, disposing the
// previous pair. Stale models must not leak: after this call the old
// documents are released regardless of the outcome.
func (s *Session) SetDocuments(from, to *Document) error {
	if s.closed {
		return errors.ErrSessionClosed
	}
	if from == nil || to == nil || from.Disposed() || to.Disposed() {
		return fmt.Errorf("%w: diff session needs two live documents", errors.ErrInvalidInput)
	}

	if s.from != nil {
		s.from.Dispose()
	}
	if s.to != nil {
		s.to.Dispose()
	}
	s.from, s.to = from, to

	rows, err := buildRows(from.Text(), to.Text(), s.cfg.ContextLines)
	if err != nil {
		s.rows = nil
		return fmt.Errorf("failed to compute diff: %w", err)
	}
	s.rows = rows
	return nil
}

// Documents returns the current model pair. Both are nil before the
// first SetDocuments and after Close.
func (s *Session) Documents() (from, to *Document) {
	return s.from, s.to
}

// Layout updates the viewport dimensions and recomputes the rendering
// mode against the configured breakpoint.
func (s *Session) Layout(width, height int) {
	if s.closed {
		return
	}
	s.width = width
	s.height = height
	s.sideBySide = width >= s.cfg.Breakpoint
}

// SideBySide reports whether the current layout renders two columns.
func (s *Session) SideBySide() bool {
	return s.sideBySide
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	return s.closed
}

// Close tears the widget down and releases both models. Idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	if s.from != nil {
		s.from.Dispose()
	}
	if s.to != nil {
		s.to.Dispose()
	}
	s.from, s.to = nil, nil
	s.rows = nil
	s.closed = true
}

// Render produces the full diff view for the current layout. The caller
// scrolls it; the session itself has no scroll state.
func (s *Session) Render() (string, error) {
	if s.closed {
		return "", errors.ErrSessionClosed
	}
	if s.from == nil || s.to == nil {
		return "", nil
	}
	if len(s.rows) == 0 {
		notice := fmt.Sprintf("No differences between %s and %s", s.from.Version, s.to.Version)
		return styleEmptyDiff.Render(notice), nil
	}
	if s.sideBySide {
		return s.renderSideBySide(), nil
	}
	return s.renderStacked(), nil
}

// renderSideBySide renders aligned old/new columns.
func (s *Session) renderSideBySide() string {
	colWidth := (s.width - 1) / 2
	textWidth := colWidth - lineNoWidth - 2
	if textWidth < 10 {
		textWidth = 10
	}

	var b strings.Builder
	for i, r := range s.rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		if r.kind == rowHunkHeader {
			b.WriteString(s.renderHunkHeader())
			continue
		}

		leftStyle, rightStyle := styleDiffContext, styleDiffContext
		switch r.kind {
		case rowDelete:
			leftStyle = styleDiffDelete
		case rowAdd:
			rightStyle = styleDiffAdd
		case rowChange:
			leftStyle, rightStyle = styleDiffDelete, styleDiffAdd
		}

		left := renderCell(r.oldLine, r.oldText, leftStyle, textWidth)
		right := renderCell(r.newLine, r.newText, rightStyle, textWidth)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, styleGutter.Render("│"), right))
	}
	return b.String()
}

// renderStacked renders a unified single-column view; change rows expand
// into a deletion line followed by an insertion line.
func (s *Session) renderStacked() string {
	textWidth := s.width - lineNoWidth - 3
	if textWidth < 10 {
		textWidth = 10
	}

	var lines []string
	for _, r := range s.rows {
		switch r.kind {
		case rowHunkHeader:
			lines = append(lines, s.renderHunkHeader())
		case rowContext:
			lines = append(lines, renderLine(r.oldLine, " ", r.oldText, styleDiffContext, textWidth))
		case rowDelete:
			lines = append(lines, renderLine(r.oldLine, "-", r.oldText, styleDiffDelete, textWidth))
		case rowAdd:
			lines = append(lines, renderLine(r.newLine, "+", r.newText, styleDiffAdd, textWidth))
		case rowChange:
			lines = append(lines, renderLine(r.oldLine, "-", r.oldText, styleDiffDelete, textWidth))
			lines = append(lines, renderLine(r.newLine, "+", r.newText, styleDiffAdd, textWidth))
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Session) renderHunkHeader() string {
	width := s.width
	if width < 4 {
		width = 4
	}
	return styleHunkHeader.Render(strings.Repeat("·", width))
}

const lineNoWidth = 4

// renderCell renders one side of a side-by-side row with soft wrapping.
func renderCell(lineNo int, text string, style lipgloss.Style, textWidth int) string {
	num := ""
	if lineNo > 0 {
		num = fmt.Sprintf("%*d", lineNoWidth, lineNo)
	} else {
		num = strings.Repeat(" ", lineNoWidth)
	}
	body := style.Width(textWidth).Render(text)
	return lipgloss.JoinHorizontal(lipgloss.Top, styleLineNo.Render(num+" "), body)
}

// renderLine renders one stacked row with marker and soft wrapping.
func renderLine(lineNo int, marker, text string, style lipgloss.Style, textWidth int) string {
	num := fmt.Sprintf("%*d", lineNoWidth, lineNo)
	body := style.Width(textWidth).Render(text)
	return lipgloss.JoinHorizontal(lipgloss.Top, styleLineNo.Render(num+" "), style.Render(marker+" "), body)
}

// Unified returns a plain unified diff between two prompt texts, for
// non-interactive output.
func Unified(fromVersion, toVersion, before, after string) string {
	return udiff.Unified("prompts-"+fromVersion+".md", "prompts-"+toVersion+".md", before, after)
}
