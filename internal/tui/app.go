package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/editor"

	"github.com/mark3labs/promptdiff/internal/catalog"
	"github.com/mark3labs/promptdiff/internal/config"
	"github.com/mark3labs/promptdiff/internal/diffview"
	"github.com/mark3labs/promptdiff/internal/errors"
	"github.com/mark3labs/promptdiff/internal/logger"
	"github.com/mark3labs/promptdiff/internal/selection"
	"github.com/mark3labs/promptdiff/internal/store"
	"github.com/mark3labs/promptdiff/internal/version"
)

// pageStatus gates what the main content area renders.
type pageStatus int

const (
	statusLoading pageStatus = iota
	statusError
	statusReady
)

// focusArea tracks which component receives keyboard input.
type focusArea int

const (
	focusFrom focusArea = iota
	focusTo
	focusDiff
)

// CatalogLoadedMsg carries the fetched version catalog plus any
// previously persisted selection for this data host.
type CatalogLoadedMsg struct {
	Versions version.Catalog
	Saved    selection.Selection
}

// CatalogFailedMsg is sent when the catalog could not be loaded.
type CatalogFailedMsg struct {
	Err error
}

// ContentLoadedMsg carries a fetched content pair. Generation ties the
// result to the selection change that requested it; stale generations
// are discarded.
type ContentLoadedMsg struct {
	Generation int
	Sel        selection.Selection
	Pair       catalog.Pair
}

// ContentFailedMsg is sent when either content fetch of a pair failed.
type ContentFailedMsg struct {
	Generation int
	Err        error
}

type bannerExpiredMsg struct {
	id int
}

type editorFinishedMsg struct {
	err error
}

const (
	sidebarWidth    = 26
	sidebarMinWidth = 72
	bannerTimeout   = 5 * time.Second
)

// App is the top-level BubbleTea model. It owns the catalog, the
// selection, the single live diff session, and the transitions between
// loading, error, and ready.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	client *catalog.Client
	store  *store.Store // nil disables persistence
	host   string
	params selection.Params

	status     pageStatus
	statusMsg  string
	serviceErr bool

	catalog  version.Catalog
	sel      selection.Selection
	shareURL string

	// generation stamps each selection change; fetch results carrying an
	// older stamp lost the race and are dropped.
	generation  int
	diff        *diffview.Session
	diffLoading bool
	hasDiff     bool
	lastPair    catalog.Pair

	banner   string
	bannerID int

	viewport viewport.Model
	vpReady  bool

	fromPicker *VersionPicker
	toPicker   *VersionPicker
	footer     *Footer
	spinner    Spinner

	focus          focusArea
	width          int
	height         int
	sidebarVisible bool
	quitting       bool
}

// NewApp creates the top-level model. The store may be nil, in which
// case selections are not persisted across runs.
func NewApp(ctx context.Context, cfg *config.Config, client *catalog.Client, st *store.Store, host string, params selection.Params) *App {
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		client:  client,
		store:   st,
		host:    host,
		params:  params,
		status:  statusLoading,
		diff:    diffview.NewSession(diffview.Config{Breakpoint: cfg.Breakpoint}),
		footer:  NewFooter(),
		spinner: NewDefaultSpinner(),
	}
	a.fromPicker = NewVersionPicker("From", func(label string) bool {
		return a.sel.To != "" && version.Compare(label, a.sel.To) > 0
	})
	a.toPicker = NewVersionPicker("To", func(label string) bool {
		return a.sel.From != "" && version.Compare(a.sel.From, label) > 0
	})
	a.fromPicker.SetFocused(true)
	return a
}

// Run starts the TUI and blocks until it exits.
func Run(ctx context.Context, cfg *config.Config, client *catalog.Client, st *store.Store, host string, params selection.Params) error {
	app := NewApp(ctx, cfg, client, st, host, params)
	p := tea.NewProgram(app, tea.WithContext(ctx))
	_, err := p.Run()
	app.diff.Close()
	if err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

// Init kicks off the catalog load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick(), a.loadCatalog())
}

// loadCatalog fetches the version catalog and the persisted selection.
func (a *App) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		versions, err := a.client.LoadVersions(a.ctx)
		if err != nil {
			return CatalogFailedMsg{Err: err}
		}
		msg := CatalogLoadedMsg{Versions: versions}
		if a.store != nil {
			saved, ok, err := a.store.LoadSelection(a.ctx, a.host)
			if err != nil {
				logger.Warn("failed to load saved selection: %v", err)
			} else if ok {
				msg.Saved = saved
			}
		}
		return msg
	}
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case spinner.TickMsg:
		if a.status == statusLoading || a.diffLoading {
			return a, a.spinner.Update(msg)
		}
		return a, nil

	case CatalogLoadedMsg:
		return a.handleCatalogLoaded(msg)

	case CatalogFailedMsg:
		a.status = statusError
		a.statusMsg = errors.UserMessage(msg.Err)
		var svc *errors.ServiceError
		a.serviceErr = stderrors.As(msg.Err, &svc)
		logger.Error("catalog load failed: %v", msg.Err)
		return a, nil

	case ContentLoadedMsg:
		return a.handleContentLoaded(msg)

	case ContentFailedMsg:
		return a.handleContentFailed(msg)

	case bannerExpiredMsg:
		if msg.id == a.bannerID {
			a.setBanner("")
		}
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			logger.Warn("editor exited with error: %v", msg.err)
		}
		return a, nil
	}

	if a.vpReady {
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleCatalogLoaded seeds the selection and requests the first pair.
func (a *App) handleCatalogLoaded(msg CatalogLoadedMsg) (tea.Model, tea.Cmd) {
	a.catalog = msg.Versions
	a.fromPicker.SetOptions(msg.Versions)
	a.toPicker.SetOptions(msg.Versions)

	sel := selection.Resolve(msg.Versions, a.params, msg.Saved)
	if !sel.Valid() {
		a.status = statusError
		a.statusMsg = errors.MsgVersionsFailed
		return a, nil
	}
	logger.Debug("catalog loaded: %d versions, selection %s..%s", len(msg.Versions), sel.From, sel.To)
	return a, a.applySelection(sel)
}

// applySelection installs a new selection, persists it, and issues the
// joined content fetch for it.
func (a *App) applySelection(sel selection.Selection) tea.Cmd {
	a.sel = sel
	a.generation++
	a.diffLoading = true
	a.setBanner("")
	if !a.hasDiff {
		a.status = statusLoading
	}
	a.shareURL = sel.ShareLink(a.cfg.DataURL)
	a.fromPicker.SetSelected(sel.From)
	a.toPicker.SetSelected(sel.To)

	gen := a.generation
	return tea.Batch(a.spinner.Tick(), func() tea.Msg {
		a.persistSelection(sel)
		pair, err := a.client.FetchPair(a.ctx, sel.From, sel.To)
		if err != nil {
			return ContentFailedMsg{Generation: gen, Err: err}
		}
		return ContentLoadedMsg{Generation: gen, Sel: sel, Pair: pair}
	})
}

// persistSelection mirrors the selection into the store so the next run
// on this host resumes where the user left off.
func (a *App) persistSelection(sel selection.Selection) {
	if a.store == nil {
		return
	}
	if err := a.store.SaveSelection(a.ctx, a.host, sel); err != nil {
		logger.Warn("failed to persist selection: %v", err)
	}
	if err := a.store.RecordEvent(a.ctx, store.Event{
		Host: a.host,
		Kind: store.EventSelect,
		From: sel.From,
		To:   sel.To,
	}); err != nil {
		logger.Warn("failed to record selection event: %v", err)
	}
}

// handleContentLoaded installs the fetched pair on the diff session.
func (a *App) handleContentLoaded(msg ContentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Generation != a.generation {
		logger.Debug("discarding stale content for %s..%s (generation %d, current %d)",
			msg.Sel.From, msg.Sel.To, msg.Generation, a.generation)
		return a, nil
	}

	from := diffview.NewDocument(msg.Sel.From, msg.Pair.From)
	to := diffview.NewDocument(msg.Sel.To, msg.Pair.To)
	if err := a.diff.SetDocuments(from, to); err != nil {
		logger.Error("failed to install documents: %v", err)
		a.status = statusError
		a.statusMsg = errors.MsgDiffFailed
		a.diffLoading = false
		return a, nil
	}

	a.lastPair = msg.Pair
	a.hasDiff = true
	a.diffLoading = false
	a.status = statusReady
	a.setBanner("")
	a.refreshDiffContent()

	var cmd tea.Cmd
	if a.store != nil {
		sel := msg.Sel
		cmd = func() tea.Msg {
			if err := a.store.RecordEvent(a.ctx, store.Event{
				Host: a.host,
				Kind: store.EventCompare,
				From: sel.From,
				To:   sel.To,
			}); err != nil {
				logger.Warn("failed to record compare event: %v", err)
			}
			return nil
		}
	}
	return a, cmd
}

// handleContentFailed surfaces a fetch failure without tearing down a
// working diff: once a pair has rendered, later failures only raise a
// transient banner.
func (a *App) handleContentFailed(msg ContentFailedMsg) (tea.Model, tea.Cmd) {
	if msg.Generation != a.generation {
		return a, nil
	}
	a.diffLoading = false
	logger.Error("content fetch failed: %v", msg.Err)

	// The command runs on another goroutine; a.sel may have moved on by
	// then, so record the selection that actually failed.
	sel := a.sel
	detail := msg.Err.Error()
	var record tea.Cmd
	if a.store != nil {
		record = func() tea.Msg {
			if err := a.store.RecordEvent(a.ctx, store.Event{
				Host:   a.host,
				Kind:   store.EventLoadError,
				From:   sel.From,
				To:     sel.To,
				Detail: detail,
			}); err != nil {
				logger.Warn("failed to record load error: %v", err)
			}
			return nil
		}
	}

	if a.hasDiff {
		a.setBanner(errors.MsgDiffFailed)
		a.bannerID++
		id := a.bannerID
		expire := tea.Tick(bannerTimeout, func(time.Time) tea.Msg {
			return bannerExpiredMsg{id: id}
		})
		return a, tea.Batch(expire, record)
	}

	a.status = statusError
	a.statusMsg = errors.UserMessage(msg.Err)
	return a, record
}

// handleKeyPress handles global keyboard input.
func (a *App) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		a.quitting = true
		a.diff.Close()
		return a, tea.Quit

	case "tab":
		a.cycleFocus()
		return a, nil

	case "r":
		a.status = statusLoading
		a.statusMsg = ""
		a.setBanner("")
		a.serviceErr = false
		return a, tea.Batch(a.spinner.Tick(), a.loadCatalog())

	case "o":
		return a, a.openInEditor()
	}

	switch a.focus {
	case focusFrom:
		if picked := a.fromPicker.Update(msg); picked != "" && picked != a.sel.From {
			return a, a.applySelection(selection.Selection{From: picked, To: a.sel.To})
		}
	case focusTo:
		if picked := a.toPicker.Update(msg); picked != "" && picked != a.sel.To {
			return a, a.applySelection(selection.Selection{From: a.sel.From, To: picked})
		}
	case focusDiff:
		if a.vpReady {
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

// cycleFocus rotates keyboard focus from -> to -> diff.
func (a *App) cycleFocus() {
	if !a.sidebarVisible {
		a.focus = focusDiff
	} else {
		a.focus = (a.focus + 1) % 3
	}
	a.fromPicker.SetFocused(a.focus == focusFrom)
	a.toPicker.SetFocused(a.focus == focusTo)
}

// openInEditor drops the newer side of the current pair into $EDITOR.
func (a *App) openInEditor() tea.Cmd {
	if !a.hasDiff {
		return nil
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("promptdiff-%s.md", a.sel.To))
	if err := os.WriteFile(path, []byte(a.lastPair.To), 0o600); err != nil {
		logger.Warn("failed to write editor file: %v", err)
		return nil
	}
	c, err := editor.Cmd("promptdiff", path)
	if err != nil {
		logger.Warn("no editor available: %v", err)
		return nil
	}
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// setBanner swaps the transient banner line. The banner takes a row
// from the main area, so every transition rebudgets the layout.
func (a *App) setBanner(text string) {
	if a.banner == text {
		return
	}
	a.banner = text
	if a.width > 0 && a.height > 0 {
		a.layout()
	}
}

// layout recomputes all component dimensions after a resize.
func (a *App) layout() {
	headerHeight := 2
	footerHeight := 1
	mainHeight := a.height - headerHeight - footerHeight
	if a.banner != "" {
		mainHeight--
	}
	if mainHeight < 1 {
		mainHeight = 1
	}

	a.sidebarVisible = a.width >= sidebarMinWidth
	sw := 0
	if a.sidebarVisible {
		sw = sidebarWidth
	} else if a.focus != focusDiff {
		a.focus = focusDiff
		a.fromPicker.SetFocused(false)
		a.toPicker.SetFocused(false)
	}

	pickerHeight := mainHeight / 2
	a.fromPicker.UpdateSize(sw, pickerHeight)
	a.toPicker.UpdateSize(sw, mainHeight-pickerHeight)
	a.footer.SetSize(a.width)
	a.footer.SetCompact(!a.sidebarVisible)

	contentWidth := a.width - sw
	if contentWidth < 1 {
		contentWidth = 1
	}
	a.diff.Layout(contentWidth, mainHeight)

	if !a.vpReady {
		a.viewport = viewport.New(
			viewport.WithWidth(contentWidth),
			viewport.WithHeight(mainHeight),
		)
		a.viewport.MouseWheelEnabled = true
		a.vpReady = true
	} else {
		a.viewport.SetWidth(contentWidth)
		a.viewport.SetHeight(mainHeight)
	}
	a.refreshDiffContent()
}

// refreshDiffContent re-renders the diff into the viewport.
func (a *App) refreshDiffContent() {
	if !a.vpReady || !a.hasDiff {
		return
	}
	out, err := a.diff.Render()
	if err != nil {
		logger.Error("diff render failed: %v", err)
		return
	}
	a.viewport.SetContent(out)
}

// View renders the full screen.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true

	if a.quitting || a.width < 1 || a.height < 1 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := a.renderLayout()

	canvas := uv.NewScreenBuffer(a.width, a.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderLayout composes header, main area, optional banner, and footer.
func (a *App) renderLayout() string {
	header := a.renderHeader()

	footerLines := 1
	bannerLine := ""
	if a.banner != "" {
		bannerLine = styleBanner.Width(a.width).Render(a.banner)
		footerLines = 2
	}

	mainHeight := a.height - 2 - footerLines
	if mainHeight < 1 {
		mainHeight = 1
	}

	var main string
	switch a.status {
	case statusLoading:
		main = a.renderCentered(mainHeight, a.spinner.View()+" "+styleStatusMessage.Render("Loading..."))
	case statusError:
		main = a.renderCentered(mainHeight, a.renderError())
	default:
		main = a.renderBody(mainHeight)
	}

	parts := []string{header, main}
	if bannerLine != "" {
		parts = append(parts, bannerLine)
	}
	parts = append(parts, a.footer.Render())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHeader() string {
	title := styleTitle.Render("promptdiff")
	pair := ""
	if a.sel.Valid() {
		pair = styleDim.Render(fmt.Sprintf("  %s → %s", a.sel.From, a.sel.To))
		if a.diffLoading {
			pair += "  " + a.spinner.View()
		}
	}
	left := title + pair

	right := ""
	if a.shareURL != "" {
		right = styleShareLink.Render(a.shareURL)
	}

	pad := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
		right = ""
	}
	line := " " + left + lipgloss.NewStyle().Width(pad).Render("") + right
	return line + "\n"
}

func (a *App) renderError() string {
	msg := styleErrorMessage.Render(a.statusMsg)
	if a.serviceErr {
		logs := a.cfg.ResolveLogsURL()
		if logs != "" {
			msg += "\n\n" + styleDim.Render("See logs: ") + styleLogsLink.Render(logs)
		}
	}
	msg += "\n\n" + styleDim.Render("[r] retry  [q] quit")
	return msg
}

func (a *App) renderCentered(height int, content string) string {
	return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderBody(height int) string {
	content := a.viewport.View()
	if !a.sidebarVisible {
		return content
	}
	sidebar := lipgloss.JoinVertical(lipgloss.Left,
		a.fromPicker.Render(),
		a.toPicker.Render(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
}
