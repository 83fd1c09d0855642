package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/f3rmion/scribe/internal/clipboard"
	"github.com/f3rmion/scribe/internal/config"
	"github.com/f3rmion/scribe/internal/importer"
	"github.com/f3rmion/scribe/internal/knownwords"
	"github.com/f3rmion/scribe/internal/lexicon"
	"github.com/f3rmion/scribe/internal/session"
	"github.com/f3rmion/scribe/internal/tui/banner"
	"github.com/f3rmion/scribe/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewOpen ViewType = iota
	ViewSelect
	ViewTriage
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// Prober reports whether the known-words store is reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// Copier puts words on the clipboard.
type Copier interface {
	WriteWords(words []string) (clipboard.Method, error)
}

// Deps are the collaborators of the console.
type Deps struct {
	Controller *importer.Controller
	Prober     Prober
	Copier     Copier
	Banner     *banner.Renderer
	Config     *config.Config
	Logger     *slog.Logger
}

type importDoneMsg struct {
	path string
	imp  *lexicon.Import
	err  error
}

type submitDoneMsg struct {
	cycle string
	words int
	res   knownwords.Result
	err   error
}

type resetMsg struct {
	cycle string
}

type probeMsg struct {
	err error
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

type status struct {
	kind   statusKind
	text   string
	detail string
}

// AppModel is the import console.
type AppModel struct {
	ctrl   *importer.Controller
	prober Prober
	copier Copier
	log    *slog.Logger

	timeout    time.Duration
	resetDelay time.Duration

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	filePickerView views.FilePickerModel
	selectionView  views.SelectionModel
	triageView     views.TriageModel

	zones   *zone.Manager
	spinner spinner.Model

	busy         bool
	busyLabel    string
	resetPending bool
	status       status

	showHelp bool
}

// NewApp creates the console. When the controller already holds a cycle
// the matching workflow view is shown first.
func NewApp(deps Deps) AppModel {
	cfg := deps.Config
	if cfg == nil {
		def := config.Default("")
		cfg = &def
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	zones := zone.New()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = LoadingStyle

	m := AppModel{
		ctrl:         deps.Controller,
		prober:       deps.Prober,
		copier:       deps.Copier,
		log:          logger.With("component", "tui"),
		timeout:      cfg.API.Timeout,
		resetDelay:   cfg.Import.ResetDelay,
		sidebarWidth: 18,
		currentView:  ViewOpen,
		menuItems: []MenuItem{
			{Label: "Open", View: ViewOpen, Shortcut: "1"},
			{Label: "Select", View: ViewSelect, Shortcut: "2"},
			{Label: "Triage", View: ViewTriage, Shortcut: "3"},
		},

		filePickerView: views.NewFilePickerModel(cfg.Import.StartDir, cfg.Import.Extensions),
		selectionView:  views.NewSelectionModel(),
		triageView:     views.NewTriageModel(views.NewManagerZones(zones), deps.Banner),

		zones:   zones,
		spinner: sp,
	}

	if m.ctrl.Active() {
		m.filePickerView.SetChosen(m.ctrl.Pending())
		if m.ctrl.Mode() == session.ModeTriage {
			m.currentView = ViewTriage
		} else {
			m.currentView = ViewSelect
		}
	}
	m.selectedMenu = int(m.currentView)
	m.syncViews()

	return m
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	if m.prober == nil {
		return nil
	}
	prober, timeout := m.prober, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return probeMsg{err: prober.Probe(ctx)}
	}
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}
			return m, nil
		}

		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// The filter input owns the keyboard while it has focus.
		if m.currentView == ViewSelect && m.selectionView.Filtering() && !m.sidebarActive {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "esc":
			if m.sidebarActive {
				return m, tea.Quit
			}
			m.sidebarActive = true
			m.syncViews()
			return m, nil
		case "1":
			m.showView(ViewOpen)
			return m, nil
		case "2":
			m.showView(ViewSelect)
			return m, nil
		case "3":
			m.showView(ViewTriage)
			return m, nil
		case "R":
			m.reset()
			m.setStatus(statusInfo, "cycle cleared")
			return m, nil
		case "tab":
			m.sidebarActive = !m.sidebarActive
			m.syncViews()
			return m, nil
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.showView(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.MouseMsg:
		if m.busy || m.showHelp {
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth, contentHeight := m.contentSize()
		m.filePickerView.SetSize(contentWidth, contentHeight)
		m.selectionView.SetSize(contentWidth, contentHeight)
		m.triageView.SetSize(contentWidth, contentHeight)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case views.FileSelectedMsg:
		if m.busy {
			return m, nil
		}
		m.ctrl.Choose(msg.Path)
		m.startBusy("importing " + filepath.Base(msg.Path))
		return m, tea.Batch(m.spinner.Tick, m.importCmd(msg.Path))

	case importDoneMsg:
		m.busy = false
		return m.handleImport(msg), nil

	case views.SubmitRequestedMsg:
		return m.handleSubmitRequest()

	case submitDoneMsg:
		m.busy = false
		return m.handleSubmitDone(msg)

	case views.CopyRequestedMsg:
		m.handleCopy()
		return m, nil

	case resetMsg:
		m.resetPending = false
		if msg.cycle != "" && msg.cycle == m.ctrl.CycleID() {
			m.reset()
		}
		return m, nil

	case probeMsg:
		if m.status.text != "" {
			return m, nil
		}
		if msg.err != nil {
			m.setStatus(statusError, "known-words store unavailable: "+msg.err.Error())
		} else {
			m.setStatus(statusInfo, "known-words store reachable")
		}
		return m, nil
	}

	if m.sidebarActive {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewOpen:
		m.filePickerView, cmd = m.filePickerView.Update(msg)
	case ViewSelect:
		m.selectionView, cmd = m.selectionView.Update(msg)
	case ViewTriage:
		m.triageView, cmd = m.triageView.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) contentSize() (int, int) {
	return m.width - m.sidebarWidth - 4, m.height - 4
}

// showView focuses v. The workflow views replace the active state with
// their own mode.
func (m *AppModel) showView(v ViewType) {
	m.currentView = v
	m.selectedMenu = int(v)
	m.sidebarActive = false

	if m.ctrl.Active() {
		var err error
		switch v {
		case ViewSelect:
			err = m.ctrl.SwitchMode(session.ModeSelection)
		case ViewTriage:
			err = m.ctrl.SwitchMode(session.ModeTriage)
		}
		if err != nil {
			m.setError(err)
		}
	}
	m.syncViews()
}

// syncViews points the workflow views at the controller's state and
// attaches the triage keys only while the triage view has focus.
func (m *AppModel) syncViews() {
	if sel := m.ctrl.Selection(); sel != m.selectionView.Selection() {
		m.selectionView.SetSelection(sel)
	}
	if tr := m.ctrl.Triage(); tr != m.triageView.Triage() {
		m.triageView.SetTriage(tr)
	}

	if m.currentView == ViewTriage && !m.sidebarActive {
		m.triageView.Attach()
	} else {
		m.triageView.Detach()
	}
}

func (m *AppModel) reset() {
	m.ctrl.Reset()
	m.resetPending = false
	m.filePickerView.SetChosen("")
	m.currentView = ViewOpen
	m.selectedMenu = int(ViewOpen)
	m.syncViews()
}

func (m *AppModel) startBusy(label string) {
	m.busy = true
	m.busyLabel = label
}

func (m *AppModel) setStatus(kind statusKind, text string) {
	m.status = status{kind: kind, text: text}
}

func (m *AppModel) setError(err error) {
	st := status{kind: statusError, text: err.Error()}

	var malformed *lexicon.MalformedError
	if errors.As(err, &malformed) {
		st.detail = malformed.Snippet
	}

	m.status = st
	m.log.Warn("operator error", slog.String("error", err.Error()))
}

func (m AppModel) importCmd(path string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		imp, err := ctrl.Import(context.Background(), path)
		return importDoneMsg{path: path, imp: imp, err: err}
	}
}

func (m AppModel) handleImport(msg importDoneMsg) AppModel {
	name := filepath.Base(msg.path)

	if msg.err != nil {
		if errors.Is(msg.err, lexicon.ErrEmptyLexicon) && msg.imp != nil {
			m.setError(fmt.Errorf("%s: %w (skipped %d)", name, msg.err, msg.imp.Skipped))
		} else {
			m.setError(fmt.Errorf("%s: %w", name, msg.err))
		}
		return m
	}

	m.ctrl.Begin(msg.imp)
	m.ctrl.Choose(msg.path)
	m.resetPending = false
	m.filePickerView.SetChosen(msg.path)

	text := name + ": " + msg.imp.Summary()
	if msg.imp.LineErrors > 0 {
		text += fmt.Sprintf(", %d unreadable lines", msg.imp.LineErrors)
	}
	m.setStatus(statusSuccess, text)

	m.currentView = ViewSelect
	m.selectedMenu = int(ViewSelect)
	m.sidebarActive = false
	m.syncViews()
	return m
}

func (m AppModel) handleSubmitRequest() (tea.Model, tea.Cmd) {
	if m.busy || m.resetPending {
		return m, nil
	}

	words, err := m.ctrl.Finalize()
	if err != nil {
		m.setError(err)
		return m, nil
	}

	m.startBusy(fmt.Sprintf("submitting %d words", len(words)))
	ctrl, cycle, timeout := m.ctrl, m.ctrl.CycleID(), m.timeout
	submit := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := ctrl.Submit(ctx, words)
		return submitDoneMsg{cycle: cycle, words: len(words), res: res, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, submit)
}

func (m AppModel) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(fmt.Errorf("submission failed: %w", msg.err))
		return m, nil
	}

	m.setStatus(statusSuccess, msg.res.String())
	m.resetPending = true

	cycle := msg.cycle
	return m, tea.Tick(m.resetDelay, func(time.Time) tea.Msg {
		return resetMsg{cycle: cycle}
	})
}

func (m *AppModel) handleCopy() {
	if m.copier == nil {
		return
	}
	words, err := m.ctrl.Finalize()
	if err != nil {
		m.setError(err)
		return
	}
	method, err := m.copier.WriteWords(words)
	if err != nil {
		m.setError(fmt.Errorf("copying words: %w", err))
		return
	}
	m.setStatus(statusSuccess, fmt.Sprintf("copied %d words (%s)", len(words), method))
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewOpen:
		content = m.filePickerView.View()
	case ViewSelect:
		content = m.selectionView.View()
	case ViewTriage:
		content = m.triageView.View()
	}

	contentWidth, contentHeight := m.contentSize()
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(contentHeight).
		Render(content)

	right := lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderStatus(contentWidth))
	return m.zones.Scan(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, right))
}

func (m AppModel) renderStatus(width int) string {
	if m.busy {
		return " " + m.spinner.View() + LoadingStyle.Render(m.busyLabel+"…")
	}

	var style lipgloss.Style
	switch m.status.kind {
	case statusError:
		style = ErrorStyle
	case statusSuccess:
		style = SuccessStyle
	default:
		style = StatusStyle
	}

	line := " " + style.Render(m.status.text)
	if m.status.detail != "" {
		detail := strings.Join(strings.Fields(m.status.detail), " ")
		line += "\n " + SnippetStyle.MaxWidth(max(width-2, 10)).Render(detail)
	}
	return line
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render("  SCRIBE  "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	if m.ctrl.Active() {
		items = append(items, "", SidebarItemStyle.Render(fmt.Sprintf("%d words", len(m.ctrl.Entries()))))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render("Scribe - Lexicon Import") + "\n\n"

	helpText += sectionStyle.Render("Global Keys") + "\n"
	helpText += keyStyle.Render("1-3") + descStyle.Render("Switch views") + "\n"
	helpText += keyStyle.Render("tab") + descStyle.Render("Toggle sidebar focus") + "\n"
	helpText += keyStyle.Render("R") + descStyle.Render("Discard the current import") + "\n"
	helpText += keyStyle.Render("?") + descStyle.Render("Show this help") + "\n"
	helpText += keyStyle.Render("q") + descStyle.Render("Quit") + "\n"

	helpText += sectionStyle.Render("Open") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Import file/enter dir") + "\n"
	helpText += keyStyle.Render("backspace") + descStyle.Render("Go to parent dir") + "\n"
	helpText += keyStyle.Render(".") + descStyle.Render("Show hidden files") + "\n"

	helpText += sectionStyle.Render("Select") + "\n"
	helpText += keyStyle.Render("space") + descStyle.Render("Toggle word") + "\n"
	helpText += keyStyle.Render("a/n/i") + descStyle.Render("All/none/invert") + "\n"
	helpText += keyStyle.Render("/") + descStyle.Render("Filter words") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Submit selected") + "\n"

	helpText += sectionStyle.Render("Triage") + "\n"
	helpText += keyStyle.Render("space") + descStyle.Render("Reveal details") + "\n"
	helpText += keyStyle.Render("→/l") + descStyle.Render("Known") + "\n"
	helpText += keyStyle.Render("←/h") + descStyle.Render("Unknown") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Submit unknown words") + "\n"
	helpText += keyStyle.Render("y") + descStyle.Render("Copy unknown words") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, boxStyle.Render(helpText))
}
