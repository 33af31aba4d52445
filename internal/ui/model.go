package ui

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sheetgrip/internal/config"
	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/i18n"
	"sheetgrip/internal/ui/views"
)

// E2EEnv makes the view carry a readiness marker for the pty tests
const E2EEnv = "SHEETGRIP_E2E_TEST"

// Opener opens a matched workbook in another application
type Opener interface {
	Open(path string) error
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	tr     *i18n.Translator
	opener Opener

	width  int
	height int
	keys   keyMap
	help   help.Model

	folder  textinput.Model
	query   textinput.Model
	spinner spinner.Model
	focus   views.Focus

	// Current run, rebuilt from events in publish order
	state    domain.RunState
	progress domain.Progress
	matches  []domain.Match
	errors   []domain.FileError

	selectedIndex  int
	viewportOffset int
	viewportHeight int

	statusMessage string
	statusKind    views.StatusKind
	showLog       bool
	inPagerMode   bool
	autoStart     bool
	e2e           bool

	renderer *views.Renderer
	pager    *LogPager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. The folder input starts with the last
// searched folder when the configuration remembers it.
func NewModel(bus eventbus.EventBus, cfg *config.Config, tr *i18n.Translator, opener Opener) *Model {
	folder := textinput.New()
	folder.Prompt = ""
	folder.Width = 60
	folder.Placeholder = "/path/to/folder"

	query := textinput.New()
	query.Prompt = ""
	query.Width = 60

	m := &Model{
		bus:            bus,
		config:         cfg,
		tr:             tr,
		opener:         opener,
		keys:           newKeyMap(tr),
		help:           help.New(),
		folder:         folder,
		query:          query,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		focus:          views.FocusFolder,
		viewportHeight: 10,
		renderer:       views.NewRenderer(),
		pager:          NewLogPager(),
		e2e:            os.Getenv(E2EEnv) == "1",
	}

	if cfg != nil && cfg.UISettings.RememberFolder {
		m.folder.SetValue(cfg.LastFolder)
	}
	m.folder.Focus()

	return m
}

// Prefill sets the inputs, and with start the search begins as soon as the program runs
func (m *Model) Prefill(folder, query string, start bool) {
	if folder != "" {
		m.folder.SetValue(folder)
	}
	if query != "" {
		m.query.SetValue(query)
		m.setFocus(views.FocusQuery)
	}
	m.autoStart = start
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.autoStart {
		cmds = append(cmds, func() tea.Msg { return startSearchMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The inline log closes with the keys that open it
	if m.showLog {
		switch msg.String() {
		case "esc", "l", "q", "ctrl+l":
			m.showLog = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Stop):
		return m, m.requestStop()
	case key.Matches(msg, m.keys.NextField):
		m.setFocus((m.focus + 1) % 3)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.setFocus((m.focus + 2) % 3)
		return m, nil
	case key.Matches(msg, m.keys.OpenAny):
		return m, m.openSelected()
	case key.Matches(msg, m.keys.LogAny):
		return m, m.openLog()
	}

	if m.focus == views.FocusResults {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.Open):
			return m, m.openSelected()
		case key.Matches(msg, m.keys.Log):
			return m, m.openLog()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Search) {
		return m, m.requestSearch()
	}

	// Everything else is typing
	var cmd tea.Cmd
	if m.focus == views.FocusFolder {
		m.folder, cmd = m.folder.Update(msg)
	} else {
		m.query, cmd = m.query.Update(msg)
	}
	return m, cmd
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case startSearchMsg:
		return m, m.requestSearch()

	case spinner.TickMsg:
		if m.state != domain.StateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case openResultMsg:
		if msg.err != nil {
			log.Printf("Open failed for %s: %v", msg.path, msg.err)
			m.setStatus(m.tr.T(i18n.OpenFailed, msg.err.Error()), views.StatusWarning)
			return m, nil
		}
		m.setStatus(m.tr.T(i18n.Opening, filepath.Base(msg.path)), views.StatusSuccess)
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case logPagerMsg:
		if msg.err != nil {
			// Pager failed, log and fall back to the inline view
			log.Printf("Log pager failed: %v, falling back to inline log", msg.err)
			m.showLog = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	default:
		// Cursor blink and other input messages
		var cmd tea.Cmd
		if m.focus == views.FocusFolder {
			m.folder, cmd = m.folder.Update(msg)
		} else if m.focus == views.FocusQuery {
			m.query, cmd = m.query.Update(msg)
		}
		return m, cmd
	}
}

// handleEvent applies one search event to the screen state
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchStartedEvent:
		m.state = domain.StateRunning
		m.progress = domain.Progress{TotalFiles: e.TotalFiles}
		m.matches = nil
		m.errors = nil
		m.selectedIndex = 0
		m.viewportOffset = 0
		m.showLog = false
		m.setStatus(m.tr.T(i18n.Searching), views.StatusInfo)
		return m.spinner.Tick

	case eventbus.SearchProgressEvent:
		m.progress = e.Progress

	case eventbus.MatchFoundEvent:
		m.matches = append(m.matches, e.Match)

	case eventbus.FileErrorEvent:
		m.errors = append(m.errors, e.Error)

	case eventbus.NoResultsEvent:
		m.setStatus(m.tr.T(i18n.NoResult), views.StatusWarning)

	case eventbus.SearchStoppedEvent:
		m.state = domain.StateCancelled
		m.progress = e.Progress
		m.setStatus(m.tr.T(i18n.SearchStopped), views.StatusWarning)

	case eventbus.SearchCompletedEvent:
		m.state = domain.StateCompleted
		m.progress = e.Progress
		if e.Matches > 0 {
			m.setStatus(m.tr.T(i18n.Completed, e.Matches, e.Errors), views.StatusSuccess)
		}

	case eventbus.SearchFailedEvent:
		// The failed run replaced the previous one
		m.state = domain.StateFailed
		m.matches = nil
		m.errors = nil
		m.selectedIndex = 0
		m.viewportOffset = 0
		m.setStatus(m.tr.T(i18n.SearchFailed, e.Message), views.StatusError)

	case eventbus.SearchRejectedEvent:
		m.setStatus(m.tr.T(i18n.SearchRejected, e.Reason), views.StatusWarning)
	}
	return nil
}

// publish sends an event from a command. The bus dispatcher waits on
// Program.Send, so publishing from Update could block both loops.
func (m *Model) publish(event eventbus.DomainEvent) tea.Cmd {
	bus := m.bus
	return func() tea.Msg {
		bus.Publish(event)
		return nil
	}
}

// requestSearch validates the inputs and asks the search service to start
func (m *Model) requestSearch() tea.Cmd {
	folder := strings.TrimSpace(m.folder.Value())
	query := m.query.Value()
	if folder == "" || query == "" {
		m.setStatus(m.tr.T(i18n.InputError)+": "+m.tr.T(i18n.InputWarning), views.StatusWarning)
		return nil
	}
	if m.state == domain.StateRunning {
		return nil
	}
	return m.publish(eventbus.SearchRequestedEvent{Request: domain.SearchRequest{Folder: folder, Query: query}})
}

func (m *Model) requestStop() tea.Cmd {
	if m.state != domain.StateRunning {
		return nil
	}
	return m.publish(eventbus.StopRequestedEvent{})
}

// quit stops a running search on the way out
func (m *Model) quit() tea.Cmd {
	stop := m.requestStop()
	return func() tea.Msg {
		if stop != nil {
			stop()
		}
		return tea.QuitMsg{}
	}
}

func (m *Model) setFocus(f views.Focus) {
	m.focus = f
	m.folder.Blur()
	m.query.Blur()
	switch f {
	case views.FocusFolder:
		m.folder.Focus()
	case views.FocusQuery:
		m.query.Focus()
	}
}

func (m *Model) setStatus(msg string, kind views.StatusKind) {
	m.statusMessage = msg
	m.statusKind = kind
}

func (m *Model) moveSelection(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.selectedIndex += delta
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
	if m.selectedIndex >= len(m.matches) {
		m.selectedIndex = len(m.matches) - 1
	}
	m.ensureSelectedVisible()
}

func (m *Model) ensureSelectedVisible() {
	if m.selectedIndex < m.viewportOffset {
		m.viewportOffset = m.selectedIndex
	} else if m.selectedIndex >= m.viewportOffset+m.viewportHeight {
		m.viewportOffset = m.selectedIndex - m.viewportHeight + 1
	}
}

func (m *Model) updateViewportHeight() {
	// title, two inputs, header, progress, errors, status, help, padding
	reserved := 14
	if m.help.ShowAll {
		reserved += 3
	}
	m.viewportHeight = m.height - reserved
	if m.viewportHeight < 3 {
		m.viewportHeight = 3
	}
	m.ensureSelectedVisible()
}

// Selected returns the highlighted match, if any
func (m *Model) Selected() (domain.Match, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.matches) {
		return domain.Match{}, false
	}
	return m.matches[m.selectedIndex], true
}

func (m *Model) openSelected() tea.Cmd {
	match, ok := m.Selected()
	if !ok {
		m.setStatus(m.tr.T(i18n.NoSelection), views.StatusWarning)
		return nil
	}
	opener := m.opener
	return func() tea.Msg {
		return openResultMsg{path: match.Path, err: opener.Open(match.Path)}
	}
}

// openLog shows the error log in ov, or inline when no terminal can be handed over
func (m *Model) openLog() tea.Cmd {
	content := buildLogContent(m.tr, m.errors)
	if m.program == nil {
		m.showLog = true
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return logPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	results := make([]string, len(m.matches))
	for i, match := range m.matches {
		results[i] = m.tr.T(i18n.MatchLine, match.Filename, match.Sheet)
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Title:          m.tr.T(i18n.Title),
		FolderLabel:    m.tr.T(i18n.FolderPath),
		QueryLabel:     m.tr.T(i18n.SearchContent),
		FolderInput:    m.folder.View(),
		QueryInput:     m.query.View(),
		Focus:          m.focus,
		ResultsHeader:  m.tr.T(i18n.Results),
		Results:        results,
		SelectedIndex:  m.selectedIndex,
		ViewportOffset: m.viewportOffset,
		ViewportHeight: m.viewportHeight,
		Running:        m.state == domain.StateRunning,
		Spinner:        m.spinner.View(),
		StatusMessage:  m.statusMessage,
		StatusKind:     m.statusKind,
		ShowLog:        m.showLog,
		LogTitle:       m.tr.T(i18n.ShowLog),
		LogContent:     buildLogContent(m.tr, m.errors),
		HelpView:       m.help.View(m.keys),
		ReadyMarker:    m.e2e,
	}
	if m.state != domain.StateIdle && m.state != domain.StateFailed {
		state.ProgressText = m.tr.T(i18n.SearchedFiles, m.progress.FilesScanned, m.progress.TotalFiles)
	}
	if len(m.errors) > 0 {
		state.ErrorText = m.tr.T(i18n.ErrorCount, len(m.errors))
	}

	return m.renderer.Render(state)
}
