package tui

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Veraticus/streamcheck/internal/api"
	"github.com/Veraticus/streamcheck/internal/selection"
	"github.com/Veraticus/streamcheck/internal/session"
	"github.com/Veraticus/streamcheck/internal/tui/themes"
	"github.com/Veraticus/streamcheck/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Section headings of the selection screen.
const (
	sectionSelected    = "Vereine"
	sectionSuggestions = "Vorschläge"
	sectionTeams       = "Beliebte Vereine"
	sectionTournaments = "Beliebte Turniere"
	sectionNations     = "Beliebte Nationen"
)

// selectionTracker records whether the selection changed since the last
// result request.
type selectionTracker struct {
	changed atomic.Bool
}

// listItem is one togglable row on the selection screen.
type listItem struct {
	section  string
	name     string
	selected bool
}

// Model holds the main TUI state.
type Model struct {
	theme     themes.Theme
	startDate time.Time
	config    Config
	search    *session.SearchSession
	results   *session.ResultSession
	selection *selection.Store
	tracker   *selectionTracker
	keymap    KeyMap
	help      help.Model
	query     textinput.Model
	date      textinput.Model
	spinner   spinner.Model
	status    string
	cursor    int
	pkgCursor int
	screen    viewmodel.Screen
	focus     focusArea
	width     int
	height    int
	showHelp  bool
	quitting  bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	sel := cfg.Selection
	if sel == nil {
		sel = selection.NewStore()
	}

	tracker := &selectionTracker{}
	sel.OnChange(func([]string) {
		tracker.changed.Store(true)
	})

	query := textinput.New()
	query.Placeholder = "Verein oder Wettbewerb suchen"
	query.Prompt = "/ "
	query.CharLimit = 64

	startDate := cfg.Now().In(cfg.Location)
	date := textinput.New()
	date.Prompt = "Startdatum: "
	date.Placeholder = "JJJJ-MM-TT"
	date.CharLimit = len(time.DateOnly)
	date.SetValue(viewmodel.FormatStartDate(startDate))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	h := help.New()
	h.Width = cfg.Width

	return Model{
		theme:     cfg.Theme,
		config:    cfg,
		selection: sel,
		tracker:   tracker,
		search:    session.NewSearchSession(sel),
		results:   session.NewResultSession(cfg.Results, cfg.ResultOptions...),
		keymap:    DefaultKeyMap(),
		help:      h,
		query:     query,
		date:      date,
		spinner:   sp,
		startDate: startDate,
		screen:    viewmodel.ScreenSelect,
		width:     cfg.Width,
		height:    cfg.Height,
		showHelp:  cfg.ShowHelp,
	}
}

// Init loads the popular items.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchPopular(), textinput.Blink)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case suggestionsMsg:
		if m.search.Apply(msg.outcome) {
			m.clampCursor()
		}
		return m, nil

	case popularMsg:
		m.search.ApplyPopular(msg.outcome)
		return m, nil

	case resultMsg:
		if !m.results.Apply(msg.outcome) {
			return m, nil
		}
		m.pkgCursor = 0
		if m.results.State() == session.StateSuccess {
			return m, m.saveHistory(msg.query, m.results.Snapshot().Report)
		}
		return m, nil

	case historySavedMsg:
		if msg.err != nil {
			m.status = "Verlauf konnte nicht gespeichert werden"
		}
		return m, nil

	case spinner.TickMsg:
		if m.results.State() != session.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

// updateInputs forwards cursor blinks and similar messages to the focused input.
func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusQuery:
		m.query, cmd = m.query.Update(msg)
	case focusDate:
		m.date, cmd = m.date.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m.quit()
	}

	switch m.focus {
	case focusQuery:
		return m.handleQueryKey(msg)
	case focusDate:
		return m.handleDateKey(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.screen == viewmodel.ScreenResults {
		return m.handleResultsKey(msg)
	}
	return m.handleSelectKey(msg)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.search.Close()
	m.results.Close()
	return m, tea.Quit
}

func (m Model) handleQueryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Clear):
		m.clearSearch()
		m.query.Blur()
		m.focus = focusList
		return m, nil
	case msg.Type == tea.KeyEnter, msg.Type == tea.KeyDown, msg.Type == tea.KeyTab:
		m.query.Blur()
		m.focus = focusList
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() == before {
		return m, cmd
	}

	m.cursor = 0
	return m, tea.Batch(cmd, m.fetchSuggestions(m.search.SetQuery(m.query.Value())))
}

func (m *Model) clearSearch() {
	m.query.SetValue("")
	m.search.Clear()
	m.cursor = 0
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	items := m.listItems()

	switch {
	case key.Matches(msg, m.keymap.Search):
		m.focus = focusQuery
		return m, m.query.Focus()
	case key.Matches(msg, m.keymap.Clear):
		if m.search.IsActive() {
			m.clearSearch()
		}
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Toggle):
		if m.cursor < len(items) {
			m.selection.Toggle(items[m.cursor].name)
			m.clampCursor()
		}
	case key.Matches(msg, m.keymap.Compare):
		return m.compare()
	}
	return m, nil
}

// compare switches to the results screen. A new request is issued only when
// the selection changed or nothing has been requested yet.
func (m Model) compare() (Model, tea.Cmd) {
	if m.selection.Len() == 0 {
		m.status = "Bitte mindestens einen Verein auswählen"
		return m, nil
	}
	m.status = ""
	m.screen = viewmodel.ScreenResults
	if m.results.State() != session.StateIdle && !m.tracker.changed.Load() {
		return m, nil
	}
	m.tracker.changed.Store(false)
	m.pkgCursor = 0
	return m, m.startCycle(m.results.Start(m.selection.Snapshot(), m.startDate))
}

func (m Model) startCycle(req *session.ResultRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetchResult(req))
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	view := m.results.Snapshot()
	var packages int
	if view.Report != nil {
		packages = len(view.Report.Data.SelectedPackages)
	}

	switch {
	case key.Matches(msg, m.keymap.Back):
		m.screen = viewmodel.ScreenSelect
	case key.Matches(msg, m.keymap.Up):
		if m.pkgCursor > 0 {
			m.pkgCursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.pkgCursor < packages-1 {
			m.pkgCursor++
		}
	case key.Matches(msg, m.keymap.Toggle):
		if view.State == session.StateSuccess && m.pkgCursor < packages {
			m.results.ToggleExpanded(view.Report.Data.SelectedPackages[m.pkgCursor].Name)
		}
	case key.Matches(msg, m.keymap.Left):
		return m.setStartDate(m.startDate.AddDate(0, 0, -1))
	case key.Matches(msg, m.keymap.Right):
		return m.setStartDate(m.startDate.AddDate(0, 0, 1))
	case key.Matches(msg, m.keymap.Today):
		return m.setStartDate(m.config.Now())
	case key.Matches(msg, m.keymap.Date):
		m.focus = focusDate
		m.date.SetValue(viewmodel.FormatStartDate(m.startDate))
		m.date.CursorEnd()
		return m, m.date.Focus()
	case key.Matches(msg, m.keymap.Retry):
		m.pkgCursor = 0
		return m, m.startCycle(m.results.Restart(m.startDate))
	}
	return m, nil
}

// setStartDate moves the date field and re-enters Loading.
func (m Model) setStartDate(t time.Time) (Model, tea.Cmd) {
	m.startDate = t.In(m.config.Location)
	m.date.SetValue(viewmodel.FormatStartDate(m.startDate))
	m.pkgCursor = 0
	return m, m.startCycle(m.results.Restart(m.startDate))
}

func (m Model) handleDateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.date.Blur()
		m.focus = focusList
		m.date.SetValue(viewmodel.FormatStartDate(m.startDate))
		return m, nil
	case tea.KeyEnter:
		m.date.Blur()
		m.focus = focusList
		value := m.date.Value()
		t, err := api.ParseStartDate(value, m.config.Location)
		if err != nil {
			m.status = fmt.Sprintf("Ungültiges Datum: %s", value)
			m.date.SetValue(viewmodel.FormatStartDate(m.startDate))
			return m, nil
		}
		m.status = ""
		return m.setStartDate(t)
	}

	var cmd tea.Cmd
	m.date, cmd = m.date.Update(msg)
	return m, cmd
}

// listItems returns the togglable rows: the selection first, then either the
// visible suggestions or the popular items that are not yet selected.
func (m Model) listItems() []listItem {
	var items []listItem
	for _, name := range m.selection.Snapshot() {
		items = append(items, listItem{section: sectionSelected, name: name, selected: true})
	}

	if m.search.IsActive() {
		for _, name := range m.search.VisibleSuggestions() {
			items = append(items, listItem{section: sectionSuggestions, name: name})
		}
		return items
	}

	popular := m.search.Popular()
	add := func(section string, names []string) {
		for _, name := range names {
			if !m.selection.Contains(name) {
				items = append(items, listItem{section: section, name: name})
			}
		}
	}
	add(sectionTeams, popular.Teams)
	add(sectionTournaments, popular.Tournaments)
	add(sectionNations, popular.Nations)
	return items
}

func (m *Model) clampCursor() {
	n := len(m.listItems())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
