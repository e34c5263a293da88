package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/streamcheck/internal/session"
	"github.com/Veraticus/streamcheck/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// Fixed texts of the results screen.
const (
	loadingText    = "Laden..."
	emptyDetail    = "Für den ausgewählten Zeitraum und die gewählten Teams sind keine Spiele verfügbar."
	selectTitle    = "Favoritenauswahl"
	resultsTitle   = "Ergebnisse"
	summaryTitle   = "Zusammenfassung"
	unstreamTitle  = "Nicht streambare Spiele"
	uncoveredTitle = "Nicht abgedeckte Spiele"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	var focusLine int
	switch m.screen {
	case viewmodel.ScreenResults:
		body, focusLine = m.renderResults()
	default:
		body, focusLine = m.renderSelect()
	}

	footer := []string{m.renderStatusBar()}
	if m.showHelp {
		footer = append(footer, m.help.FullHelpView(m.keymap.FullHelp()))
	} else {
		footer = append(footer, m.help.ShortHelpView(m.keymap.ShortHelp()))
	}
	footerText := lipgloss.JoinVertical(lipgloss.Left, footer...)

	available := m.height - lipgloss.Height(footerText)
	lines := clipLines(strings.Split(body, "\n"), focusLine, available)

	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), footerText)
}

// renderSelect renders the search bar, the selection and the candidates. It
// returns the line index of the cursor row.
func (m Model) renderSelect() (string, int) {
	lines := appendBlock(nil, m.theme.Title.Render(selectTitle))
	lines = append(lines, m.query.View(), "")

	items := m.listItems()
	focusLine := 0
	section := ""
	for i, item := range items {
		if item.section != section {
			if section != "" {
				lines = append(lines, "")
			}
			section = item.section
			lines = append(lines, m.theme.Section.Render(section))
		}
		if i == m.cursor && m.focus == focusList {
			focusLine = len(lines)
		}
		lines = append(lines, m.renderItem(item, i == m.cursor && m.focus == focusList))
	}

	if len(items) == 0 {
		lines = append(lines, m.theme.Faint.Render(m.emptyListHint()))
	}

	if m.selection.Len() > 0 {
		lines = append(lines, "", m.theme.StatusInfo.Render(fmt.Sprintf("[c] Pakete vergleichen (%d)", m.selection.Len())))
	}

	return strings.Join(lines, "\n"), focusLine
}

func (m Model) emptyListHint() string {
	if m.search.IsActive() {
		if len([]rune(m.search.Query())) < session.MinQueryLength {
			return "Mindestens zwei Zeichen eingeben"
		}
		return "Keine Vorschläge"
	}
	return "Keine beliebten Einträge verfügbar"
}

func (m Model) renderItem(item listItem, focused bool) string {
	mark := "[ ]"
	if item.selected {
		mark = m.theme.Checked.Render("[✓]")
	}
	name := viewmodel.SanitizeForDisplay(item.name)
	if focused {
		return "> " + mark + " " + m.theme.Selected.Render(name)
	}
	return "  " + mark + " " + m.theme.Normal.Render(name)
}

// renderResults renders the date field and the state of the result session.
func (m Model) renderResults() (string, int) {
	view := m.results.Snapshot()

	lines := appendBlock(nil, m.theme.Title.Render(resultsTitle))
	lines = append(lines, m.date.View(), "")

	switch view.State {
	case session.StateIdle, session.StateLoading:
		lines = append(lines, m.spinner.View()+" "+loadingText)

	case session.StateError:
		lines = append(lines, m.theme.StatusError.Render(fmt.Sprintf("Fehler: %s", view.Message)))

	case session.StateEmpty:
		lines = append(lines,
			m.theme.Bold.Render(session.EmptyMessage),
			m.theme.Faint.Render(emptyDetail),
		)

	case session.StateSuccess:
		report := viewmodel.NewReportView(view.Report, view.IsExpanded, m.config.Location)
		body, focus := m.renderReport(report)
		return strings.Join(append(lines, body...), "\n"), len(lines) + focus
	}

	return strings.Join(lines, "\n"), 0
}

// renderReport renders a Success report and returns the line of the package
// under the cursor.
func (m Model) renderReport(report viewmodel.ReportView) ([]string, int) {
	s := report.Summary
	summary := []string{
		m.theme.Section.Render(summaryTitle),
		"Gesamtkosten: " + m.theme.Cost.Render(s.TotalCost),
		"Abdeckung: " + s.Coverage,
		"Gewichtete Abdeckung: " + s.WeightedCoverage,
		"Ausgewählte Teams: " + s.Teams,
	}
	if s.MainLeague != "" {
		summary = append(summary, "Hauptliga: "+s.MainLeague)
	}
	if s.TimeRange != "" {
		summary = append(summary, "Zeitraum: "+s.TimeRange)
	}
	lines := appendBlock(nil, m.theme.RoundedBox.Render(strings.Join(summary, "\n")))
	lines = append(lines, "")

	focusLine := 0
	for i, pkg := range report.Packages {
		focused := i == m.pkgCursor
		if focused {
			focusLine = len(lines)
		}
		lines = append(lines, m.renderPackage(pkg, focused)...)
		lines = append(lines, "")
	}

	if report.Unstreamable != nil {
		lines = append(lines, m.theme.Section.Render(unstreamTitle))
		lines = append(lines, m.renderGames(report.Unstreamable.Games)...)
		lines = append(lines, "")
	}
	if len(report.Uncovered) > 0 {
		lines = append(lines, m.theme.Section.Render(uncoveredTitle))
		lines = append(lines, m.renderGames(report.Uncovered)...)
	}
	return lines, focusLine
}

func (m Model) renderPackage(pkg viewmodel.PackageView, focused bool) []string {
	arrow := "▸"
	if pkg.Expanded {
		arrow = "▾"
	}
	name := m.theme.Bold.Render(pkg.Name)
	if focused {
		name = m.theme.Selected.Render(pkg.Name)
	}

	lines := []string{
		arrow + " " + name,
		fmt.Sprintf("  Kosten: %s (%s)", m.theme.Cost.Render(pkg.Cost), pkg.SubscriptionLabel),
	}
	if pkg.HasMonths() {
		lines = append(lines, "  Aktive Monate: "+pkg.ActiveMonths)
	}
	lines = append(lines, fmt.Sprintf("  Anzahl Spiele: %d", pkg.GameCount))

	if pkg.Expanded {
		lines = append(lines, "  Abgedeckte Spiele:")
		for _, game := range m.renderGames(pkg.Games) {
			lines = append(lines, "  "+game)
		}
	}
	return lines
}

func (m Model) renderGames(games []viewmodel.GameRow) []string {
	lines := make([]string, 0, len(games)*2)
	for _, g := range games {
		lines = append(lines,
			"  "+m.theme.Normal.Render(g.Title),
			"    "+m.theme.Faint.Render(g.Subtitle()),
		)
	}
	return lines
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := m.screen.String()
	if m.screen == viewmodel.ScreenResults {
		left = m.results.State().String()
	}
	right := fmt.Sprintf("%d ausgewählt", m.selection.Len())

	center := m.status
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right) - 2
	if spacing < 2 {
		spacing = 2
	}
	leftPad := spacing / 2

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.StatusInfo.Render(left),
		strings.Repeat(" ", leftPad),
		m.theme.StatusWarning.Render(center),
		strings.Repeat(" ", spacing-leftPad),
		m.theme.Faint.Render(right),
	)
}

// appendBlock appends a possibly multi-line rendering line by line.
func appendBlock(lines []string, block string) []string {
	return append(lines, strings.Split(block, "\n")...)
}

// clipLines returns at most height lines, scrolled so that focus stays visible.
func clipLines(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
