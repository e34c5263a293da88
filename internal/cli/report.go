package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/service"
	"github.com/Veraticus/streamcheck/internal/session"
	"github.com/Veraticus/streamcheck/internal/tui/viewmodel"
)

// EmptyDetail accompanies the empty-result headline.
const EmptyDetail = "Für den ausgewählten Zeitraum und die gewählten Teams sind keine Spiele verfügbar."

// RenderOptions controls plain-terminal report output.
type RenderOptions struct {
	// Location is used for game dates. Nil means the local zone.
	Location *time.Location
	// ShowGames lists the covered games below every package.
	ShowGames bool
}

// RenderReport writes report to w. A report without packages renders the
// empty state.
func RenderReport(w io.Writer, report *model.ResultReport, opts RenderOptions) error {
	var b strings.Builder

	if report.IsEmpty() {
		b.WriteString(BoldStyle.Render(session.EmptyMessage) + "\n")
		b.WriteString(SubtleStyle.Render(EmptyDetail) + "\n")
		return write(w, b.String())
	}

	view := viewmodel.NewReportView(report, func(string) bool { return opts.ShowGames }, opts.Location)

	b.WriteString(RenderBox("Zusammenfassung", summaryLines(view.Summary)) + "\n\n")

	for _, pkg := range view.Packages {
		b.WriteString(packageBlock(pkg))
		b.WriteString("\n")
	}

	if view.Unstreamable != nil {
		b.WriteString(SectionStyle.Render("Nicht streambare Spiele") + "\n")
		b.WriteString(gameLines(view.Unstreamable.Games, "  "))
		b.WriteString("\n")
	}
	if len(view.Uncovered) > 0 {
		b.WriteString(SectionStyle.Render("Nicht abgedeckte Spiele") + "\n")
		b.WriteString(gameLines(view.Uncovered, "  "))
	}

	return write(w, b.String())
}

func summaryLines(s viewmodel.SummaryView) string {
	lines := []string{
		"Gesamtkosten: " + CostStyle.Render(s.TotalCost),
		"Abdeckung: " + s.Coverage,
		"Gewichtete Abdeckung: " + s.WeightedCoverage,
		"Ausgewählte Teams: " + s.Teams,
	}
	if s.MainLeague != "" {
		lines = append(lines, "Hauptliga: "+s.MainLeague)
	}
	if s.TimeRange != "" {
		lines = append(lines, "Zeitraum: "+s.TimeRange)
	}
	if s.ServerDuration != "" {
		lines = append(lines, SubtleStyle.Render("Serverzeit: "+s.ServerDuration))
	}
	return strings.Join(lines, "\n")
}

func packageBlock(pkg viewmodel.PackageView) string {
	var b strings.Builder
	b.WriteString(BoldStyle.Render(pkg.Name) + "\n")
	fmt.Fprintf(&b, "  Kosten: %s (%s)\n", CostStyle.Render(pkg.Cost), pkg.SubscriptionLabel)
	if pkg.HasMonths() {
		b.WriteString("  Aktive Monate: " + pkg.ActiveMonths + "\n")
	}
	fmt.Fprintf(&b, "  Anzahl Spiele: %d\n", pkg.GameCount)
	if pkg.Expanded && len(pkg.Games) > 0 {
		b.WriteString("  Abgedeckte Spiele:\n")
		b.WriteString(gameLines(pkg.Games, "    "))
	}
	return b.String()
}

func gameLines(games []viewmodel.GameRow, indent string) string {
	var b strings.Builder
	for _, g := range games {
		b.WriteString(indent + viewmodel.SanitizeForDisplay(g.Title) + "\n")
		b.WriteString(indent + SubtleStyle.Render(g.Subtitle()) + "\n")
	}
	return b.String()
}

// RenderList writes a titled list. Empty lists print emptyText instead.
func RenderList(w io.Writer, title string, items []string, emptyText string) error {
	var b strings.Builder
	b.WriteString(SectionStyle.Render(title) + "\n")
	if len(items) == 0 {
		b.WriteString("  " + SubtleStyle.Render(emptyText) + "\n")
	}
	for _, item := range items {
		b.WriteString("  " + viewmodel.SanitizeForDisplay(item) + "\n")
	}
	return write(w, b.String())
}

// RenderPopular writes the three popular sections.
func RenderPopular(w io.Writer, items model.PopularItems) error {
	sections := []struct {
		title string
		items []string
	}{
		{"Beliebte Vereine", items.Teams},
		{"Beliebte Turniere", items.Tournaments},
		{"Beliebte Nationen", items.Nations},
	}
	for i, s := range sections {
		if i > 0 {
			if err := write(w, "\n"); err != nil {
				return err
			}
		}
		if err := RenderList(w, s.title, s.items, "Keine Einträge"); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory writes one line per stored report, most recent first.
func RenderHistory(w io.Writer, entries []service.HistoryEntry, loc *time.Location) error {
	if len(entries) == 0 {
		return write(w, FormatInfo("Noch keine gespeicherten Vergleiche")+"\n")
	}
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	for _, e := range entries {
		cost := "-"
		if e.Report != nil {
			cost = viewmodel.FormatCost(e.Report.Data.TotalCost)
		}
		fmt.Fprintf(&b, "%s  %s  ab %s  %s  %s\n",
			BoldStyle.Render(fmt.Sprintf("#%d", e.ID)),
			e.CreatedAt.In(loc).Format(viewmodel.GameDateLayout),
			viewmodel.FormatStartDate(e.StartDate.In(loc)),
			CostStyle.Render(cost),
			viewmodel.TruncateString(strings.Join(e.Teams, ", "), 60),
		)
	}
	return write(w, b.String())
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
