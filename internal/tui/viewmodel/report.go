package viewmodel

import (
	"strings"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
)

// ReportView is everything the results screen renders for a Success report.
type ReportView struct {
	Unstreamable *UnstreamableView
	Summary      SummaryView
	Packages     []PackageView
	Uncovered    []GameRow
}

// SummaryView is the summary block. Coverage strings are shown as received.
type SummaryView struct {
	TotalCost        string
	Coverage         string
	WeightedCoverage string
	MainLeague       string
	Teams            string
	TimeRange        string
	ServerDuration   string
}

// PackageView is one selected package.
type PackageView struct {
	Name              string
	Cost              string
	SubscriptionLabel string
	ActiveMonths      string
	Games             []GameRow
	GameCount         int
	Expanded          bool
}

// HasMonths reports whether the active months line should be shown.
func (p PackageView) HasMonths() bool {
	return p.ActiveMonths != ""
}

// UnstreamableView lists games no package can stream.
type UnstreamableView struct {
	Games []GameRow
}

// GameRow is a game prepared for display.
type GameRow struct {
	Key        string
	Title      string
	Tournament string
	Date       string
}

// Subtitle renders "Tournament - date".
func (g GameRow) Subtitle() string {
	return g.Tournament + " - " + g.Date
}

// NewReportView derives the results screen from report. expanded reports the
// per-package toggle state and may be nil.
func NewReportView(report *model.ResultReport, expanded func(string) bool, loc *time.Location) ReportView {
	if report == nil {
		return ReportView{}
	}
	return ReportView{
		Summary:      NewSummaryView(report),
		Packages:     NewPackageViews(report, expanded, loc),
		Unstreamable: NewUnstreamableView(report.Data.UnstreamableGames, loc),
		Uncovered:    GameRows(report.Data.UncoveredGames, loc),
	}
}

// NewSummaryView builds the summary block.
func NewSummaryView(report *model.ResultReport) SummaryView {
	sv := SummaryView{
		TotalCost:        FormatCost(report.Data.TotalCost),
		Coverage:         report.Data.CoverageRatio,
		WeightedCoverage: report.Data.WeightedCoverage,
		MainLeague:       report.Meta.MainLeague,
		Teams:            strings.Join(report.Meta.TeamsRequested, ", "),
	}
	if tr := report.Meta.TimeRange; tr != nil && tr.Start != "" {
		sv.TimeRange = tr.Start + " – " + tr.End
	}
	if report.Meta.RequestDurationMS > 0 {
		sv.ServerDuration = FormatDuration(time.Duration(report.Meta.RequestDurationMS * float64(time.Millisecond)))
	}
	return sv
}

// NewPackageViews builds one PackageView per selected package, in report order.
func NewPackageViews(report *model.ResultReport, expanded func(string) bool, loc *time.Location) []PackageView {
	views := make([]PackageView, 0, len(report.Data.SelectedPackages))
	for _, pkg := range report.Data.SelectedPackages {
		views = append(views, NewPackageView(pkg, expanded != nil && expanded(pkg.Name), loc))
	}
	return views
}

// NewPackageView builds a single package block.
func NewPackageView(pkg model.Package, expanded bool, loc *time.Location) PackageView {
	return PackageView{
		Name:              pkg.Name,
		Cost:              FormatCost(pkg.CostInEuro),
		SubscriptionLabel: SubscriptionLabel(pkg.SubscriptionType),
		ActiveMonths:      JoinMonths(pkg.ActiveMonths),
		GameCount:         len(pkg.GamesCovered),
		Games:             GameRows(pkg.GamesCovered, loc),
		Expanded:          expanded,
	}
}

// NewUnstreamableView returns nil when there is nothing to show.
func NewUnstreamableView(games []model.Game, loc *time.Location) *UnstreamableView {
	if len(games) == 0 {
		return nil
	}
	return &UnstreamableView{Games: GameRows(games, loc)}
}

// GameRows converts games to rows keyed by home, away and date.
func GameRows(games []model.Game, loc *time.Location) []GameRow {
	if len(games) == 0 {
		return nil
	}
	rows := make([]GameRow, 0, len(games))
	for _, g := range games {
		rows = append(rows, GameRow{
			Key:        g.Key(),
			Title:      g.Title(),
			Tournament: g.Tournament,
			Date:       FormatGameDate(g.Date, loc),
		})
	}
	return rows
}
