package model

import "time"

// TimeRange is the window of fixtures the service considered.
type TimeRange struct {
	Start string `json:"start" yaml:"start" toml:"start"`
	End   string `json:"end" yaml:"end" toml:"end"`
}

// ReportMeta describes the request as understood by the service.
// TeamsRequested may differ from what the client sent if the service normalised names.
type ReportMeta struct {
	TimeRange         *TimeRange `json:"timeRange,omitempty" yaml:"time_range,omitempty" toml:"time_range,omitempty"`
	MainLeague        string     `json:"mainLeague" yaml:"main_league" toml:"main_league"`
	ServerTime        string     `json:"serverTime,omitempty" yaml:"server_time,omitempty" toml:"server_time,omitempty"`
	TeamsRequested    []string   `json:"teamsRequested" yaml:"teams_requested" toml:"teams_requested"`
	RequestDurationMS float64    `json:"requestDurationMS,omitempty" yaml:"request_duration_ms,omitempty" toml:"request_duration_ms,omitempty"`
}

// ReportData carries the chosen packages and their coverage.
// CoverageRatio and WeightedCoverage are pre-formatted by the service and shown verbatim.
type ReportData struct {
	CoverageRatio     string    `json:"coverage_ratio" yaml:"coverage_ratio" toml:"coverage_ratio"`
	WeightedCoverage  string    `json:"weighted_coverage" yaml:"weighted_coverage" toml:"weighted_coverage"`
	SelectedPackages  []Package `json:"selected_packages" yaml:"selected_packages" toml:"selected_packages"`
	UnstreamableGames []Game    `json:"unstreamable_games" yaml:"unstreamable_games" toml:"unstreamable_games"`
	UncoveredGames    []Game    `json:"uncovered_games,omitempty" yaml:"uncovered_games,omitempty" toml:"uncovered_games,omitempty"`
	TotalCost         float64   `json:"total_cost" yaml:"total_cost" toml:"total_cost"`
}

// ResultReport is the full response of the streaming-combinations endpoint.
type ResultReport struct {
	Status string     `json:"status" yaml:"status" toml:"status"`
	Meta   ReportMeta `json:"meta" yaml:"meta" toml:"meta"`
	Data   ReportData `json:"data" yaml:"data" toml:"data"`
}

// IsEmpty reports whether the service selected no packages.
func (r *ResultReport) IsEmpty() bool {
	return r == nil || len(r.Data.SelectedPackages) == 0
}

// Package looks up a selected package by name.
func (r *ResultReport) Package(name string) (Package, bool) {
	if r == nil {
		return Package{}, false
	}
	for _, p := range r.Data.SelectedPackages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// GameCount is the number of covered games summed over all packages.
func (r *ResultReport) GameCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, p := range r.Data.SelectedPackages {
		total += len(p.GamesCovered)
	}
	return total
}

// ResultQuery is the input of one streaming-combinations request.
type ResultQuery struct {
	StartDate       time.Time
	LiveOnly        *bool
	Teams           []string
	MaxCombinations int
}
