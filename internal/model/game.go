// Package model defines the data types exchanged with the streaming-combination service.
package model

import "strings"

// Game is a single fixture as reported by the service.
// Date is kept as the raw wire string; formatting happens at render time.
type Game struct {
	HomeTeam   string  `json:"homeTeam" yaml:"home_team" toml:"home_team"`
	AwayTeam   string  `json:"awayTeam" yaml:"away_team" toml:"away_team"`
	Tournament string  `json:"tournament" yaml:"tournament" toml:"tournament"`
	Date       string  `json:"date" yaml:"date" toml:"date"`
	Importance float64 `json:"importance,omitempty" yaml:"importance,omitempty" toml:"importance,omitempty"`
}

// Key returns a composite identity for keyed containers.
// Two games can share a kickoff time, so the date alone is not unique.
func (g Game) Key() string {
	return strings.Join([]string{g.HomeTeam, g.AwayTeam, g.Date}, "|")
}

// Title renders the pairing as "Home vs Away".
func (g Game) Title() string {
	return g.HomeTeam + " vs " + g.AwayTeam
}

// Involves reports whether the entity plays in or hosts the game's tournament.
func (g Game) Involves(entity string) bool {
	return g.HomeTeam == entity || g.AwayTeam == entity || g.Tournament == entity
}
