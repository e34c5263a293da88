// Package fixture serves a deterministic stand-in for the streaming-combination
// service so the client can be exercised offline and in tests.
package fixture

import (
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
)

// Offer is a streaming package in the fixture catalog.
type Offer struct {
	Name        string
	Type        model.SubscriptionType
	Tournaments []string
	PriceCents  int
	Live        bool
}

// Covers reports whether the offer streams games of the tournament.
func (o Offer) Covers(tournament string) bool {
	for _, t := range o.Tournaments {
		if t == tournament {
			return true
		}
	}
	return false
}

// Fixture is a scheduled game relative to the requested start date.
type Fixture struct {
	HomeTeam   string
	AwayTeam   string
	Tournament string
	Importance float64
	DayOffset  int
	Hour       int
	Minute     int
}

// At materialises the fixture for a schedule starting at start.
func (f Fixture) At(start time.Time) model.Game {
	day := start.UTC().Truncate(24*time.Hour).AddDate(0, 0, f.DayOffset)
	kickoff := day.Add(time.Duration(f.Hour)*time.Hour + time.Duration(f.Minute)*time.Minute)
	return model.Game{
		HomeTeam:   f.HomeTeam,
		AwayTeam:   f.AwayTeam,
		Tournament: f.Tournament,
		Date:       kickoff.Format(time.RFC3339),
		Importance: f.Importance,
	}
}

// Catalog is the fixture data set.
type Catalog struct {
	Popular  model.PopularItems
	Offers   []Offer
	Fixtures []Fixture
}

// DefaultCatalog returns the built-in data set.
func DefaultCatalog() Catalog {
	return Catalog{
		Popular: model.DefaultPopularItems(),
		Offers: []Offer{
			{Name: "Sky Supersport", Type: model.SubscriptionMonthly, PriceCents: 2500, Live: true,
				Tournaments: []string{"Bundesliga", "DFB-Pokal", "Premier League"}},
			{Name: "DAZN Unlimited", Type: model.SubscriptionMonthly, PriceCents: 2999, Live: true,
				Tournaments: []string{"Bundesliga", "UEFA Champions League", "LaLiga"}},
			{Name: "Amazon Prime Video", Type: model.SubscriptionYearly, PriceCents: 8990, Live: true,
				Tournaments: []string{"UEFA Champions League"}},
			{Name: "MagentaTV MegaSport", Type: model.SubscriptionMonthly, PriceCents: 1000, Live: true,
				Tournaments: []string{"UEFA Nations League"}},
			{Name: "Sportschau Highlights", Type: model.SubscriptionMonthly, PriceCents: 0, Live: false,
				Tournaments: []string{"Bundesliga", "DFB-Pokal", "UEFA Nations League"}},
		},
		Fixtures: []Fixture{
			{DayOffset: 1, Hour: 18, Minute: 30, HomeTeam: "Bayern München", AwayTeam: "Borussia Dortmund", Tournament: "Bundesliga", Importance: 0.95},
			{DayOffset: 2, Hour: 15, Minute: 30, HomeTeam: "RB Leipzig", AwayTeam: "Bayern München", Tournament: "Bundesliga", Importance: 0.7},
			{DayOffset: 2, Hour: 15, Minute: 30, HomeTeam: "Borussia Dortmund", AwayTeam: "VfB Stuttgart", Tournament: "Bundesliga", Importance: 0.6},
			{DayOffset: 3, Hour: 21, HomeTeam: "Real Madrid", AwayTeam: "Barcelona", Tournament: "LaLiga", Importance: 1.0},
			{DayOffset: 4, Hour: 17, Minute: 30, HomeTeam: "Manchester City", AwayTeam: "Arsenal", Tournament: "Premier League", Importance: 0.85},
			{DayOffset: 5, Hour: 21, HomeTeam: "Bayern München", AwayTeam: "Real Madrid", Tournament: "UEFA Champions League", Importance: 1.0},
			{DayOffset: 6, Hour: 21, HomeTeam: "Paris Saint-Germain", AwayTeam: "Manchester City", Tournament: "UEFA Champions League", Importance: 0.9},
			{DayOffset: 8, Hour: 20, Minute: 45, HomeTeam: "Borussia Dortmund", AwayTeam: "VfB Stuttgart", Tournament: "DFB-Pokal", Importance: 0.6},
			{DayOffset: 10, Hour: 20, Minute: 45, HomeTeam: "Deutschland", AwayTeam: "Frankreich", Tournament: "UEFA Nations League", Importance: 0.8},
			{DayOffset: 11, Hour: 20, Minute: 45, HomeTeam: "Spanien", AwayTeam: "England", Tournament: "UEFA Nations League", Importance: 0.8},
			{DayOffset: 12, Hour: 20, HomeTeam: "Italien", AwayTeam: "Brasilien", Tournament: "Testspiel", Importance: 0.4},
			{DayOffset: 14, Hour: 1, HomeTeam: "Argentinien", AwayTeam: "Deutschland", Tournament: "Testspiel", Importance: 0.5},
			{DayOffset: 33, Hour: 21, HomeTeam: "Barcelona", AwayTeam: "Bayern München", Tournament: "UEFA Champions League", Importance: 0.95},
			{DayOffset: 35, Hour: 15, Minute: 30, HomeTeam: "Bayern München", AwayTeam: "RB Leipzig", Tournament: "Bundesliga", Importance: 0.75},
		},
	}
}

// Entities returns every team, nation and tournament known to the catalog,
// popular entries first, without duplicates.
func (c Catalog) Entities() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, group := range [][]string{c.Popular.Teams, c.Popular.Tournaments, c.Popular.Nations} {
		for _, name := range group {
			add(name)
		}
	}
	for _, f := range c.Fixtures {
		add(f.HomeTeam)
		add(f.AwayTeam)
		add(f.Tournament)
	}
	return out
}
