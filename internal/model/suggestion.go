package model

// SuggestionList is the response of the search endpoint.
// It is valid only for the query that produced it.
type SuggestionList struct {
	Suggestions []string `json:"suggestions"`
}

// PopularItems is the curated default shown before any search.
type PopularItems struct {
	Status      string   `json:"status" yaml:"status" toml:"status"`
	Teams       []string `json:"popular_teams" yaml:"teams" toml:"teams"`
	Nations     []string `json:"nations" yaml:"nations" toml:"nations"`
	Tournaments []string `json:"tournaments" yaml:"tournaments" toml:"tournaments"`
}

// IsEmpty reports whether all three groups are empty.
func (p PopularItems) IsEmpty() bool {
	return len(p.Teams) == 0 && len(p.Nations) == 0 && len(p.Tournaments) == 0
}

// Default popular entities served by the fixture server.
var (
	DefaultPopularTeams = []string{
		"Bayern München",
		"Borussia Dortmund",
		"RB Leipzig",
		"Real Madrid",
		"Barcelona",
		"Manchester City",
		"Paris Saint-Germain",
	}
	DefaultPopularNations = []string{
		"Deutschland",
		"Spanien",
		"England",
		"Frankreich",
		"Italien",
		"Brasilien",
		"Argentinien",
	}
	DefaultPopularTournaments = []string{
		"UEFA Champions League",
		"Bundesliga",
		"DFB-Pokal",
		"Premier League",
		"LaLiga",
	}
)

// DefaultPopularItems returns a copy of the built-in popular lists.
func DefaultPopularItems() PopularItems {
	return PopularItems{
		Status:      "success",
		Teams:       append([]string(nil), DefaultPopularTeams...),
		Nations:     append([]string(nil), DefaultPopularNations...),
		Tournaments: append([]string(nil), DefaultPopularTournaments...),
	}
}
