package fixture

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
)

const (
	defaultMaxCombinations = 3
	searchLimit            = 10
)

// Request mirrors the query parameters of the combinations endpoint.
type Request struct {
	StartDate       time.Time
	Teams           []string
	MaxCombinations int
	LiveOnly        bool
}

// Search returns up to ten entities starting with query, ignoring case.
func (c Catalog) Search(query string) []string {
	if len([]rune(query)) < 2 {
		return []string{}
	}
	prefix := strings.ToLower(query)
	matches := []string{}
	for _, name := range c.Entities() {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			matches = append(matches, name)
			if len(matches) == searchLimit {
				break
			}
		}
	}
	return matches
}

// Combine builds a report for req. Offers are picked greedily by newly covered
// games per euro; this is canned data, not an optimiser.
func (c Catalog) Combine(req Request) *model.ResultReport {
	if req.MaxCombinations <= 0 {
		req.MaxCombinations = defaultMaxCombinations
	}

	relevant := c.relevantGames(req)
	offers := c.eligibleOffers(req.LiveOnly)

	var streamable, unstreamable []model.Game
	for _, g := range relevant {
		if anyCovers(offers, g.Tournament) {
			streamable = append(streamable, g)
		} else {
			unstreamable = append(unstreamable, g)
		}
	}

	covered := make(map[string]bool)
	var selected []model.Package
	var totalCost float64
	for len(selected) < req.MaxCombinations {
		best, bestGames := pickBest(offers, streamable, covered)
		if bestGames == nil {
			break
		}
		pkg := packageFor(best, bestGames)
		selected = append(selected, pkg)
		totalCost += pkg.CostInEuro
		for _, g := range bestGames {
			covered[g.Key()] = true
		}
		offers = removeOffer(offers, best.Name)
	}

	var uncovered []model.Game
	for _, g := range streamable {
		if !covered[g.Key()] {
			uncovered = append(uncovered, g)
		}
	}

	return &model.ResultReport{
		Status: "success",
		Meta: model.ReportMeta{
			MainLeague:     mainLeague(relevant),
			TeamsRequested: append([]string{}, req.Teams...),
			TimeRange:      timeRange(req.StartDate, relevant),
		},
		Data: model.ReportData{
			SelectedPackages:  nonNilPackages(selected),
			TotalCost:         roundCents(totalCost),
			CoverageRatio:     ratio(len(covered), len(relevant)),
			WeightedCoverage:  ratio64(weight(relevant, covered), weight(relevant, nil)),
			UnstreamableGames: nonNilGames(unstreamable),
			UncoveredGames:    uncovered,
		},
	}
}

func (c Catalog) relevantGames(req Request) []model.Game {
	wanted := make(map[string]bool, len(req.Teams))
	for _, t := range req.Teams {
		wanted[t] = true
	}
	start := req.StartDate.UTC()

	var games []model.Game
	for _, f := range c.Fixtures {
		if !wanted[f.HomeTeam] && !wanted[f.AwayTeam] && !wanted[f.Tournament] {
			continue
		}
		games = append(games, f.At(start))
	}
	sort.SliceStable(games, func(i, j int) bool { return games[i].Date < games[j].Date })
	return games
}

func (c Catalog) eligibleOffers(liveOnly bool) []Offer {
	offers := make([]Offer, 0, len(c.Offers))
	for _, o := range c.Offers {
		if liveOnly && !o.Live {
			continue
		}
		offers = append(offers, o)
	}
	return offers
}

func anyCovers(offers []Offer, tournament string) bool {
	for _, o := range offers {
		if o.Covers(tournament) {
			return true
		}
	}
	return false
}

func pickBest(offers []Offer, games []model.Game, covered map[string]bool) (Offer, []model.Game) {
	var (
		best      Offer
		bestGames []model.Game
		bestScore float64
	)
	for _, o := range offers {
		var gained []model.Game
		for _, g := range games {
			if !covered[g.Key()] && o.Covers(g.Tournament) {
				gained = append(gained, g)
			}
		}
		if len(gained) == 0 {
			continue
		}
		cost := offerCost(o, gained)
		score := float64(len(gained)) / (cost + 1)
		if bestGames == nil || score > bestScore {
			best, bestGames, bestScore = o, gained, score
		}
	}
	return best, bestGames
}

func packageFor(o Offer, games []model.Game) model.Package {
	return model.Package{
		Name:             o.Name,
		CostInEuro:       offerCost(o, games),
		GamesCovered:     games,
		SubscriptionType: o.Type,
		ActiveMonths:     activeMonths(games),
	}
}

// offerCost is the yearly price, or the monthly price times the months with games.
func offerCost(o Offer, games []model.Game) float64 {
	price := float64(o.PriceCents) / 100
	if o.Type.IsYearly() {
		return price
	}
	return roundCents(price * float64(len(activeMonths(games))))
}

func activeMonths(games []model.Game) []string {
	seen := make(map[string]bool)
	months := []string{}
	for _, g := range games {
		t, err := time.Parse(time.RFC3339, g.Date)
		if err != nil {
			continue
		}
		m := t.Format("2006-01")
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Strings(months)
	return months
}

func removeOffer(offers []Offer, name string) []Offer {
	out := offers[:0:0]
	for _, o := range offers {
		if o.Name != name {
			out = append(out, o)
		}
	}
	return out
}

func mainLeague(games []model.Game) string {
	counts := make(map[string]int)
	best := ""
	for _, g := range games {
		counts[g.Tournament]++
		if best == "" || counts[g.Tournament] > counts[best] {
			best = g.Tournament
		}
	}
	return best
}

func timeRange(start time.Time, games []model.Game) *model.TimeRange {
	end := start.UTC()
	if n := len(games); n > 0 {
		if t, err := time.Parse(time.RFC3339, games[n-1].Date); err == nil {
			end = t
		}
	}
	return &model.TimeRange{
		Start: start.UTC().Format(time.RFC3339),
		End:   end.Format(time.RFC3339),
	}
}

func weight(games []model.Game, covered map[string]bool) float64 {
	var total float64
	for _, g := range games {
		if covered == nil || covered[g.Key()] {
			total += g.Importance
		}
	}
	return total
}

func ratio(part, whole int) string {
	return ratio64(float64(part), float64(whole))
}

func ratio64(part, whole float64) string {
	if whole == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func nonNilPackages(p []model.Package) []model.Package {
	if p == nil {
		return []model.Package{}
	}
	return p
}

func nonNilGames(g []model.Game) []model.Game {
	if g == nil {
		return []model.Game{}
	}
	return g
}
