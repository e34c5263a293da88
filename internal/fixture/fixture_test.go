package fixture

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Veraticus/streamcheck/internal/api"
	"github.com/Veraticus/streamcheck/internal/config"
	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestCatalog_Search(t *testing.T) {
	c := DefaultCatalog()

	assert.Equal(t, []string{"Bayern München"}, c.Search("bay"))
	assert.Contains(t, c.Search("Re"), "Real Madrid")
	assert.Empty(t, c.Search("B"))
	assert.Empty(t, c.Search("Zzz"))
	assert.LessOrEqual(t, len(c.Search("an")), searchLimit)
}

func TestCatalog_CombineBayern(t *testing.T) {
	report := DefaultCatalog().Combine(Request{
		Teams:           []string{"Bayern München"},
		StartDate:       start,
		MaxCombinations: 3,
		LiveOnly:        true,
	})

	require.NotEmpty(t, report.Data.SelectedPackages)
	assert.Equal(t, []string{"Bayern München"}, report.Meta.TeamsRequested)
	assert.Equal(t, "Bundesliga", report.Meta.MainLeague)
	assert.Equal(t, "100.0%", report.Data.CoverageRatio)
	assert.Empty(t, report.Data.UnstreamableGames)
	assert.Empty(t, report.Data.UncoveredGames)

	var sum float64
	for _, pkg := range report.Data.SelectedPackages {
		sum += pkg.CostInEuro
		for _, g := range pkg.GamesCovered {
			assert.True(t, g.Involves("Bayern München"), "%s does not involve the selection", g.Title())
		}
		assert.NotEmpty(t, pkg.ActiveMonths)
	}
	assert.InDelta(t, sum, report.Data.TotalCost, 0.001)
}

func TestCatalog_CombineReportsUnstreamable(t *testing.T) {
	report := DefaultCatalog().Combine(Request{
		Teams:     []string{"Italien"},
		StartDate: start,
		LiveOnly:  true,
	})

	assert.Empty(t, report.Data.SelectedPackages)
	assert.NotNil(t, report.Data.SelectedPackages, "encodes as [] not null")
	require.Len(t, report.Data.UnstreamableGames, 1)
	assert.Equal(t, "Brasilien", report.Data.UnstreamableGames[0].AwayTeam)
	assert.Equal(t, "0.0%", report.Data.CoverageRatio)
}

func TestCatalog_CombineRespectsMaxCombinations(t *testing.T) {
	report := DefaultCatalog().Combine(Request{
		Teams:           []string{"Bayern München", "Manchester City", "Deutschland"},
		StartDate:       start,
		MaxCombinations: 1,
		LiveOnly:        true,
	})

	assert.Len(t, report.Data.SelectedPackages, 1)
	assert.NotEmpty(t, report.Data.UncoveredGames)
}

func TestCatalog_CombineLiveOnly(t *testing.T) {
	req := Request{Teams: []string{"Deutschland"}, StartDate: start, MaxCombinations: 3}

	withHighlights := DefaultCatalog().Combine(req)
	names := packageNames(withHighlights)
	assert.Contains(t, names, "Sportschau Highlights")

	req.LiveOnly = true
	liveOnly := DefaultCatalog().Combine(req)
	assert.NotContains(t, packageNames(liveOnly), "Sportschau Highlights")
}

func TestFixture_AtUsesStartDay(t *testing.T) {
	g := Fixture{DayOffset: 2, Hour: 15, Minute: 30, HomeTeam: "A", AwayTeam: "B"}.At(time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-03-12T15:30:00Z", g.Date)
}

func TestRouter_Endpoints(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Now = func() time.Time { return start }
	srv := httptest.NewServer(NewRouter(cfg))
	defer srv.Close()

	apiCfg := config.DefaultAPIConfig()
	apiCfg.BaseURL = srv.URL
	apiCfg.SuggestionsPerMinute = 0
	apiCfg.ResultsPerMinute = 0
	client := api.NewClient(apiCfg)
	ctx := context.Background()

	popular, err := client.Popular(ctx)
	require.NoError(t, err)
	assert.Equal(t, "success", popular.Status)
	assert.Equal(t, model.DefaultPopularTeams, popular.Teams)

	list, err := client.Search(ctx, "Bor")
	require.NoError(t, err)
	assert.Equal(t, []string{"Borussia Dortmund"}, list.Suggestions)

	report, err := client.StreamingCombinations(ctx, model.ResultQuery{
		Teams:     []string{"Real Madrid", "Barcelona"},
		StartDate: start,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Real Madrid", "Barcelona"}, report.Meta.TeamsRequested)
	assert.NotEmpty(t, report.Data.SelectedPackages)
	assert.Equal(t, "2025-01-01T00:00:00Z", report.Meta.ServerTime)
	require.NotNil(t, report.Meta.TimeRange)
	assert.Equal(t, "2025-01-01T00:00:00Z", report.Meta.TimeRange.Start)
}

func TestRouter_DrivesResultSessionToEmpty(t *testing.T) {
	srv := httptest.NewServer(NewRouter(DefaultServerConfig()))
	defer srv.Close()

	apiCfg := config.DefaultAPIConfig()
	apiCfg.BaseURL = srv.URL

	s := session.NewResultSession(api.NewClient(apiCfg))
	req := s.Start([]string{"Unbekannter Verein"}, start)
	require.NotNil(t, req)
	require.True(t, s.Apply(req.Run(context.Background())))
	assert.Equal(t, session.StateEmpty, s.State())
}

func TestRouter_Validation(t *testing.T) {
	router := NewRouter(DefaultServerConfig())

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "missing teams", target: "/api/v1/streaming-combinations/", want: http.StatusUnprocessableEntity},
		{name: "bad date", target: "/api/v1/streaming-combinations/?teams=Arsenal&start_date=soon", want: http.StatusUnprocessableEntity},
		{name: "bad max", target: "/api/v1/streaming-combinations/?teams=Arsenal&max_combinations=0", want: http.StatusUnprocessableEntity},
		{name: "bad live", target: "/api/v1/streaming-combinations/?teams=Arsenal&live_only=maybe", want: http.StatusUnprocessableEntity},
		{name: "unknown route", target: "/api/v2/search", want: http.StatusNotFound},
		{name: "trailing slash search", target: "/api/v1/search/?query=Ar", want: http.StatusOK},
		{name: "health", target: "/health", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.SuggestionsPerMinute = 2
	router := NewRouter(cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions/", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_CORS(t *testing.T) {
	router := NewRouter(DefaultServerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?query=Ba", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body map[string][]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["suggestions"], "Barcelona")
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, DefaultServerConfig()) }()

	require.Eventually(t, func() bool {
		resp, getErr := http.Get("http://" + ln.Addr().String() + "/health")
		if getErr != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func packageNames(r *model.ResultReport) []string {
	names := make([]string, 0, len(r.Data.SelectedPackages))
	for _, p := range r.Data.SelectedPackages {
		names = append(names, p.Name)
	}
	return names
}
