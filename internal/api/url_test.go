package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"https://check24.zapto.org/", "https://check24.zapto.org"},
		{"https://check24.zapto.org", "https://check24.zapto.org"},
		{"  http://localhost:8000/ ", "http://localhost:8000"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, normalizeBaseURL(c.input))
	}
}

func TestBuildResultURL_SingleTeam(t *testing.T) {
	raw, err := BuildResultURL("https://check24.zapto.org", model.ResultQuery{
		Teams:     []string{"Bayern München"},
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/streaming-combinations/", u.Path)
	assert.Equal(t, []string{"Bayern München"}, u.Query()["teams"])
	assert.Equal(t, "2025-01-01T00:00:00Z", u.Query().Get("start_date"))
	assert.Contains(t, raw, "teams=Bayern+M%C3%BCnchen")
	assert.Contains(t, raw, "start_date=2025-01-01T00%3A00%3A00Z")
}

func TestBuildResultURL_ConvertsToUTCAndKeepsOrder(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	raw, err := BuildResultURL("http://localhost:8000/", model.ResultQuery{
		Teams:     []string{"Real Madrid", "Bayern München", "Arsenal"},
		StartDate: time.Date(2025, 3, 1, 0, 30, 0, 0, berlin),
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Real Madrid", "Bayern München", "Arsenal"}, u.Query()["teams"])
	assert.Equal(t, "2025-02-28T23:30:00Z", u.Query().Get("start_date"))
}

func TestBuildResultURL_RoundTripsSelection(t *testing.T) {
	selection := []string{"Bayern München", "FC Barcelona"}
	raw, err := BuildResultURL("https://check24.zapto.org", model.ResultQuery{Teams: selection, StartDate: time.Now()})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.ElementsMatch(t, selection, u.Query()["teams"])
}

func TestBuildResultURL_InvalidBase(t *testing.T) {
	tests := []struct {
		name string
		base string
	}{
		{name: "unparseable", base: "http://[::1"},
		{name: "missing scheme", base: "check24.zapto.org"},
		{name: "empty", base: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildResultURL(tt.base, model.ResultQuery{Teams: []string{"Arsenal"}, StartDate: time.Now()})
			var urlErr *URLConstructionError
			require.ErrorAs(t, err, &urlErr)
			assert.Equal(t, "Ungültige URL: Die URL konnte nicht erstellt werden", Describe(err))
		})
	}
}

func TestBuildSearchURL(t *testing.T) {
	raw, err := BuildSearchURL("https://check24.zapto.org", "Bay")
	require.NoError(t, err)
	assert.Equal(t, "https://check24.zapto.org/api/v1/search?query=Bay", raw)

	raw, err = BuildPopularURL("https://check24.zapto.org/")
	require.NoError(t, err)
	assert.Equal(t, "https://check24.zapto.org/api/v1/suggestions/", raw)
}

func TestParseStartDate(t *testing.T) {
	got, err := ParseStartDate("2025-01-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseStartDate("2025-01-01T12:00:00+01:00", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01T11:00:00Z", got.UTC().Format(StartDateLayout))

	_, err = ParseStartDate("tomorrow", time.UTC)
	assert.Error(t, err)
}
