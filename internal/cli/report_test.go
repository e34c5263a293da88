package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/service"
	tuitest "github.com/Veraticus/streamcheck/internal/tui/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *model.ResultReport {
	return &model.ResultReport{
		Status: "success",
		Meta: model.ReportMeta{
			MainLeague:     "Bundesliga",
			TeamsRequested: []string{"Bayern München", "Borussia Dortmund"},
			TimeRange:      &model.TimeRange{Start: "2025-01-01", End: "2025-05-31"},
		},
		Data: model.ReportData{
			CoverageRatio:    "100.0%",
			WeightedCoverage: "98.5%",
			TotalCost:        59.98,
			SelectedPackages: []model.Package{
				{
					Name:             "DAZN",
					SubscriptionType: model.SubscriptionMonthly,
					CostInEuro:       29.99,
					ActiveMonths:     []string{"2025-01", "2025-02"},
					GamesCovered: []model.Game{
						{HomeTeam: "Bayern München", AwayTeam: "Borussia Dortmund", Tournament: "Bundesliga", Date: "2025-01-11T17:30:00Z"},
					},
				},
				{
					Name:             "Sky Sport",
					SubscriptionType: model.SubscriptionYearly,
					CostInEuro:       29.99,
				},
			},
			UnstreamableGames: []model.Game{
				{HomeTeam: "Brasilien", AwayTeam: "Deutschland", Tournament: "Freundschaftsspiel", Date: "2025-03-25T20:45:00Z"},
			},
		},
	}
}

func TestRenderReport(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderReport(&out, sampleReport(), RenderOptions{Location: time.UTC}))

	text := tuitest.StripANSI(out.String())
	assert.True(t, tuitest.ContainsInOrder(text,
		"Zusammenfassung",
		"Gesamtkosten: €59.98",
		"Abdeckung: 100.0%",
		"Gewichtete Abdeckung: 98.5%",
		"Ausgewählte Teams: Bayern München, Borussia Dortmund",
		"Hauptliga: Bundesliga",
		"Zeitraum: 2025-01-01 – 2025-05-31",
		"DAZN",
		"Kosten: €29.99 (Monats-Abo)",
		"Aktive Monate: 2025-01, 2025-02",
		"Anzahl Spiele: 1",
		"Sky Sport",
		"Kosten: €29.99 (Jahres-Abo)",
		"Anzahl Spiele: 0",
		"Nicht streambare Spiele",
		"Brasilien vs Deutschland",
		"Freundschaftsspiel - 25.03.2025, 20:45",
	), text)
	assert.NotContains(t, text, "Abgedeckte Spiele")
	assert.NotContains(t, text, "Nicht abgedeckte Spiele")
}

func TestRenderReport_ShowGames(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderReport(&out, sampleReport(), RenderOptions{Location: time.UTC, ShowGames: true}))

	text := tuitest.StripANSI(out.String())
	assert.True(t, tuitest.ContainsInOrder(text,
		"DAZN",
		"Abgedeckte Spiele:",
		"Bayern München vs Borussia Dortmund",
		"Bundesliga - 11.01.2025, 17:30",
		"Sky Sport",
	), text)
	// Packages without games do not print an empty list header.
	assert.Equal(t, 1, bytes.Count([]byte(text), []byte("Abgedeckte Spiele:")))
}

func TestRenderReport_OptionalBlocks(t *testing.T) {
	report := sampleReport()
	report.Meta.MainLeague = ""
	report.Meta.TimeRange = nil
	report.Meta.RequestDurationMS = 1500
	report.Data.UnstreamableGames = nil
	report.Data.UncoveredGames = []model.Game{
		{HomeTeam: "Mainz 05", AwayTeam: "Bayern München", Tournament: "DFB-Pokal", Date: "2025-02-04T19:45:00Z"},
	}

	var out bytes.Buffer
	require.NoError(t, RenderReport(&out, report, RenderOptions{Location: time.UTC}))

	text := tuitest.StripANSI(out.String())
	assert.NotContains(t, text, "Hauptliga:")
	assert.NotContains(t, text, "Zeitraum:")
	assert.NotContains(t, text, "Nicht streambare Spiele")
	assert.Contains(t, text, "Serverzeit: 1.5s")
	assert.True(t, tuitest.ContainsInOrder(text, "Nicht abgedeckte Spiele", "Mainz 05 vs Bayern München"), text)
}

func TestRenderReport_Empty(t *testing.T) {
	tests := []struct {
		report *model.ResultReport
		name   string
	}{
		{name: "nil report", report: nil},
		{name: "no packages", report: &model.ResultReport{Status: "success"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, RenderReport(&out, tt.report, RenderOptions{}))

			text := tuitest.StripANSI(out.String())
			assert.Contains(t, text, "Keine Spiele gefunden")
			assert.Contains(t, text, EmptyDetail)
			assert.NotContains(t, text, "Zusammenfassung")
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRenderReport_WriteError(t *testing.T) {
	err := RenderReport(failingWriter{}, sampleReport(), RenderOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}

func TestRenderPopular(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderPopular(&out, model.PopularItems{
		Teams:       []string{"Bayern München"},
		Tournaments: []string{"Bundesliga", "Champions League"},
	}))

	text := tuitest.StripANSI(out.String())
	assert.True(t, tuitest.ContainsInOrder(text,
		"Beliebte Vereine", "Bayern München",
		"Beliebte Turniere", "Bundesliga", "Champions League",
		"Beliebte Nationen", "Keine Einträge",
	), text)
}

func TestRenderList(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		expected []string
	}{
		{name: "items", items: []string{"Bayern München", "Bayer Leverkusen"}, expected: []string{"Vorschläge", "Bayern München", "Bayer Leverkusen"}},
		{name: "empty", items: nil, expected: []string{"Vorschläge", "Keine Vorschläge"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, RenderList(&out, "Vorschläge", tt.items, "Keine Vorschläge"))
			assert.True(t, tuitest.ContainsInOrder(tuitest.StripANSI(out.String()), tt.expected...))
		})
	}
}

func TestRenderHistory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RenderHistory(&out, nil, time.UTC))
		assert.Contains(t, out.String(), "Noch keine gespeicherten Vergleiche")
	})

	t.Run("entries", func(t *testing.T) {
		entries := []service.HistoryEntry{
			{
				ID:        2,
				CreatedAt: time.Date(2025, 1, 2, 9, 30, 0, 0, time.UTC),
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				Teams:     []string{"Bayern München", "Borussia Dortmund"},
				Report:    sampleReport(),
			},
			{
				ID:        1,
				CreatedAt: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC),
				StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				Teams:     []string{"Italien"},
			},
		}

		var out bytes.Buffer
		require.NoError(t, RenderHistory(&out, entries, time.UTC))

		text := tuitest.StripANSI(out.String())
		assert.True(t, tuitest.ContainsInOrder(text,
			"#2", "02.01.2025, 09:30", "ab 2025-01-01", "€59.98", "Bayern München, Borussia Dortmund",
			"#1", "01.01.2025, 08:00", "-", "Italien",
		), text)
	})
}
