package tui

import (
	"context"

	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// requestContext derives the context for one network call.
func (m Model) requestContext() (context.Context, context.CancelFunc) {
	ctx := m.config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if m.config.RequestTimeout > 0 {
		return context.WithTimeout(ctx, m.config.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

// fetchSuggestions runs a search off the update loop.
func (m Model) fetchSuggestions(req *session.SuggestionRequest) tea.Cmd {
	if req == nil || m.config.Suggestions == nil {
		return nil
	}
	src := m.config.Suggestions
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return suggestionsMsg{outcome: req.Run(ctx, src)}
	}
}

// fetchPopular loads the popular items shown before any search.
func (m Model) fetchPopular() tea.Cmd {
	if m.config.Suggestions == nil {
		return nil
	}
	req := m.search.LoadPopular()
	src := m.config.Suggestions
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return popularMsg{outcome: req.Run(ctx, src)}
	}
}

// fetchResult runs a streaming-combinations request off the update loop.
func (m Model) fetchResult(req *session.ResultRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return resultMsg{query: req.Query, outcome: req.Run(ctx)}
	}
}

// saveHistory appends a successful report to the history store.
func (m Model) saveHistory(query model.ResultQuery, report *model.ResultReport) tea.Cmd {
	if m.config.History == nil || report == nil {
		return nil
	}
	store := m.config.History
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		id, err := store.SaveReport(ctx, query, report)
		if err != nil {
			common.LogError(err, "failed to save report", common.Fields{"teams": query.Teams})
		}
		return historySavedMsg{id: id, err: err}
	}
}
