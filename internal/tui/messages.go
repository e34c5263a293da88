package tui

import (
	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/session"
)

// Async operation messages. Each carries the token of the request that
// produced it so stale replies can be dropped by the sessions.
type suggestionsMsg struct {
	outcome session.SuggestionOutcome
}

type popularMsg struct {
	outcome session.PopularOutcome
}

type resultMsg struct {
	query   model.ResultQuery
	outcome session.ResultOutcome
}

type historySavedMsg struct {
	err error
	id  int64
}

// focusArea is the widget receiving key input.
type focusArea int

const (
	focusList focusArea = iota
	focusQuery
	focusDate
)
