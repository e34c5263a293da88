// Package session holds the client-side state machines around the remote service:
// incremental search suggestions and the package-report fetch cycle.
//
// Both sessions follow the same pattern. A mutating call returns a request
// stamped with a monotonically increasing token; the request runs off the UI
// goroutine; its outcome is handed back to Apply, which drops it if a newer
// request was issued or the session was closed in the meantime.
package session

import (
	"context"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/selection"
	"github.com/Veraticus/streamcheck/internal/service"
)

// MinQueryLength is the shortest query that triggers a suggestion fetch.
const MinQueryLength = 2

// SuggestionRequest is one pending search.
type SuggestionRequest struct {
	Query string
	Token uint64
}

// SuggestionOutcome is the result of running a SuggestionRequest.
type SuggestionOutcome struct {
	Err         error
	Query       string
	Suggestions []string
	Token       uint64
}

// Run fetches suggestions. It is safe to call from any goroutine.
func (r *SuggestionRequest) Run(ctx context.Context, src service.SuggestionSource) SuggestionOutcome {
	list, err := src.Search(ctx, r.Query)
	return SuggestionOutcome{
		Token:       r.Token,
		Query:       r.Query,
		Suggestions: list.Suggestions,
		Err:         err,
	}
}

// PopularRequest is the one-off popular-items fetch.
type PopularRequest struct {
	Token uint64
}

// PopularOutcome is the result of running a PopularRequest.
type PopularOutcome struct {
	Err   error
	Items model.PopularItems
	Token uint64
}

// Run fetches popular items. It is safe to call from any goroutine.
func (r *PopularRequest) Run(ctx context.Context, src service.SuggestionSource) PopularOutcome {
	items, err := src.Popular(ctx)
	return PopularOutcome{Token: r.Token, Items: items, Err: err}
}

// SearchSession owns the query text and the suggestions returned for it.
type SearchSession struct {
	selection    *selection.Store
	query        string
	suggestions  []string
	popular      model.PopularItems
	token        uint64
	popularToken uint64
	mu           sync.Mutex
	closed       bool
}

// NewSearchSession creates a session filtering against sel.
func NewSearchSession(sel *selection.Store) *SearchSession {
	if sel == nil {
		sel = selection.NewStore()
	}
	return &SearchSession{selection: sel}
}

// SetQuery replaces the query. Queries shorter than MinQueryLength clear the
// suggestions immediately and return nil; longer ones return a request to run.
// Every call invalidates requests issued before it.
func (s *SearchSession) SetQuery(text string) *SuggestionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = text
	s.token++

	if utf8.RuneCountInString(text) < MinQueryLength {
		s.suggestions = nil
		return nil
	}
	return &SuggestionRequest{Query: text, Token: s.token}
}

// Apply installs the outcome if it answers the latest query. Failed fetches
// keep the current suggestions. It reports whether state changed.
func (s *SearchSession) Apply(out SuggestionOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || out.Token != s.token {
		return false
	}
	if out.Err != nil {
		slog.Debug("suggestion fetch failed", "query", out.Query, "error", out.Err)
		return false
	}
	s.suggestions = append([]string(nil), out.Suggestions...)
	return true
}

// Clear resets the query and suggestions and discards in-flight searches.
func (s *SearchSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = ""
	s.suggestions = nil
	s.token++
}

// Query returns the current query text.
func (s *SearchSession) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// IsActive reports whether a query is being typed.
func (s *SearchSession) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query != ""
}

// Suggestions returns the raw suggestion list for the current query.
func (s *SearchSession) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.suggestions...)
}

// VisibleSuggestions returns the suggestions that are not already selected,
// in the order the service returned them.
func (s *SearchSession) VisibleSuggestions() []string {
	s.mu.Lock()
	suggestions := s.suggestions
	s.mu.Unlock()

	visible := make([]string, 0, len(suggestions))
	for _, name := range suggestions {
		if !s.selection.Contains(name) {
			visible = append(visible, name)
		}
	}
	return visible
}

// LoadPopular returns a request for the popular items.
func (s *SearchSession) LoadPopular() *PopularRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popularToken++
	return &PopularRequest{Token: s.popularToken}
}

// ApplyPopular installs popular items. Failures keep the previous lists.
func (s *SearchSession) ApplyPopular(out PopularOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || out.Token != s.popularToken {
		return false
	}
	if out.Err != nil {
		slog.Debug("popular items fetch failed", "error", out.Err)
		return false
	}
	s.popular = out.Items
	return true
}

// Popular returns the last loaded popular items.
func (s *SearchSession) Popular() model.PopularItems {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popular
}

// Selection exposes the store the session filters against.
func (s *SearchSession) Selection() *selection.Store {
	return s.selection
}

// Close marks the session as torn down. Outcomes arriving later are dropped.
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
