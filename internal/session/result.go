package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/streamcheck/internal/api"
	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/service"
)

// State is the phase of a report fetch cycle.
type State int

const (
	// StateIdle means no fetch was started yet.
	StateIdle State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateSuccess means a report with at least one package is available.
	StateSuccess
	// StateError means the fetch failed; Message explains why.
	StateError
	// StateEmpty means the service answered with zero packages.
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the cycle has finished.
func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateError || s == StateEmpty
}

// EmptyMessage is shown when the service found no games for the selection.
const EmptyMessage = "Keine Spiele gefunden"

// ResultRequest is one pending report fetch.
type ResultRequest struct {
	src   service.ResultSource
	Query model.ResultQuery
	Token uint64
}

// ResultOutcome is the result of running a ResultRequest.
type ResultOutcome struct {
	Err      error
	Report   *model.ResultReport
	Token    uint64
	Duration time.Duration
}

// Run fetches the report from the session's source. It is safe to call from any goroutine.
func (r *ResultRequest) Run(ctx context.Context) ResultOutcome {
	start := time.Now()
	report, err := r.src.StreamingCombinations(ctx, r.Query)
	return ResultOutcome{
		Token:    r.Token,
		Report:   report,
		Err:      err,
		Duration: time.Since(start),
	}
}

// ResultView is an immutable snapshot of a ResultSession.
type ResultView struct {
	StartDate time.Time
	Err       error
	Report    *model.ResultReport
	Expanded  map[string]bool
	Message   string
	Teams     []string
	State     State
	Token     uint64
}

// IsExpanded reports whether the package's game list is open.
func (v ResultView) IsExpanded(name string) bool {
	return v.Expanded[name]
}

// ResultOption customizes a ResultSession.
type ResultOption func(*ResultSession)

// WithMaxCombinations sets max_combinations on every request.
func WithMaxCombinations(n int) ResultOption {
	return func(s *ResultSession) {
		s.maxCombinations = n
	}
}

// WithLiveOnly sets live_only on every request.
func WithLiveOnly(liveOnly bool) ResultOption {
	return func(s *ResultSession) {
		s.liveOnly = &liveOnly
	}
}

// ResultSession owns the fetch lifecycle for one (selection, start date) pair.
type ResultSession struct {
	startDate       time.Time
	err             error
	report          *model.ResultReport
	expanded        map[string]bool
	liveOnly        *bool
	src             service.ResultSource
	message         string
	teams           []string
	token           uint64
	maxCombinations int
	state           State
	mu              sync.Mutex
	closed          bool
}

// NewResultSession creates an idle session whose requests go to src.
func NewResultSession(src service.ResultSource, opts ...ResultOption) *ResultSession {
	s := &ResultSession{
		src:      src,
		expanded: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start discards the current state and enters Loading for teams and startDate.
// A request URL that cannot be built moves the session to Error and returns nil.
func (s *ResultSession) Start(teams []string, startDate time.Time) *ResultRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	s.teams = append([]string(nil), teams...)
	s.startDate = startDate
	s.report = nil
	s.expanded = make(map[string]bool)

	query := model.ResultQuery{
		Teams:           append([]string(nil), teams...),
		StartDate:       startDate,
		MaxCombinations: s.maxCombinations,
		LiveOnly:        s.liveOnly,
	}

	if s.src == nil {
		s.fail(fmt.Errorf("%w: no result source", common.ErrMissingConfig))
		return nil
	}
	if _, err := s.src.ResultURL(query); err != nil {
		s.fail(err)
		return nil
	}

	s.state = StateLoading
	s.err = nil
	s.message = ""
	return &ResultRequest{src: s.src, Query: query, Token: s.token}
}

// Restart re-enters Loading with the previous teams and a new start date.
func (s *ResultSession) Restart(startDate time.Time) *ResultRequest {
	s.mu.Lock()
	teams := s.teams
	s.mu.Unlock()
	return s.Start(teams, startDate)
}

// Apply settles the cycle identified by out.Token. Outcomes for superseded
// requests, or arriving after Close, are dropped. It reports whether state changed.
func (s *ResultSession) Apply(out ResultOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || out.Token != s.token || s.state != StateLoading {
		return false
	}

	switch {
	case out.Err != nil:
		s.fail(out.Err)
	case out.Report.IsEmpty():
		s.state = StateEmpty
		s.report = out.Report
		s.err = common.ErrEmptyResult
		s.message = EmptyMessage
	default:
		s.state = StateSuccess
		s.report = out.Report
		s.err = nil
		s.message = ""
	}
	s.expanded = make(map[string]bool)
	return true
}

func (s *ResultSession) fail(err error) {
	s.state = StateError
	s.report = nil
	s.err = err
	s.message = api.Describe(err)
}

// ToggleExpanded flips the game-list visibility of one package. It has no
// effect outside StateSuccess or for unknown packages.
func (s *ResultSession) ToggleExpanded(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSuccess {
		return false
	}
	if _, ok := s.report.Package(name); !ok {
		return false
	}
	s.expanded[name] = !s.expanded[name]
	return s.expanded[name]
}

// State returns the current phase.
func (s *ResultSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StartDate returns the start date of the current cycle.
func (s *ResultSession) StartDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startDate
}

// Snapshot returns a copy of the session state for rendering.
func (s *ResultSession) Snapshot() ResultView {
	s.mu.Lock()
	defer s.mu.Unlock()

	expanded := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		expanded[k] = v
	}
	return ResultView{
		State:     s.state,
		Report:    s.report,
		Err:       s.err,
		Message:   s.message,
		Teams:     append([]string(nil), s.teams...),
		StartDate: s.startDate,
		Token:     s.token,
		Expanded:  expanded,
	}
}

// Close marks the session as torn down. Outcomes arriving later are dropped.
func (s *ResultSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
