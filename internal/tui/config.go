package tui

import (
	"context"
	"time"

	"github.com/Veraticus/streamcheck/internal/api"
	"github.com/Veraticus/streamcheck/internal/selection"
	"github.com/Veraticus/streamcheck/internal/service"
	"github.com/Veraticus/streamcheck/internal/session"
	"github.com/Veraticus/streamcheck/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Context        context.Context
	Suggestions    service.SuggestionSource
	Results        service.ResultSource
	History        service.HistoryStore
	Selection      *selection.Store
	Location       *time.Location
	Now            func() time.Time
	ResultOptions  []session.ResultOption
	RequestTimeout time.Duration
	Width          int
	Height         int
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// DefaultConfig returns the default TUI configuration.
func DefaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Context:        context.Background(),
		Location:       time.Local,
		Now:            time.Now,
		RequestTimeout: 30 * time.Second,
		Width:          80,
		Height:         24,
	}
}

// WithClient uses c for suggestions and results.
func WithClient(c *api.Client) Option {
	return func(cfg *Config) {
		cfg.Suggestions = c
		cfg.Results = c
	}
}

// WithSources sets the suggestion and result sources separately.
func WithSources(suggestions service.SuggestionSource, results service.ResultSource) Option {
	return func(cfg *Config) {
		cfg.Suggestions = suggestions
		cfg.Results = results
	}
}

// WithHistory stores every successful report in h.
func WithHistory(h service.HistoryStore) Option {
	return func(cfg *Config) {
		cfg.History = h
	}
}

// WithSelection starts the TUI with a pre-populated selection.
func WithSelection(sel *selection.Store) Option {
	return func(cfg *Config) {
		cfg.Selection = sel
	}
}

// WithResultOptions passes request options to the result session.
func WithResultOptions(opts ...session.ResultOption) Option {
	return func(cfg *Config) {
		cfg.ResultOptions = append(cfg.ResultOptions, opts...)
	}
}

// WithLocation sets the time zone game dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(cfg *Config) {
		if loc != nil {
			cfg.Location = loc
		}
	}
}

// WithClock overrides the clock used for the initial start date.
func WithClock(now func() time.Time) Option {
	return func(cfg *Config) {
		cfg.Now = now
	}
}

// WithRequestTimeout bounds every network call. Zero disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.RequestTimeout = d
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(cfg *Config) {
		cfg.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(cfg *Config) {
		cfg.Width = width
		cfg.Height = height
	}
}
