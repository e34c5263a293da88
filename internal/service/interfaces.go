// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
)

// SuggestionSource serves popular entities and search suggestions.
type SuggestionSource interface {
	Popular(ctx context.Context) (model.PopularItems, error)
	Search(ctx context.Context, query string) (model.SuggestionList, error)
}

// ResultSource computes streaming-package combinations for a selection.
// ResultURL returns the request URL StreamingCombinations would use for query.
type ResultSource interface {
	StreamingCombinations(ctx context.Context, query model.ResultQuery) (*model.ResultReport, error)
	ResultURL(query model.ResultQuery) (string, error)
}

// HistoryEntry is a stored report together with the request that produced it.
type HistoryEntry struct {
	CreatedAt time.Time
	StartDate time.Time
	Report    *model.ResultReport
	Teams     []string
	ID        int64
}

// HistoryStore persists successful reports.
type HistoryStore interface {
	SaveReport(ctx context.Context, query model.ResultQuery, report *model.ResultReport) (int64, error)
	GetReport(ctx context.Context, id int64) (*HistoryEntry, error)
	ListReports(ctx context.Context, limit int) ([]HistoryEntry, error)
	ClearReports(ctx context.Context) (int64, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
