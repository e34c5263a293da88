// Package api is the HTTP client for the streaming-combination service.
// It covers popular items, search suggestions and package combinations.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/config"
	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/service"
	"golang.org/x/time/rate"
)

const (
	maxErrorBody = 512
	userAgent    = "streamcheck"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(doer httpDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to the remote service. It is safe for concurrent use.
type Client struct {
	http              httpDoer
	suggestionLimiter *rate.Limiter
	resultLimiter     *rate.Limiter
	logger            *slog.Logger
	liveOnly          *bool
	baseURL           string
	retry             service.RetryOptions
	maxCombinations   int
}

var (
	_ service.SuggestionSource = (*Client)(nil)
	_ service.ResultSource     = (*Client)(nil)
)

// NewClient builds a client from cfg.
func NewClient(cfg config.APIConfig, opts ...Option) *Client {
	c := &Client{
		http:              &http.Client{Timeout: cfg.Timeout},
		suggestionLimiter: newLimiter(cfg.SuggestionsPerMinute),
		resultLimiter:     newLimiter(cfg.ResultsPerMinute),
		logger:            slog.Default(),
		liveOnly:          cfg.LiveOnly,
		baseURL:           normalizeBaseURL(cfg.BaseURL),
		retry:             cfg.Retry,
		maxCombinations:   cfg.MaxCombinations,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newLimiter returns nil for a non-positive rate, which disables limiting.
func newLimiter(perMinute float64) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perMinute/60.0), 1)
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Popular fetches the curated popular teams, nations and tournaments.
func (c *Client) Popular(ctx context.Context) (model.PopularItems, error) {
	var items model.PopularItems
	target, err := BuildPopularURL(c.baseURL)
	if err != nil {
		return items, err
	}
	if err := c.getJSON(ctx, c.suggestionLimiter, target, &items, popularFields...); err != nil {
		return model.PopularItems{}, err
	}
	return items, nil
}

// Search fetches suggestions for a partial query. The service does not
// throttle search, so neither does the client.
func (c *Client) Search(ctx context.Context, query string) (model.SuggestionList, error) {
	var list model.SuggestionList
	target, err := BuildSearchURL(c.baseURL, query)
	if err != nil {
		return list, err
	}
	if err := c.getJSON(ctx, nil, target, &list, searchFields...); err != nil {
		return model.SuggestionList{}, err
	}
	return list, nil
}

// ResultURL builds the streaming-combinations URL for query against the client's base.
// Client-level max_combinations and live_only apply when query leaves them unset.
func (c *Client) ResultURL(query model.ResultQuery) (string, error) {
	if query.MaxCombinations == 0 {
		query.MaxCombinations = c.maxCombinations
	}
	if query.LiveOnly == nil {
		query.LiveOnly = c.liveOnly
	}
	return BuildResultURL(c.baseURL, query)
}

// StreamingCombinations fetches the package report for query.
func (c *Client) StreamingCombinations(ctx context.Context, query model.ResultQuery) (*model.ResultReport, error) {
	target, err := c.ResultURL(query)
	if err != nil {
		return nil, err
	}

	var report model.ResultReport
	if err := c.getJSON(ctx, c.resultLimiter, target, &report, reportFields...); err != nil {
		return nil, err
	}
	return &report, nil
}

// getJSON performs a rate-limited GET and decodes the body into out.
// A body missing any of the required fields is a DecodeError.
// Transport failures are retried according to the configured policy.
func (c *Client) getJSON(ctx context.Context, limiter *rate.Limiter, target string, out any, required ...string) error {
	var body []byte
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		body, fetchErr = c.fetch(ctx, limiter, target)
		return fetchErr
	}, c.retry)
	if err != nil {
		return unwrapRetry(err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Body: string(body), Err: err}
	}
	if err := requireFields(body, required...); err != nil {
		return &DecodeError{Body: string(body), Err: err}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, limiter *rate.Limiter, target string) ([]byte, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: target, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &URLConstructionError{Base: c.baseURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, retryable(ctx, &TransportError{URL: target, Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPStatusError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retryable(ctx, &TransportError{URL: target, Err: fmt.Errorf("read body: %w", err)})
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &EmptyBodyError{URL: target}
	}
	return body, nil
}

// retryable marks a transport failure for retry unless the caller gave up.
func retryable(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}
	return &common.RetryableError{Err: err, Retryable: true}
}

// unwrapRetry strips retry bookkeeping so callers see the typed API error.
func unwrapRetry(err error) error {
	var (
		transportErr *TransportError
		statusErr    *HTTPStatusError
		emptyErr     *EmptyBodyError
		urlErr       *URLConstructionError
	)
	switch {
	case errors.As(err, &transportErr):
		return transportErr
	case errors.As(err, &statusErr):
		return statusErr
	case errors.As(err, &emptyErr):
		return emptyErr
	case errors.As(err, &urlErr):
		return urlErr
	default:
		return &TransportError{Err: err}
	}
}
