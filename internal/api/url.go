package api

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/streamcheck/internal/model"
)

const (
	suggestionsPath  = "/api/v1/suggestions/"
	searchPath       = "/api/v1/search"
	combinationsPath = "/api/v1/streaming-combinations/"

	// StartDateLayout is the UTC wire format of start_date.
	StartDateLayout = "2006-01-02T15:04:05Z"
)

var errNotAbsolute = errors.New("base url must include scheme and host")

func normalizeBaseURL(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}

// endpointURL joins base and path and attaches params. Errors are URLConstructionErrors.
func endpointURL(base, path string, params url.Values) (string, error) {
	base = normalizeBaseURL(base)
	u, err := url.Parse(base + path)
	if err != nil {
		return "", &URLConstructionError{Base: base, Err: err}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &URLConstructionError{Base: base, Err: errNotAbsolute}
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String(), nil
}

// BuildResultURL builds the streaming-combinations request for query.
// One teams parameter is emitted per entity in selection order; Encode sorts
// keys but keeps the order of values within a key.
func BuildResultURL(base string, query model.ResultQuery) (string, error) {
	params := url.Values{}
	for _, team := range query.Teams {
		params.Add("teams", team)
	}
	params.Set("start_date", query.StartDate.UTC().Format(StartDateLayout))
	if query.MaxCombinations > 0 {
		params.Set("max_combinations", strconv.Itoa(query.MaxCombinations))
	}
	if query.LiveOnly != nil {
		params.Set("live_only", strconv.FormatBool(*query.LiveOnly))
	}

	return endpointURL(base, combinationsPath, params)
}

// BuildSearchURL builds the search request for query.
func BuildSearchURL(base, query string) (string, error) {
	return endpointURL(base, searchPath, url.Values{"query": {query}})
}

// BuildPopularURL builds the popular-items request.
func BuildPopularURL(base string) (string, error) {
	return endpointURL(base, suggestionsPath, nil)
}

// ParseStartDate accepts a date (YYYY-MM-DD) or a full RFC 3339 timestamp.
func ParseStartDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
