package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/service"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the hosted streaming-combination service.
const DefaultBaseURL = "https://check24.zapto.org"

// APIConfig holds everything needed to talk to the remote service.
type APIConfig struct {
	LiveOnly             *bool
	BaseURL              string
	Retry                service.RetryOptions
	Timeout              time.Duration
	SuggestionsPerMinute float64
	ResultsPerMinute     float64
	MaxCombinations      int
}

// DefaultAPIConfig returns the defaults matching the hosted service's rate limits.
func DefaultAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:              DefaultBaseURL,
		Timeout:              30 * time.Second,
		SuggestionsPerMinute: 30,
		ResultsPerMinute:     20,
		Retry: service.RetryOptions{
			MaxAttempts:  1,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     10 * time.Second,
			Multiplier:   2,
		},
	}
}

// Validate checks that the configuration is usable.
func (c APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", common.ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}
	if c.SuggestionsPerMinute < 0 || c.ResultsPerMinute < 0 {
		return fmt.Errorf("%w: rate limits must not be negative", common.ErrInvalidConfig)
	}
	if c.MaxCombinations < 0 {
		return fmt.Errorf("%w: api.max_combinations must not be negative", common.ErrInvalidConfig)
	}
	return nil
}

// LoadAPIConfig loads API configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or STREAMCHECK_ env vars)
// 2. Direct environment variable STREAMCHECK_API_URL
// 3. Default values
func LoadAPIConfig() (*APIConfig, error) {
	cfg := DefaultAPIConfig()

	if v := viper.GetString("api.base_url"); v != "" {
		cfg.BaseURL = v
	} else if v := os.Getenv("STREAMCHECK_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if viper.IsSet("api.timeout") {
		cfg.Timeout = viper.GetDuration("api.timeout")
	}
	if viper.IsSet("api.suggestions_per_minute") {
		cfg.SuggestionsPerMinute = viper.GetFloat64("api.suggestions_per_minute")
	}
	if viper.IsSet("api.results_per_minute") {
		cfg.ResultsPerMinute = viper.GetFloat64("api.results_per_minute")
	}
	if viper.IsSet("api.max_combinations") {
		cfg.MaxCombinations = viper.GetInt("api.max_combinations")
	}
	if viper.IsSet("api.live_only") {
		liveOnly, err := strconv.ParseBool(viper.GetString("api.live_only"))
		if err != nil {
			return nil, fmt.Errorf("%w: api.live_only: %v", common.ErrInvalidConfig, err)
		}
		cfg.LiveOnly = &liveOnly
	}
	if viper.IsSet("retry.max_attempts") {
		cfg.Retry.MaxAttempts = viper.GetInt("retry.max_attempts")
	}
	if viper.IsSet("retry.initial_delay") {
		cfg.Retry.InitialDelay = viper.GetDuration("retry.initial_delay")
	}
	if viper.IsSet("retry.max_delay") {
		cfg.Retry.MaxDelay = viper.GetDuration("retry.max_delay")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadLocation resolves display.timezone, defaulting to the local zone.
func LoadLocation() (*time.Location, error) {
	name := viper.GetString("display.timezone")
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: display.timezone: %v", common.ErrInvalidConfig, err)
	}
	return loc, nil
}
