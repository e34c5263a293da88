package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("STREAMCHECK_API_URL", "")

	cfg, err := LoadAPIConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.InDelta(t, 30.0, cfg.SuggestionsPerMinute, 0.001)
	assert.InDelta(t, 20.0, cfg.ResultsPerMinute, 0.001)
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
	assert.Nil(t, cfg.LiveOnly)
	assert.Zero(t, cfg.MaxCombinations)
}

func TestLoadAPIConfig_ViperOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("api.base_url", "http://localhost:8000")
	viper.Set("api.timeout", "5s")
	viper.Set("api.max_combinations", 3)
	viper.Set("api.live_only", "true")
	viper.Set("retry.max_attempts", 4)

	cfg, err := LoadAPIConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxCombinations)
	require.NotNil(t, cfg.LiveOnly)
	assert.True(t, *cfg.LiveOnly)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
}

func TestLoadAPIConfig_EnvFallback(t *testing.T) {
	viper.Reset()
	t.Setenv("STREAMCHECK_API_URL", "http://127.0.0.1:9999")

	cfg, err := LoadAPIConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
}

func TestAPIConfig_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(*APIConfig)
		wantErr error
		name    string
	}{
		{name: "defaults are valid", mutate: func(*APIConfig) {}},
		{name: "missing base url", mutate: func(c *APIConfig) { c.BaseURL = "" }, wantErr: common.ErrMissingConfig},
		{name: "relative base url", mutate: func(c *APIConfig) { c.BaseURL = "api/v1" }, wantErr: common.ErrInvalidConfig},
		{name: "negative timeout", mutate: func(c *APIConfig) { c.Timeout = -time.Second }, wantErr: common.ErrInvalidConfig},
		{name: "negative rate", mutate: func(c *APIConfig) { c.ResultsPerMinute = -1 }, wantErr: common.ErrInvalidConfig},
		{name: "negative combinations", mutate: func(c *APIConfig) { c.MaxCombinations = -2 }, wantErr: common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAPIConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadLocation(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	loc, err := LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	viper.Set("display.timezone", "UTC")
	loc, err = LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	viper.Set("display.timezone", "Mars/Olympus_Mons")
	_, err = LoadLocation()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("STREAMCHECK_TEST_DIR", "/tmp/streamcheck")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/history.db", want: filepath.Join(home, "history.db")},
		{name: "env var", in: "$STREAMCHECK_TEST_DIR/history.db", want: "/tmp/streamcheck/history.db"},
		{name: "plain", in: "/var/lib/history.db", want: "/var/lib/history.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
