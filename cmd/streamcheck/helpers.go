package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/streamcheck/internal/api"
	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/config"
	"github.com/Veraticus/streamcheck/internal/storage"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envKeyReplacer maps nested keys such as api.base_url to STREAMCHECK_API_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults() {
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", config.DefaultHistoryPath())
	viper.SetDefault("logging.file", config.DefaultLogPath())
	viper.SetDefault("display.theme", "default")
}

// initStorage opens the report history with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("history.path")
	if dbPath == "" {
		dbPath = config.DefaultHistoryPath()
	}

	store, err := storage.Open(ctx, config.ExpandPath(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history: %w", err)
	}
	return store, nil
}

func closeStorage(store *storage.SQLiteStorage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close history", "error", err)
	}
}

// newAPIClient builds the HTTP client from the loaded configuration.
func newAPIClient() (*api.Client, *config.APIConfig, error) {
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		return nil, nil, err
	}
	return api.NewClient(*cfg), cfg, nil
}

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
	outputTOML = "toml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML, outputTOML:
		return nil
	default:
		return common.NewUserError(
			fmt.Sprintf("Unbekanntes Ausgabeformat %q (text, json, yaml, toml)", format),
			fmt.Errorf("%w: output %q", common.ErrInvalidConfig, format),
		)
	}
}

// writeStructured encodes v in one of the machine-readable formats.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	case outputTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
	default:
		return validateOutput(format)
	}
	return nil
}
