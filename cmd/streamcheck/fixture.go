package main

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/Veraticus/streamcheck/internal/fixture"
	"github.com/spf13/cobra"
)

func fixtureServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture-server",
		Short: "Serve canned data on the three service endpoints",
		Long: `Start a local HTTP server answering the suggestions, search and
streaming-combinations endpoints with a small built-in catalog, for offline use:

  streamcheck fixture-server --addr :8000 &
  streamcheck --api-url http://localhost:8000 compare -t "Bayern München"

The server applies the same per-minute limits as the hosted service.`,
		Args: cobra.NoArgs,
		RunE: runFixtureServer,
	}

	cmd.Flags().String("addr", ":8000", "listen address")
	cmd.Flags().Int("suggestions-per-minute", 30, "rate limit for the suggestions endpoint (0 = off)")
	cmd.Flags().Int("combinations-per-minute", 20, "rate limit for the streaming-combinations endpoint (0 = off)")

	return cmd
}

func runFixtureServer(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	cfg := fixture.DefaultServerConfig()
	cfg.Logger = slog.Default()
	cfg.SuggestionsPerMinute, _ = cmd.Flags().GetInt("suggestions-per-minute")
	cfg.CombinationsPerMinute, _ = cmd.Flags().GetInt("combinations-per-minute")

	var lc net.ListenConfig
	ln, err := lc.Listen(cmd.Context(), "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return fixture.Serve(cmd.Context(), ln, cfg)
}
