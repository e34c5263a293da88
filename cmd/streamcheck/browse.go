package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/config"
	"github.com/Veraticus/streamcheck/internal/tui"
	"github.com/Veraticus/streamcheck/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Start the interactive client",
		Long: `Search clubs, tournaments and nations, build a selection and compare
streaming packages in a full-screen terminal interface.

Successful comparisons are stored in the history unless history.enabled
is false.`,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("display.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Logs go to a file so they do not tear the alternate screen
	logPath := config.ExpandPath(viper.GetString("logging.file"))
	logFile, err := common.OpenLogFile(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	if err := setupLogging(logFile); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	client, apiCfg, err := newAPIClient()
	if err != nil {
		return err
	}
	loc, err := config.LoadLocation()
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithClient(client),
		tui.WithLocation(loc),
		tui.WithRequestTimeout(apiCfg.Timeout),
		tui.WithTheme(themes.GetTheme(viper.GetString("display.theme"))),
	}

	if viper.GetBool("history.enabled") {
		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer closeStorage(store)
		opts = append(opts, tui.WithHistory(store))
	}

	slog.Info("starting interactive client", "base_url", client.BaseURL(), "log_file", logPath)
	return tui.Run(ctx, opts...)
}
