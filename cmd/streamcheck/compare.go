package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/streamcheck/internal/api"
	"github.com/Veraticus/streamcheck/internal/cli"
	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/config"
	"github.com/Veraticus/streamcheck/internal/model"
	"github.com/Veraticus/streamcheck/internal/session"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// spinnerInterval is how often the progress spinner advances.
const spinnerInterval = 100 * time.Millisecond

// clock is replaced in tests.
var clock = time.Now

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare streaming packages for a selection",
		Long: `Request the cheapest combination of streaming packages covering the games
of the given clubs, tournaments and nations.

Examples:
  streamcheck compare --team "Bayern München"
  streamcheck compare -t "Bayern München" -t "Borussia Dortmund" --start-date 2025-03-01 -o yaml`,
		Args: cobra.NoArgs,
		RunE: runCompare,
	}

	cmd.Flags().StringArrayP("team", "t", nil, "club, tournament or nation to include (repeatable)")
	cmd.Flags().String("start-date", "", "first day to consider (YYYY-MM-DD, default: now)")
	cmd.Flags().StringP("output", "o", outputText, "output format (text, json, yaml, toml)")
	cmd.Flags().Bool("games", false, "list the covered games of every package")
	cmd.Flags().Bool("save", false, "store the report in the history")
	cmd.Flags().Int("max-combinations", 0, "limit the number of package combinations the service evaluates")
	cmd.Flags().Bool("live-only", false, "only consider packages with live coverage")
	cmd.Flags().Bool("no-progress", false, "do not show the progress spinner")

	return cmd
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	teams, _ := cmd.Flags().GetStringArray("team")
	if len(teams) == 0 {
		return common.NewUserError("Bitte mindestens einen Verein auswählen (--team)", common.ErrEmptySelection)
	}
	format, _ := cmd.Flags().GetString("output")
	if err := validateOutput(format); err != nil {
		return err
	}

	loc, err := config.LoadLocation()
	if err != nil {
		return err
	}
	startDate := clock().In(loc)
	if s, _ := cmd.Flags().GetString("start-date"); s != "" {
		startDate, err = api.ParseStartDate(s, loc)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("Ungültiges Datum: %s", s), err)
		}
	}

	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	var opts []session.ResultOption
	if cmd.Flags().Changed("max-combinations") {
		n, _ := cmd.Flags().GetInt("max-combinations")
		opts = append(opts, session.WithMaxCombinations(n))
	}
	if cmd.Flags().Changed("live-only") {
		liveOnly, _ := cmd.Flags().GetBool("live-only")
		opts = append(opts, session.WithLiveOnly(liveOnly))
	}

	results := session.NewResultSession(client, opts...)
	defer results.Close()

	if req := results.Start(teams, startDate); req != nil {
		noProgress, _ := cmd.Flags().GetBool("no-progress")
		stop := startSpinner(cmd.ErrOrStderr(), "Pakete werden verglichen", !noProgress)
		out := req.Run(ctx)
		stop()
		results.Apply(out)
		slog.Debug("comparison finished", "state", results.State(), "duration", out.Duration)
	}

	view := results.Snapshot()
	if view.State == session.StateError {
		return common.NewUserError(view.Message, view.Err)
	}

	if save, _ := cmd.Flags().GetBool("save"); save && view.State == session.StateSuccess {
		if err := saveReport(ctx, view); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if format != outputText {
		report := view.Report
		if report == nil {
			report = &model.ResultReport{}
		}
		return writeStructured(w, format, report)
	}

	showGames, _ := cmd.Flags().GetBool("games")
	return cli.RenderReport(w, view.Report, cli.RenderOptions{Location: loc, ShowGames: showGames})
}

func saveReport(ctx context.Context, view session.ResultView) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	id, err := store.SaveReport(ctx, model.ResultQuery{Teams: view.Teams, StartDate: view.StartDate}, view.Report)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	slog.Info("report saved", "id", id)
	return nil
}

// startSpinner shows an indeterminate progress bar on w until the returned
// function is called.
func startSpinner(w io.Writer, description string, enabled bool) func() {
	if !enabled || !isTerminal(w) {
		return func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
		_ = bar.Finish()
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
