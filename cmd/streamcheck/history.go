package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/streamcheck/internal/cli"
	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/config"
	"github.com/Veraticus/streamcheck/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear stored comparisons",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyClearCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored comparisons, most recent first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of entries (0 = all)")

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	loc, err := config.LoadLocation()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	entries, err := store.ListReports(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	return cli.RenderHistory(cmd.OutOrStdout(), entries, loc)
}

func historyShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored comparison",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}

	cmd.Flags().StringP("output", "o", outputText, "output format (text, json, yaml, toml)")
	cmd.Flags().Bool("games", false, "list the covered games of every package")

	return cmd
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return common.NewUserError(fmt.Sprintf("Ungültige ID: %s", args[0]), err)
	}
	format, _ := cmd.Flags().GetString("output")
	if err := validateOutput(format); err != nil {
		return err
	}

	loc, err := config.LoadLocation()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	entry, err := store.GetReport(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("Kein Vergleich mit ID %d", id), err)
	}
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	w := cmd.OutOrStdout()
	if format != outputText {
		return writeStructured(w, format, entry.Report)
	}

	header := fmt.Sprintf("Vergleich #%d vom %s (ab %s)",
		entry.ID,
		entry.CreatedAt.In(loc).Format(viewmodel.GameDateLayout),
		viewmodel.FormatStartDate(entry.StartDate.In(loc)),
	)
	if _, err := fmt.Fprintln(w, cli.FormatTitle(header)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	showGames, _ := cmd.Flags().GetBool("games")
	return cli.RenderReport(w, entry.Report, cli.RenderOptions{Location: loc, ShowGames: showGames})
}

func historyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored comparisons",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClear,
	}
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer closeStorage(store)

	removed, err := store.ClearReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d Vergleiche gelöscht", removed)))
	return err
}
