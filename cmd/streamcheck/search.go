package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/streamcheck/internal/api"
	"github.com/Veraticus/streamcheck/internal/cli"
	"github.com/Veraticus/streamcheck/internal/common"
	"github.com/Veraticus/streamcheck/internal/selection"
	"github.com/Veraticus/streamcheck/internal/session"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print suggestions for a club, tournament or nation",
		Long: `Ask the service for entities matching the query. Queries need at least
two characters. Names passed with --exclude are left out, the same way the
interactive client hides entities that are already selected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringArray("exclude", nil, "hide this entity from the suggestions (repeatable)")
	cmd.Flags().StringP("output", "o", outputText, "output format (text, json, yaml, toml)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	exclude, _ := cmd.Flags().GetStringArray("exclude")
	format, _ := cmd.Flags().GetString("output")
	if err := validateOutput(format); err != nil {
		return err
	}

	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	search := session.NewSearchSession(selection.NewStore(exclude...))
	defer search.Close()

	req := search.SetQuery(query)
	if req == nil {
		return common.NewUserError(
			fmt.Sprintf("Mindestens %d Zeichen eingeben", session.MinQueryLength),
			common.ErrQueryTooShort,
		)
	}

	out := req.Run(ctx, client)
	if out.Err != nil {
		return common.NewUserError(api.Describe(out.Err), out.Err)
	}
	search.Apply(out)

	suggestions := search.VisibleSuggestions()
	if format != outputText {
		return writeStructured(cmd.OutOrStdout(), format, suggestionOutput{Query: query, Suggestions: suggestions})
	}
	return cli.RenderList(cmd.OutOrStdout(), "Vorschläge", suggestions, "Keine Vorschläge")
}

type suggestionOutput struct {
	Query       string   `json:"query" yaml:"query" toml:"query"`
	Suggestions []string `json:"suggestions" yaml:"suggestions" toml:"suggestions"`
}

func popularCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "popular",
		Short: "List popular teams, tournaments and nations",
		Args:  cobra.NoArgs,
		RunE:  runPopular,
	}

	cmd.Flags().StringP("output", "o", outputText, "output format (text, json, yaml, toml)")

	return cmd
}

func runPopular(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("output")
	if err := validateOutput(format); err != nil {
		return err
	}

	client, _, err := newAPIClient()
	if err != nil {
		return err
	}

	search := session.NewSearchSession(nil)
	defer search.Close()

	out := search.LoadPopular().Run(ctx, client)
	if out.Err != nil {
		return common.NewUserError(api.Describe(out.Err), out.Err)
	}
	search.ApplyPopular(out)

	if format != outputText {
		return writeStructured(cmd.OutOrStdout(), format, search.Popular())
	}
	return cli.RenderPopular(cmd.OutOrStdout(), search.Popular())
}
