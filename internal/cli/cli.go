// Package cli implements the sidectl command surface: fetching league
// injuries through a locally running service and merging them with the
// supplementary player store.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ligastats/sidelined/internal/apiclient"
	"github.com/ligastats/sidelined/internal/merge"
	"github.com/ligastats/sidelined/internal/store"
	"github.com/ligastats/sidelined/internal/store/repository"
)

var (
	flagAPIBase     string
	flagOutput      string
	flagPostgresDSN string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sidectl",
		Short: "Fetch and merge league injury data",
		Long: `sidectl talks to a running sidelined service to fetch scraped league
injury tables, and can merge the rows with supplementary player records
from the store into a single JSON file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagAPIBase, "api-base", apiclient.DefaultBaseURL, "Base URL of the sidelined API")

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newMergeCmd())
	return cmd
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <league-url>",
		Short: "Fetch injury rows for one league page",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write JSON to this file instead of stdout")
	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := apiclient.New(flagAPIBase)
	result, err := client.GetLeagueInjuries(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching injuries: %w", err)
	}

	if flagOutput != "" {
		if err := merge.WriteJSONAtomic(flagOutput, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(result.Rows), flagOutput)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <league-url>",
		Short: "Fetch injuries and merge with stored player records",
		Args:  cobra.ExactArgs(1),
		RunE:  runMerge,
	}
	cmd.Flags().StringVar(&flagOutput, "output", "output/injured_players.json", "Output JSON file")
	cmd.Flags().StringVar(&flagPostgresDSN, "postgres-dsn", os.Getenv("POSTGRES_DSN"), "Postgres DSN (or env: POSTGRES_DSN)")
	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	if flagPostgresDSN == "" {
		return fmt.Errorf("--postgres-dsn is required (or set POSTGRES_DSN)")
	}

	ctx := cmd.Context()

	client := apiclient.New(flagAPIBase)
	result, err := client.GetLeagueInjuries(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching injuries: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Fetched %d injury rows\n", len(result.Rows))

	db, err := store.NewDatabase(flagPostgresDSN)
	if err != nil {
		return fmt.Errorf("connecting to store: %w", err)
	}
	defer db.Close()

	repo := repository.NewPlayerRepository(db)
	players, err := repo.FindByNames(ctx, merge.PlayerNames(result))
	if err != nil {
		return fmt.Errorf("looking up players: %w", err)
	}

	mergedRows := merge.Rows(result, players)
	if err := merge.WriteJSONAtomic(flagOutput, mergedRows); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Merged %d of %d rows into %s\n", len(mergedRows), len(result.Rows), flagOutput)
	return nil
}
