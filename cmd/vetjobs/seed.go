package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vetjobs/internal/app"
	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
)

func newSeedCmd() *cobra.Command {
	var (
		sqlitePath  string
		databaseURL string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in listings to a dataset store",
		Long:  "Replace the listings in a SQLite file (--sqlite) or Postgres database (--db-url) with the built-in veteran dataset. Defaults come from DATASET_SQLITE_PATH and DATABASE_URL.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := app.ConfigFromEnv()
			if cmd.Flags().Changed("sqlite") {
				c.DatasetSQLitePath, c.DatabaseURL = sqlitePath, ""
			}
			if cmd.Flags().Changed("db-url") {
				c.DatabaseURL = databaseURL
			}
			store, err := app.OpenStore(cmd.Context(), c)
			if err != nil {
				return err
			}
			if store == nil {
				return errors.New("no store configured: pass --sqlite or --db-url")
			}
			defer store.Close()

			listings := jobs.BuiltinListings()
			if err := store.SaveListings(cmd.Context(), listings); err != nil {
				return fmt.Errorf("seed listings: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d listings\n", len(listings))
			return err
		},
	}
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite file path")
	cmd.Flags().StringVar(&databaseURL, "db-url", "", "Postgres connection URL")
	return cmd
}
