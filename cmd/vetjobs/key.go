package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
)

func newKeyCmd() *cobra.Command {
	var (
		flags  searchFlags
		hashed bool
	)
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the cache key for a search",
		Long:  "Print the canonical cache key a search with the given filters is stored under. --hashed prints the storage key used in memory and Redis.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.input()
			if err != nil {
				return err
			}
			p := in.Params()
			key := jobs.BuildKey(p, in.Page)
			if hashed {
				key = engine.CacheKey("search", key)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&hashed, "hashed", false, "Print the hashed storage key")
	return cmd
}
