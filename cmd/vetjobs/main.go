// Command vetjobs searches and ranks veteran job listings from the terminal and
// serves the REST API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vetjobs/internal/app"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vetjobs",
		Short:         "Veteran job search and ranking",
		Long:          "vetjobs searches the built-in veteran job dataset or live job sources (Job Bank, Adzuna, RemoteOK), ranks results against a profile and serves a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCmd(), newKeyCmd(), newServeAPICmd(), newSeedCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	app.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
