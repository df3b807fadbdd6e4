package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vetjobs/internal/app"
	"github.com/anatolykoptev/go_vetjobs/internal/toolutil"
)

func newSearchCmd() *cobra.Command {
	var (
		flags   searchFlags
		asJSON  bool
		matchOn []string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search veteran job listings",
		Long:  "Search the built-in veteran dataset, or live sources with --external. With --match, listings are scored against the given candidate skills.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.input()
			if err != nil {
				return err
			}
			c := app.ConfigFromEnv()
			app.InitEngine(c)
			a, err := app.New(cmd.Context(), c)
			if err != nil {
				return err
			}
			defer a.Close()

			p := in.Params()
			out := cmd.OutOrStdout()
			if len(matchOn) > 0 {
				results, err := a.Service.Match(cmd.Context(), p, matchOn)
				if err != nil {
					return err
				}
				res := toolutil.NewMatchOutput(results)
				if asJSON {
					return writeJSON(out, res)
				}
				return writeMatches(out, res)
			}

			listings, err := a.Service.Search(cmd.Context(), p)
			if err != nil {
				return err
			}
			res := toolutil.NewSearchOutput(p, listings)
			if asJSON {
				return writeJSON(out, res)
			}
			return writeListings(out, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	cmd.Flags().StringSliceVar(&matchOn, "match", nil, "Candidate skills to score listings against")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeListings(w io.Writer, res toolutil.SearchOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tSALARY\tCLEARANCE\tSOURCE")
	for _, j := range res.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Title, j.Company, j.Location, j.SalaryRange, j.ClearanceLevel, j.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, res.Summary)
	return err
}

func writeMatches(w io.Writer, res toolutil.MatchOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTITLE\tCOMPANY\tMATCHING SKILLS")
	for _, m := range res.Matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.MatchScore, m.Job.Title, m.Job.Company, strings.Join(m.MatchingSkills, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d matching listings\n", res.Count)
	return err
}
