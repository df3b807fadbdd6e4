package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vetjobs/internal/toolutil"
)

// searchFlags binds the search filters shared by search and key.
type searchFlags struct {
	in     toolutil.SearchInput
	remote string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVarP(&f.in.Keywords, "keywords", "k", nil, "Keywords (comma-separated, any matches)")
	fs.StringSliceVarP(&f.in.Locations, "location", "l", nil, "Location substrings")
	fs.IntVar(&f.in.Radius, "radius", 0, "Radius in km (accepted, not applied)")
	fs.StringVar(&f.in.JobType, "job-type", "", "full-time, part-time, contract")
	fs.StringSliceVar(&f.in.MOSCodes, "mos", nil, "MOS codes")
	fs.StringSliceVar(&f.in.ClearanceLevels, "clearance", nil, "Acceptable clearance levels")
	fs.StringVar(&f.remote, "remote", "", "true for remote only, false for on-site only")
	fs.StringSliceVar(&f.in.MilitarySkills, "skills", nil, "Military skills matched against required skills")
	fs.StringVar(&f.in.Industry, "industry", "", "Industry substring")
	fs.StringVar(&f.in.ExperienceLevel, "experience", "", "entry, mid, senior, executive")
	fs.StringVar(&f.in.EducationLevel, "education", "", "Education level")
	fs.StringVar(&f.in.CompanySize, "company-size", "", "small, medium, large")
	fs.Float64Var(&f.in.CompanyRating, "min-rating", 0, "Minimum company rating")
	fs.StringSliceVar(&f.in.Benefits, "benefits", nil, "Benefits (any matches)")
	fs.StringVar(&f.in.Region, "region", "", "canada or us")
	fs.BoolVar(&f.in.UseExternalSources, "external", false, "Query live job sources")
	fs.IntVar(&f.in.Page, "page", 1, "Result page for live sources")
	fs.IntVar(&f.in.PageSize, "page-size", 0, "Page size for live sources (default 20, max 50)")
}

// input returns the validated search input.
func (f *searchFlags) input() (toolutil.SearchInput, error) {
	in := f.in
	if f.remote != "" {
		v, err := strconv.ParseBool(f.remote)
		if err != nil {
			return in, fmt.Errorf("--remote: %w", err)
		}
		in.Remote = &v
	}
	if err := toolutil.Validate(in); err != nil {
		return in, err
	}
	return in, nil
}
