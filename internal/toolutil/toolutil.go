// Package toolutil holds the request and response shapes shared by the MCP tools,
// the REST API and the CLI, and converts them to engine calls.
package toolutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/anatolykoptev/go_vetjobs/internal/engine/jobs"
)

var validate = validator.New()

// ErrInvalidInput wraps every validation failure returned by Validate.
var ErrInvalidInput = errors.New("invalid input")

// SearchInput is the caller-facing search filter set.
type SearchInput struct {
	Keywords           []string `json:"keywords,omitempty" jsonschema:"Search terms matched against title, company, description and skills (any term matches)"`
	Locations          []string `json:"locations,omitempty" jsonschema:"Location substrings (e.g. Ottawa, Texas, Remote)"`
	Radius             int      `json:"radius,omitempty" jsonschema:"Search radius in km (accepted, currently not applied)" validate:"gte=0"`
	JobType            string   `json:"job_type,omitempty" jsonschema:"full-time, part-time, contract"`
	MOSCodes           []string `json:"mos_codes,omitempty" jsonschema:"Military occupation codes (e.g. 00378, 25B)"`
	ClearanceLevels    []string `json:"clearance_level,omitempty" jsonschema:"Acceptable clearance levels: none, reliability, secret, top-secret"`
	Remote             *bool    `json:"remote,omitempty" jsonschema:"true for remote-only, false for on-site only"`
	MilitarySkills     []string `json:"military_skills,omitempty" jsonschema:"Military skills matched against required skills (e.g. logistics, leadership)"`
	Industry           string   `json:"industry,omitempty"`
	ExperienceLevel    string   `json:"experience_level,omitempty" jsonschema:"entry, mid, senior, executive"`
	EducationLevel     string   `json:"education_level,omitempty"`
	CompanySize        string   `json:"company_size,omitempty" jsonschema:"small, medium, large"`
	CompanyRating      float64  `json:"company_rating,omitempty" jsonschema:"Minimum company rating (0-5)" validate:"gte=0,lte=5"`
	Benefits           []string `json:"benefits,omitempty"`
	Region             string   `json:"region,omitempty" jsonschema:"canada (default for external search) or us"`
	UseExternalSources bool     `json:"use_external_sources,omitempty" jsonschema:"Query live job sources instead of the built-in veteran dataset"`
	Page               int      `json:"page,omitempty" validate:"gte=0"`
	PageSize           int      `json:"page_size,omitempty" validate:"gte=0"`
}

// Params converts the input to engine search parameters.
func (in SearchInput) Params() jobs.SearchParams {
	return jobs.SearchParams{
		Keywords:           in.Keywords,
		Locations:          in.Locations,
		Radius:             in.Radius,
		JobType:            in.JobType,
		MOSCodes:           in.MOSCodes,
		ClearanceLevels:    in.ClearanceLevels,
		Remote:             in.Remote,
		MilitarySkills:     in.MilitarySkills,
		Industry:           in.Industry,
		ExperienceLevel:    in.ExperienceLevel,
		EducationLevel:     in.EducationLevel,
		CompanySize:        in.CompanySize,
		CompanyRating:      in.CompanyRating,
		Benefits:           in.Benefits,
		Region:             jobs.ParseRegion(in.Region),
		UseExternalSources: in.UseExternalSources,
		Page:               in.Page,
		PageSize:           in.PageSize,
	}
}

// MatchInput scores listings found by Filters against a candidate's skills.
type MatchInput struct {
	Filters SearchInput `json:"filters,omitempty" jsonschema:"Search filters; empty searches the built-in dataset"`
	Skills  []string    `json:"skills" jsonschema:"Candidate skills (e.g. logistics, network security)" validate:"required,min=1,dive,required"`
}

// RecommendInput ranks listings found by Filters for a candidate profile.
type RecommendInput struct {
	Filters SearchInput      `json:"filters,omitempty" jsonschema:"Search filters; empty searches the built-in dataset"`
	Profile jobs.UserProfile `json:"profile" jsonschema:"Candidate profile: skills, years_experience, preferred locations, job types, salary"`
	Limit   int              `json:"limit,omitempty" jsonschema:"Maximum recommendations (default 10)" validate:"gte=0,lte=100"`
}

// DefaultRecommendLimit applies when RecommendInput.Limit is zero.
const DefaultRecommendLimit = 10

// Validate checks struct constraints and returns a single readable error.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// JobListing is the wire form of a canonical listing. Posted is a YYYY-MM-DD date.
type JobListing struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	SalaryRange      string   `json:"salary_range"`
	Remote           bool     `json:"remote"`
	ClearanceLevel   string   `json:"clearance_level"`
	MOSCode          string   `json:"mos_code"`
	RequiredMOSCodes []string `json:"required_mos_codes"`
	JobType          string   `json:"job_type,omitempty"`
	Industry         string   `json:"industry,omitempty"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	EducationLevel   string   `json:"education_level,omitempty"`
	CompanySize      string   `json:"company_size,omitempty"`
	CompanyRating    *float64 `json:"company_rating,omitempty"`
	Benefits         []string `json:"benefits"`
	Posted           string   `json:"posted"`
	Source           string   `json:"source"`
	URL              string   `json:"url,omitempty"`
}

// NewJobListing converts a canonical job to its wire form.
func NewJobListing(j jobs.Job) JobListing {
	posted := ""
	if !j.Date.IsZero() {
		posted = j.Date.UTC().Format(time.DateOnly)
	}
	return JobListing{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Description:      j.Description,
		RequiredSkills:   j.RequiredSkills,
		PreferredSkills:  j.PreferredSkills,
		SalaryRange:      string(j.SalaryRange),
		Remote:           j.Remote,
		ClearanceLevel:   string(j.ClearanceLevel),
		MOSCode:          j.MOSCode,
		RequiredMOSCodes: j.RequiredMOSCodes,
		JobType:          j.JobType,
		Industry:         j.Industry,
		ExperienceLevel:  j.ExperienceLevel,
		EducationLevel:   j.EducationLevel,
		CompanySize:      j.CompanySize,
		CompanyRating:    j.CompanyRating,
		Benefits:         j.Benefits,
		Posted:           posted,
		Source:           j.Source,
		URL:              j.URL,
	}
}

// SearchOutput is the structured result of a search.
type SearchOutput struct {
	Count   int          `json:"count"`
	Jobs    []JobListing `json:"jobs"`
	Summary string       `json:"summary"`
}

// MatchItem is one listing with the candidate skills it matched.
type MatchItem struct {
	Job            JobListing `json:"job"`
	MatchingSkills []string   `json:"matching_skills"`
	MatchScore     int        `json:"match_score"`
}

// MatchOutput is the structured result of a skill match.
type MatchOutput struct {
	Count   int         `json:"count"`
	Matches []MatchItem `json:"matches"`
}

// RecommendItem is one ranked listing.
type RecommendItem struct {
	Job            JobListing `json:"job"`
	MatchingSkills []string   `json:"matching_skills"`
	MatchScore     int        `json:"match_score"`
	Relevance      float64    `json:"relevance"`
}

// RecommendOutput is the structured result of a recommendation.
type RecommendOutput struct {
	Count           int             `json:"count"`
	Recommendations []RecommendItem `json:"recommendations"`
}

// NewSearchOutput wraps listings with a one-line summary.
func NewSearchOutput(p jobs.SearchParams, listings []jobs.Job) SearchOutput {
	origin := "built-in veteran dataset"
	if p.UseExternalSources {
		region := p.Region
		if region == "" {
			region = jobs.DefaultRegion
		}
		origin = "external sources, region " + string(region)
	}
	out := make([]JobListing, 0, len(listings))
	for _, j := range listings {
		out = append(out, NewJobListing(j))
	}
	return SearchOutput{
		Count:   len(listings),
		Jobs:    out,
		Summary: fmt.Sprintf("%d listings from the %s", len(listings), origin),
	}
}

// NewMatchOutput flattens match results.
func NewMatchOutput(results []jobs.MatchResult) MatchOutput {
	out := MatchOutput{Count: len(results), Matches: make([]MatchItem, 0, len(results))}
	for _, m := range results {
		out.Matches = append(out.Matches, MatchItem{Job: NewJobListing(m.Job), MatchingSkills: m.MatchingSkills, MatchScore: m.MatchScore})
	}
	return out
}

// NewRecommendOutput flattens ranked results.
func NewRecommendOutput(recs []jobs.Recommendation) RecommendOutput {
	out := RecommendOutput{Count: len(recs), Recommendations: make([]RecommendItem, 0, len(recs))}
	for _, r := range recs {
		out.Recommendations = append(out.Recommendations, RecommendItem{
			Job:            NewJobListing(r.Job),
			MatchingSkills: r.MatchingSkills,
			MatchScore:     r.MatchScore,
			Relevance:      r.Relevance,
		})
	}
	return out
}
