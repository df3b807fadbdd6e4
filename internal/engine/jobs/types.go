package jobs

import (
	"strings"
	"time"
)

// SalaryBand is one of the fixed annual salary buckets.
type SalaryBand string

const (
	SalaryUnder40k    SalaryBand = "under-40k"
	Salary40kTo60k    SalaryBand = "40k-60k"
	Salary60kTo80k    SalaryBand = "60k-80k"
	Salary80kTo100k   SalaryBand = "80k-100k"
	Salary100kPlus    SalaryBand = "100k-plus"
	SalaryUnspecified SalaryBand = "unspecified"

	// DefaultSalaryBand is assigned when a source gives no salary at all.
	DefaultSalaryBand = Salary60kTo80k
)

// salaryBands lists the numeric bands in ascending order with [min, max) bounds.
// A zero max means unbounded.
var salaryBands = []struct {
	band     SalaryBand
	min, max int
}{
	{SalaryUnder40k, 0, 40000},
	{Salary40kTo60k, 40000, 60000},
	{Salary60kTo80k, 60000, 80000},
	{Salary80kTo100k, 80000, 100000},
	{Salary100kPlus, 100000, 0},
}

// ParseSalaryBand returns the band for s (case-insensitive) and whether it is known.
func ParseSalaryBand(s string) (SalaryBand, bool) {
	b := SalaryBand(strings.ToLower(strings.TrimSpace(s)))
	if b == SalaryUnspecified {
		return b, true
	}
	for _, sb := range salaryBands {
		if sb.band == b {
			return b, true
		}
	}
	return "", false
}

// BandForSalary buckets an annual amount into a band.
func BandForSalary(amount float64) SalaryBand {
	for _, sb := range salaryBands {
		if sb.max == 0 || amount < float64(sb.max) {
			return sb.band
		}
	}
	return Salary100kPlus
}

// Bounds returns the numeric range of the band; max 0 means unbounded.
// ok is false for SalaryUnspecified and unknown values.
func (b SalaryBand) Bounds() (min, max int, ok bool) {
	for _, sb := range salaryBands {
		if sb.band == b {
			return sb.min, sb.max, true
		}
	}
	return 0, 0, false
}

// Clearance is a security-clearance requirement tag.
type Clearance string

const (
	ClearanceNone        Clearance = "none"
	ClearanceReliability Clearance = "reliability"
	ClearanceSecret      Clearance = "secret"
	ClearanceTopSecret   Clearance = "top-secret"
)

// ParseClearance maps free-form clearance text to a known level. Unknown text maps to none.
func ParseClearance(s string) Clearance {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("_", "-", " ", "-").Replace(v)
	switch {
	case v == "":
		return ClearanceNone
	case strings.Contains(v, "top-secret"):
		return ClearanceTopSecret
	case strings.Contains(v, "secret"):
		return ClearanceSecret
	case strings.Contains(v, "reliability"), strings.Contains(v, "enhanced"):
		return ClearanceReliability
	}
	return ClearanceNone
}

// Experience levels and the year bands the ranker compares against.
const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"
)

var experienceBands = map[string][2]float64{
	ExperienceEntry:     {0, 2},
	ExperienceMid:       {2, 5},
	ExperienceSenior:    {5, 10},
	ExperienceExecutive: {10, 40},
}

// ExperienceBand returns the [min, max] years for a level.
func ExperienceBand(level string) (min, max float64, ok bool) {
	b, ok := experienceBands[strings.ToLower(strings.TrimSpace(level))]
	return b[0], b[1], ok
}

// Job is the canonical listing record returned by every source.
type Job struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	Description      string     `json:"description"`
	RequiredSkills   []string   `json:"required_skills"`
	PreferredSkills  []string   `json:"preferred_skills"`
	SalaryRange      SalaryBand `json:"salary_range"`
	Remote           bool       `json:"remote"`
	ClearanceLevel   Clearance  `json:"clearance_level"`
	MOSCode          string     `json:"mos_code"`
	RequiredMOSCodes []string   `json:"required_mos_codes"`
	JobType          string     `json:"job_type,omitempty"`
	Industry         string     `json:"industry,omitempty"`
	ExperienceLevel  string     `json:"experience_level,omitempty"`
	EducationLevel   string     `json:"education_level,omitempty"`
	CompanySize      string     `json:"company_size,omitempty"`
	CompanyRating    *float64   `json:"company_rating,omitempty"`
	Benefits         []string   `json:"benefits"`
	Date             time.Time  `json:"date"`
	Source           string     `json:"source"`
	URL              string     `json:"url,omitempty"`
}

// Skills returns required then preferred skills.
func (j Job) Skills() []string {
	out := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	out = append(out, j.RequiredSkills...)
	return append(out, j.PreferredSkills...)
}

// SearchParams is the caller-supplied filter set. The zero value of every field means
// "no filter on that dimension"; nothing here ever excludes everything by being absent.
type SearchParams struct {
	// Keywords match title, company, description or any skill (substring, OR across terms).
	Keywords []string `json:"keywords,omitempty"`
	// Locations match the listing location (substring, OR across terms).
	Locations []string `json:"locations,omitempty"`
	// Radius in km. Reserved: no geocoding, so it never filters. 0 = default (50).
	Radius int `json:"radius,omitempty"`
	// JobType is an exact, case-insensitive match ("full-time", "contract", ...).
	JobType string `json:"job_type,omitempty"`
	// MOSCodes match any of the listing's required MOS codes.
	MOSCodes []string `json:"mos_codes,omitempty"`
	// ClearanceLevels is a set of acceptable clearance levels.
	ClearanceLevels []string `json:"clearance_level,omitempty"`
	// Remote, when set, requires the listing's remote flag to equal it.
	Remote *bool `json:"remote,omitempty"`
	// MilitarySkills match required skills by substring (OR across terms).
	MilitarySkills []string `json:"military_skills,omitempty"`
	// Industry is a case-insensitive substring match.
	Industry string `json:"industry,omitempty"`
	// ExperienceLevel, EducationLevel and CompanySize are exact, case-insensitive matches.
	ExperienceLevel string `json:"experience_level,omitempty"`
	EducationLevel  string `json:"education_level,omitempty"`
	CompanySize     string `json:"company_size,omitempty"`
	// CompanyRating is a minimum rating (>=). 0 = no filter.
	CompanyRating float64 `json:"company_rating,omitempty"`
	// Benefits match when the listing offers any of them.
	Benefits []string `json:"benefits,omitempty"`
	// Region selects the source chain and, locally, a location-token filter. "" = none.
	Region Region `json:"region,omitempty"`
	// UseExternalSources routes the search through the region's network sources.
	UseExternalSources bool `json:"use_external_sources,omitempty"`
	// Page and PageSize are forwarded to paginated sources; the local filter ignores them.
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// Default pagination for external sources.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
	DefaultRadiusKM = 50
)

func (p SearchParams) page() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func (p SearchParams) pageSize() int {
	switch {
	case p.PageSize <= 0:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return p.PageSize
}

// UserProfile is the candidate data consumed by the relevance ranker.
type UserProfile struct {
	Skills              []string `json:"skills" validate:"omitempty,dive,max=100"`
	YearsExperience     float64  `json:"years_experience" validate:"gte=0,lte=70"`
	PreferredJobTypes   []string `json:"preferred_job_types,omitempty"`
	PreferredLocations  []string `json:"preferred_locations,omitempty"`
	PreferredIndustries []string `json:"preferred_industries,omitempty"`
	SalaryMin           int      `json:"salary_min,omitempty" validate:"gte=0"`
	SalaryMax           int      `json:"salary_max,omitempty" validate:"gte=0"` // 0 = unbounded
	SalaryBand          string   `json:"salary_band,omitempty"`
}

// salaryRange returns the preferred numeric range; ok is false when nothing is set.
func (p UserProfile) salaryRange() (min, max int, ok bool) {
	if p.SalaryMin > 0 || p.SalaryMax > 0 {
		return p.SalaryMin, p.SalaryMax, true
	}
	if b, known := ParseSalaryBand(p.SalaryBand); known {
		return b.Bounds()
	}
	return 0, 0, false
}

// MatchResult is a job annotated with the candidate skills it matched.
type MatchResult struct {
	Job
	MatchingSkills []string `json:"matching_skills"`
	MatchScore     int      `json:"match_score"` // 0–100
}

// Recommendation is a match result with the composite relevance score.
type Recommendation struct {
	MatchResult
	Relevance float64 `json:"relevance"` // 0–1
}
