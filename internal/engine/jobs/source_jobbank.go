package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// SourceJobBank is the regional source for Canada, reached through a caller-operated
// proxy in front of the federal Job Bank.
const SourceJobBank = "jobbank"

// hoursPerYear converts hourly wages to annual amounts.
const hoursPerYear = 2080

// --- Job Bank proxy API types ---

type jobBankResponse struct {
	Jobs  *[]jobBankJob `json:"jobs"`
	Total int           `json:"total"`
}

type jobBankJob struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"title"`
	Employer       string   `json:"employer"`
	City           string   `json:"city"`
	Province       string   `json:"province"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
	AssetSkills    []string `json:"asset_skills"`
	SalaryMin      float64  `json:"salary_min"`
	SalaryMax      float64  `json:"salary_max"`
	SalaryPeriod   string   `json:"salary_period"` // "hourly" or "annual"
	Telework       *bool    `json:"telework"`
	Clearance      string   `json:"security_clearance"`
	MOSCodes       []string `json:"military_occupations"`
	EmploymentType string   `json:"employment_type"`
	Sector         string   `json:"sector"`
	Education      string   `json:"education"`
	Benefits       []string `json:"benefits"`
	DatePosted     string   `json:"date_posted"`
	URL            string   `json:"url"`
}

// JobBankSource queries the Job Bank proxy.
type JobBankSource struct {
	baseURL string
}

// NewJobBankSource creates the source. An empty baseURL leaves it unconfigured:
// every search fails with ErrSourceUnavailable.
func NewJobBankSource(baseURL string) *JobBankSource {
	return &JobBankSource{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

func (s *JobBankSource) Name() string { return SourceJobBank }

// Search fetches one page of listings matching p.
func (s *JobBankSource) Search(ctx context.Context, p SearchParams) ([]Job, error) {
	engine.IncrJobBankRequests()

	if s.baseURL == "" {
		return nil, unavailable(SourceJobBank, errors.New("proxy URL not configured"))
	}

	q := url.Values{}
	if kw := strings.TrimSpace(strings.Join(p.Keywords, " ")); kw != "" {
		q.Set("keywords", kw)
	}
	if len(p.Locations) > 0 {
		q.Set("location", strings.TrimSpace(p.Locations[0]))
	}
	if len(p.ClearanceLevels) > 0 {
		q.Set("clearance", string(ParseClearance(p.ClearanceLevels[0])))
	}
	if p.Remote != nil {
		q.Set("telework", strconv.FormatBool(*p.Remote))
	}
	q.Set("page", strconv.Itoa(p.page()))
	q.Set("per_page", strconv.Itoa(p.pageSize()))

	body, err := engine.FetchBody(ctx, s.baseURL+"/jobs?"+q.Encode(), nil)
	if err != nil {
		return nil, unavailable(SourceJobBank, err)
	}

	raws, err := parseJobBankResponse(body)
	if err != nil {
		return nil, malformed(SourceJobBank, err)
	}

	out := make([]Job, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r, SourceJobBank))
	}

	slog.Debug("jobbank: search complete", slog.Int("results", len(out)), slog.Int("page", p.page()))
	return out, nil
}

// parseJobBankResponse decodes the proxy envelope. A missing "jobs" key is an error;
// an empty list is not.
func parseJobBankResponse(body []byte) ([]RawJob, error) {
	var resp jobBankResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Jobs == nil {
		return nil, errors.New(`response has no "jobs" array`)
	}
	raws := make([]RawJob, 0, len(*resp.Jobs))
	for _, j := range *resp.Jobs {
		raws = append(raws, toJobBankRaw(j))
	}
	return raws, nil
}

func toJobBankRaw(j jobBankJob) RawJob {
	min, max := j.SalaryMin, j.SalaryMax
	if strings.EqualFold(j.SalaryPeriod, "hourly") {
		min, max = min*hoursPerYear, max*hoursPerYear
	}

	location := strings.Join(nonEmpty(j.City, j.Province), ", ")
	if location != "" && !strings.Contains(strings.ToLower(location), "canada") {
		location += ", Canada"
	}

	id := ""
	if j.JobID != "" {
		id = SourceJobBank + "-" + j.JobID
	}
	return RawJob{
		ID:               id,
		Title:            j.Title,
		Company:          j.Employer,
		Location:         location,
		Description:      j.Description,
		RequiredSkills:   j.Skills,
		PreferredSkills:  j.AssetSkills,
		SalaryMin:        min,
		SalaryMax:        max,
		Remote:           j.Telework,
		ClearanceLevel:   j.Clearance,
		RequiredMOSCodes: j.MOSCodes,
		JobType:          j.EmploymentType,
		Industry:         j.Sector,
		EducationLevel:   j.Education,
		Benefits:         j.Benefits,
		Posted:           j.DatePosted,
		URL:              j.URL,
	}
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
