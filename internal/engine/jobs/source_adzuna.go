package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// SourceAdzuna is the general-purpose aggregator available in every region.
const SourceAdzuna = "adzuna"

var adzunaCountry = map[Region]string{
	RegionCanada: "ca",
	RegionUS:     "us",
}

// --- Adzuna API types ---

type adzunaResponse struct {
	Results *[]adzunaResult `json:"results"`
	Count   int             `json:"count"`
}

type adzunaResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Company      adzunaLabel    `json:"company"`
	Location     adzunaLabel    `json:"location"`
	Category     adzunaCategory `json:"category"`
	SalaryMin    float64        `json:"salary_min"`
	SalaryMax    float64        `json:"salary_max"`
	RedirectURL  string         `json:"redirect_url"`
	Created      string         `json:"created"`
	ContractTime string         `json:"contract_time"` // full_time, part_time
	ContractType string         `json:"contract_type"` // permanent, contract
}

type adzunaLabel struct {
	DisplayName string `json:"display_name"`
}

type adzunaCategory struct {
	Label string `json:"label"`
}

// AdzunaSource queries the Adzuna search API.
type AdzunaSource struct {
	baseURL string
	appID   string
	appKey  string
}

// NewAdzunaSource creates the source. Missing credentials leave it unconfigured.
func NewAdzunaSource(baseURL, appID, appKey string) *AdzunaSource {
	if baseURL == "" {
		baseURL = engine.DefaultAdzunaBaseURL
	}
	return &AdzunaSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		appKey:  appKey,
	}
}

func (s *AdzunaSource) Name() string { return SourceAdzuna }

// Search fetches one page of listings for the search's region.
func (s *AdzunaSource) Search(ctx context.Context, p SearchParams) ([]Job, error) {
	engine.IncrAdzunaRequests()

	if s.appID == "" || s.appKey == "" {
		return nil, unavailable(SourceAdzuna, errors.New("ADZUNA_APP_ID / ADZUNA_APP_KEY not set"))
	}

	country := adzunaCountry[p.Region.orDefault()]
	endpoint := fmt.Sprintf("%s/%s/search/%d", s.baseURL, country, p.page())

	q := url.Values{}
	q.Set("app_id", s.appID)
	q.Set("app_key", s.appKey)
	q.Set("results_per_page", strconv.Itoa(p.pageSize()))
	q.Set("content-type", "application/json")
	if what := strings.TrimSpace(strings.Join(append(slices.Clone(p.Keywords), p.MilitarySkills...), " ")); what != "" {
		q.Set("what", what)
	}
	if len(p.Locations) > 0 {
		q.Set("where", strings.TrimSpace(p.Locations[0]))
	}
	switch strings.ToLower(strings.TrimSpace(p.JobType)) {
	case "full-time":
		q.Set("full_time", "1")
	case "part-time":
		q.Set("part_time", "1")
	case "contract":
		q.Set("contract", "1")
	}

	body, err := engine.FetchBody(ctx, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, unavailable(SourceAdzuna, err)
	}

	raws, err := parseAdzunaResponse(body)
	if err != nil {
		return nil, malformed(SourceAdzuna, err)
	}

	out := make([]Job, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r, SourceAdzuna))
	}

	slog.Debug("adzuna: search complete", slog.String("country", country), slog.Int("results", len(out)))
	return out, nil
}

func parseAdzunaResponse(body []byte) ([]RawJob, error) {
	var resp adzunaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, errors.New(`response has no "results" array`)
	}
	raws := make([]RawJob, 0, len(*resp.Results))
	for _, r := range *resp.Results {
		raws = append(raws, toAdzunaRaw(r))
	}
	return raws, nil
}

func toAdzunaRaw(r adzunaResult) RawJob {
	jobType := strings.ReplaceAll(r.ContractTime, "_", "-")
	if strings.EqualFold(r.ContractType, "contract") {
		jobType = "contract"
	}
	id := ""
	if r.ID != "" {
		id = SourceAdzuna + "-" + r.ID
	}
	return RawJob{
		ID:          id,
		Title:       r.Title,
		Company:     r.Company.DisplayName,
		Location:    r.Location.DisplayName,
		Description: r.Description,
		SalaryMin:   r.SalaryMin,
		SalaryMax:   r.SalaryMax,
		JobType:     jobType,
		Industry:    r.Category.Label,
		Posted:      r.Created,
		URL:         r.RedirectURL,
	}
}
