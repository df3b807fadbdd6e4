package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// SourceRemoteOK is the remote-only aggregator used as the last resort in every region.
const SourceRemoteOK = "remoteok"

// --- RemoteOK API types ---

type remoteOKJob struct {
	Slug        string   `json:"slug"`
	ID          string   `json:"id"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	SalaryMin   float64  `json:"salary_min"`
	SalaryMax   float64  `json:"salary_max"`
	Date        string   `json:"date"`
	URL         string   `json:"url"`
}

// RemoteOKSource queries the RemoteOK JSON feed. It has no region or paging
// parameters, so both are applied locally after the fetch.
type RemoteOKSource struct {
	apiURL string
}

// NewRemoteOKSource creates the source; an empty apiURL uses the public endpoint.
func NewRemoteOKSource(apiURL string) *RemoteOKSource {
	if apiURL == "" {
		apiURL = engine.DefaultRemoteOKURL
	}
	return &RemoteOKSource{apiURL: apiURL}
}

func (s *RemoteOKSource) Name() string { return SourceRemoteOK }

// Search fetches the feed for the best tag in the keywords and keeps listings whose
// location fits the region.
func (s *RemoteOKSource) Search(ctx context.Context, p SearchParams) ([]Job, error) {
	engine.IncrRemoteOKRequests()

	u, err := url.Parse(s.apiURL)
	if err != nil {
		return nil, unavailable(SourceRemoteOK, err)
	}
	fields := strings.Fields(strings.ToLower(strings.Join(p.Keywords, " ")))
	tag := ""
	if len(fields) > 0 {
		tag = pickBestRemoteOKTag(fields)
		q := u.Query()
		q.Set("tag", tag)
		u.RawQuery = q.Encode()
	}

	body, err := engine.FetchBody(ctx, u.String(), nil)
	if err != nil {
		return nil, unavailable(SourceRemoteOK, err)
	}

	raws, err := parseRemoteOKResponse(body)
	if err != nil {
		return nil, malformed(SourceRemoteOK, err)
	}

	region := p.Region.orDefault()
	out := make([]Job, 0, len(raws))
	for _, r := range filterRemoteJobs(raws, fields) {
		if !matchesRegion(r.Location, region) && !containsAnyFolded(r.Location, globalTokens) {
			continue
		}
		out = append(out, Normalize(r, SourceRemoteOK))
	}

	slog.Debug("remoteok: search complete", slog.String("tag", tag), slog.Int("raw", len(raws)), slog.Int("filtered", len(out)))
	return out, nil
}

// parseRemoteOKResponse decodes the feed array, skipping [0] (metadata with the "legal" notice).
// A body that is not an array is malformed; an array with only metadata is an empty result.
func parseRemoteOKResponse(body []byte) ([]RawJob, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("remoteok parse error: %w", err)
	}
	if len(items) <= 1 {
		return []RawJob{}, nil
	}

	raws := make([]RawJob, 0, len(items)-1)
	for _, item := range items[1:] {
		var j remoteOKJob
		if err := json.Unmarshal(item, &j); err != nil {
			continue
		}
		if j.Position == "" {
			continue
		}
		raws = append(raws, toRemoteOKRaw(j))
	}
	return raws, nil
}

func toRemoteOKRaw(j remoteOKJob) RawJob {
	jobURL := j.URL
	if jobURL == "" && j.Slug != "" {
		jobURL = "https://remoteok.com/remote-jobs/" + j.Slug
	}
	location := j.Location
	if strings.TrimSpace(location) == "" {
		location = "Worldwide"
	}
	id := ""
	if j.ID != "" {
		id = SourceRemoteOK + "-" + j.ID
	}
	remote := true
	return RawJob{
		ID:             id,
		Title:          j.Position,
		Company:        j.Company,
		Location:       location,
		Description:    j.Description,
		RequiredSkills: j.Tags,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		Remote:         &remote,
		Posted:         j.Date,
		URL:            jobURL,
	}
}

// filterRemoteJobs keeps listings whose title, company or tags contain every keyword;
// if none do, it falls back to any keyword.
func filterRemoteJobs(raws []RawJob, keywords []string) []RawJob {
	if len(keywords) == 0 {
		return raws
	}
	haystacks := make([]string, len(raws))
	for i, r := range raws {
		haystacks[i] = strings.ToLower(r.Title + " " + r.Company + " " + strings.Join(r.RequiredSkills, " "))
	}

	var filtered []RawJob
	for i, r := range raws {
		if matchesAllKeywords(haystacks[i], keywords) {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		for i, r := range raws {
			if containsAny(haystacks[i], keywords) {
				filtered = append(filtered, r)
			}
		}
	}
	return filtered
}

func matchesAllKeywords(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(haystack, kw) {
			return false
		}
	}
	return true
}

// remoteOKStopWords are common words that make poor RemoteOK tags.
var remoteOKStopWords = map[string]bool{
	"senior": true, "junior": true, "lead": true, "staff": true,
	"principal": true, "remote": true, "job": true, "jobs": true,
	"developer": true, "engineer": true, "position": true, "role": true,
	"and": true, "or": true, "the": true, "for": true, "with": true,
	"veteran": true, "veterans": true, "military": true,
}

// pickBestRemoteOKTag picks the most specific keyword for the tag filter.
func pickBestRemoteOKTag(fields []string) string {
	for _, f := range fields {
		if !remoteOKStopWords[f] && len(f) > 2 {
			return f
		}
	}
	return fields[0]
}
