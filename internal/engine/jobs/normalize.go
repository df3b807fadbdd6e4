package jobs

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// RawJob is the loosely-populated shape every source maps its response into.
// Nothing here is trusted; Normalize turns it into a Job.
type RawJob struct {
	ID               string
	Title            string
	Company          string
	Location         string
	Description      string
	RequiredSkills   []string
	PreferredSkills  []string
	SalaryRange      string  // explicit band, if the source has one
	SalaryMin        float64 // numeric annual salary bounds, 0 = unknown
	SalaryMax        float64
	Remote           *bool
	ClearanceLevel   string
	MOSCode          string
	RequiredMOSCodes []string
	JobType          string
	Industry         string
	ExperienceLevel  string
	EducationLevel   string
	CompanySize      string
	CompanyRating    *float64
	Benefits         []string
	Date             time.Time
	Posted           string // used when Date is zero
	URL              string
}

// Defaults for required text fields a source left empty.
const (
	DefaultTitle    = "Untitled position"
	DefaultCompany  = "Unknown employer"
	DefaultLocation = "Not specified"

	maxDescriptionRunes = 4000
	ellipsis            = "..."
)

// jobIDNamespace scopes deterministic IDs for records that arrive without one.
var jobIDNamespace = uuid.MustParse("9b3f6c1e-4a52-4f0e-9d3c-2f1a7e5b8c40")

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

var postedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// Normalize converts a source record into the canonical Job, filling every required field.
// Normalize(RawFromJob(j), j.Source) == j for any normalized j.
func Normalize(raw RawJob, source string) Job {
	j := Job{
		Title:            orDefault(engine.CollapseSpace(raw.Title), DefaultTitle),
		Company:          orDefault(engine.CollapseSpace(raw.Company), DefaultCompany),
		Location:         orDefault(engine.CollapseSpace(raw.Location), DefaultLocation),
		Description:      normalizeDescription(raw.Description),
		RequiredSkills:   cleanList(raw.RequiredSkills),
		PreferredSkills:  cleanList(raw.PreferredSkills),
		SalaryRange:      normalizeSalary(raw),
		ClearanceLevel:   ParseClearance(raw.ClearanceLevel),
		MOSCode:          strings.ToUpper(strings.TrimSpace(raw.MOSCode)),
		RequiredMOSCodes: upperList(cleanList(raw.RequiredMOSCodes)),
		JobType:          strings.ToLower(strings.TrimSpace(raw.JobType)),
		Industry:         strings.TrimSpace(raw.Industry),
		ExperienceLevel:  strings.ToLower(strings.TrimSpace(raw.ExperienceLevel)),
		EducationLevel:   strings.ToLower(strings.TrimSpace(raw.EducationLevel)),
		CompanySize:      strings.ToLower(strings.TrimSpace(raw.CompanySize)),
		CompanyRating:    clampRating(raw.CompanyRating),
		Benefits:         cleanList(raw.Benefits),
		Date:             normalizeDate(raw.Date, raw.Posted),
		Source:           strings.TrimSpace(source),
		URL:              strings.TrimSpace(raw.URL),
	}

	if raw.Remote != nil {
		j.Remote = *raw.Remote
	} else {
		j.Remote = strings.Contains(strings.ToLower(j.Location), "remote")
	}

	j.ID = strings.TrimSpace(raw.ID)
	if j.ID == "" {
		j.ID = uuid.NewSHA1(jobIDNamespace, []byte(strings.Join([]string{
			j.Source, j.Title, j.Company, j.Location, j.URL,
		}, "\x1f"))).String()
	}
	return j
}

// RawFromJob turns a canonical job back into a raw record (used for re-normalization).
func RawFromJob(j Job) RawJob {
	remote := j.Remote
	return RawJob{
		ID:               j.ID,
		Title:            j.Title,
		Company:          j.Company,
		Location:         j.Location,
		Description:      j.Description,
		RequiredSkills:   j.RequiredSkills,
		PreferredSkills:  j.PreferredSkills,
		SalaryRange:      string(j.SalaryRange),
		Remote:           &remote,
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
		Date:             j.Date,
		URL:              j.URL,
	}
}

// normalizeDescription strips markup and caps the length. The cap only applies above
// maxDescriptionRunes plus the ellipsis, so an already-capped text is left alone.
func normalizeDescription(s string) string {
	s = engine.CleanHTML(s)
	if utf8.RuneCountInString(s) > maxDescriptionRunes+len(ellipsis) {
		s = engine.TruncateRunes(s, maxDescriptionRunes, ellipsis)
	}
	return s
}

func normalizeSalary(raw RawJob) SalaryBand {
	if b, ok := ParseSalaryBand(raw.SalaryRange); ok {
		return b
	}
	switch {
	case raw.SalaryMin > 0 && raw.SalaryMax > 0:
		return BandForSalary((raw.SalaryMin + raw.SalaryMax) / 2)
	case raw.SalaryMin > 0:
		return BandForSalary(raw.SalaryMin)
	case raw.SalaryMax > 0:
		return BandForSalary(raw.SalaryMax)
	}
	return DefaultSalaryBand
}

func normalizeDate(t time.Time, posted string) time.Time {
	if !t.IsZero() {
		return t.UTC()
	}
	posted = strings.TrimSpace(posted)
	for _, layout := range postedLayouts {
		if parsed, err := time.Parse(layout, posted); err == nil {
			return parsed.UTC()
		}
	}
	return now()
}

func clampRating(r *float64) *float64 {
	if r == nil {
		return nil
	}
	v := *r
	switch {
	case v < 0:
		v = 0
	case v > 5:
		v = 5
	}
	return &v
}

// cleanList trims entries, drops empties and case-insensitive duplicates.
// Always returns a non-nil slice so JSON renders [].
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = engine.CollapseSpace(s)
		k := strings.ToLower(s)
		if s == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

func upperList(in []string) []string {
	for i := range in {
		in[i] = strings.ToUpper(in[i])
	}
	return in
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
