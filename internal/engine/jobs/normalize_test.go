package jobs

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNormalize_Defaults(t *testing.T) {
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	old := now
	now = func() time.Time { return fixed }
	defer func() { now = old }()

	j := Normalize(RawJob{}, "adzuna")

	if j.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", j.Title, DefaultTitle)
	}
	if j.Company != DefaultCompany {
		t.Errorf("Company = %q, want %q", j.Company, DefaultCompany)
	}
	if j.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", j.Location, DefaultLocation)
	}
	if j.SalaryRange != Salary60kTo80k {
		t.Errorf("SalaryRange = %q, want mid band", j.SalaryRange)
	}
	if j.ClearanceLevel != ClearanceNone {
		t.Errorf("ClearanceLevel = %q, want none", j.ClearanceLevel)
	}
	for name, list := range map[string][]string{
		"RequiredSkills":   j.RequiredSkills,
		"PreferredSkills":  j.PreferredSkills,
		"RequiredMOSCodes": j.RequiredMOSCodes,
		"Benefits":         j.Benefits,
	} {
		if list == nil || len(list) != 0 {
			t.Errorf("%s = %#v, want empty non-nil", name, list)
		}
	}
	if !j.Date.Equal(fixed) {
		t.Errorf("Date = %v, want %v", j.Date, fixed)
	}
	if j.Source != "adzuna" {
		t.Errorf("Source = %q", j.Source)
	}
	if j.ID == "" {
		t.Error("ID should be derived when missing")
	}
}

func TestNormalize_SalaryBands(t *testing.T) {
	tests := []struct {
		name string
		raw  RawJob
		want SalaryBand
	}{
		{"explicit band wins", RawJob{SalaryRange: "80K-100K", SalaryMin: 30000}, Salary80kTo100k},
		{"midpoint", RawJob{SalaryMin: 50000, SalaryMax: 70000}, Salary60kTo80k},
		{"min only", RawJob{SalaryMin: 35000}, SalaryUnder40k},
		{"max only", RawJob{SalaryMax: 150000}, Salary100kPlus},
		{"boundary is upper band", RawJob{SalaryMin: 40000, SalaryMax: 40000}, Salary40kTo60k},
		{"unknown band falls back", RawJob{SalaryRange: "lots"}, Salary60kTo80k},
		{"unspecified kept", RawJob{SalaryRange: "unspecified"}, SalaryUnspecified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw, "x").SalaryRange; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_Fields(t *testing.T) {
	rating := 7.5
	j := Normalize(RawJob{
		Title:            "  Logistics   Officer ",
		Company:          "DND",
		Location:         "Remote - Ontario",
		Description:      "<p>Lead <b>supply</b> teams.</p><script>x()</script>",
		RequiredSkills:   []string{"Logistics", " logistics ", "", "Planning"},
		ClearanceLevel:   "Top Secret",
		MOSCode:          " 00168 ",
		RequiredMOSCodes: []string{"25b", "25B"},
		JobType:          "Full-Time",
		CompanyRating:    &rating,
		Posted:           "2026-09-01",
	}, "jobbank")

	if j.Title != "Logistics Officer" {
		t.Errorf("Title = %q", j.Title)
	}
	if j.Description != "Lead supply teams." {
		t.Errorf("Description = %q", j.Description)
	}
	if !reflect.DeepEqual(j.RequiredSkills, []string{"Logistics", "Planning"}) {
		t.Errorf("RequiredSkills = %v", j.RequiredSkills)
	}
	if j.ClearanceLevel != ClearanceTopSecret {
		t.Errorf("ClearanceLevel = %q", j.ClearanceLevel)
	}
	if j.MOSCode != "00168" {
		t.Errorf("MOSCode = %q", j.MOSCode)
	}
	if !reflect.DeepEqual(j.RequiredMOSCodes, []string{"25B"}) {
		t.Errorf("RequiredMOSCodes = %v", j.RequiredMOSCodes)
	}
	if j.JobType != "full-time" {
		t.Errorf("JobType = %q", j.JobType)
	}
	if !j.Remote {
		t.Error("Remote should be inferred from location")
	}
	if j.CompanyRating == nil || *j.CompanyRating != 5 {
		t.Errorf("CompanyRating = %v, want clamped to 5", j.CompanyRating)
	}
	if want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC); !j.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", j.Date, want)
	}
}

func TestNormalize_DeterministicID(t *testing.T) {
	raw := RawJob{Title: "Medic", Company: "Red Cross", Location: "Halifax, NS", URL: "https://x/1"}
	a := Normalize(raw, "adzuna")
	b := Normalize(raw, "adzuna")
	c := Normalize(raw, "remoteok")
	if a.ID != b.ID {
		t.Errorf("same input gave different IDs: %s vs %s", a.ID, b.ID)
	}
	if a.ID == c.ID {
		t.Error("different sources should give different IDs")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	rating := 4.2
	samples := append(BuiltinListings(),
		Normalize(RawJob{
			Title:          "Signals <em>Operator</em>",
			Description:    "<ul><li>Radio</li><li>Crypto &amp; comms</li></ul>",
			RequiredSkills: []string{"radio", "Radio"},
			SalaryMin:      90000,
			CompanyRating:  &rating,
			Posted:         "Mon, 02 Sep 2026 10:00:00 +0000",
		}, "remoteok"),
		Normalize(RawJob{Description: strings.Repeat("long text ", 600)}, "adzuna"),
		Normalize(RawJob{
			Title:       "Web Developer",
			Description: "Use &lt;script&gt; tags to embed code",
		}, "adzuna"),
	)
	if got := samples[len(samples)-1].Description; !strings.Contains(got, "tags to embed code") {
		t.Errorf("escaped markup lost: %q", got)
	}
	for _, j := range samples {
		again := Normalize(RawFromJob(j), j.Source)
		if !reflect.DeepEqual(again, j) {
			t.Errorf("Normalize not idempotent for %q:\n got %+v\nwant %+v", j.Title, again, j)
		}
	}
}

func TestBuiltinListings_Normalized(t *testing.T) {
	listings := BuiltinListings()
	if len(listings) == 0 {
		t.Fatal("no builtin listings")
	}
	seen := map[string]bool{}
	for _, j := range listings {
		if j.Source != SourceLocal {
			t.Errorf("%s: source %q", j.ID, j.Source)
		}
		if seen[j.ID] {
			t.Errorf("duplicate id %s", j.ID)
		}
		seen[j.ID] = true
	}
	listings[0].Title = "mutated"
	if BuiltinListings()[0].Title == "mutated" {
		t.Error("BuiltinListings should return a fresh copy")
	}
}
