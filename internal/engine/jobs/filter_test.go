package jobs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinFilter() *LocalFilter {
	return NewLocalFilter(NewStaticDataset(BuiltinListings()))
}

func titles(jobs []Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func TestLocalFilter_NoParamsReturnsDatasetInOrder(t *testing.T) {
	all := BuiltinListings()
	got := builtinFilter().Filter(SearchParams{})
	assert.Equal(t, all, got)
}

func TestLocalFilter_Keyword(t *testing.T) {
	got := builtinFilter().Filter(SearchParams{Keywords: []string{"cybersecurity"}})
	require.NotEmpty(t, got)
	assert.Contains(t, titles(got), "Cybersecurity Analyst")
	for _, j := range got {
		hay := strings.ToLower(j.Title + j.Company + j.Description + strings.Join(j.Skills(), " "))
		assert.Contains(t, hay, "cybersecurity")
	}
	assert.NotContains(t, titles(got), "Logistics Coordinator")
}

func TestLocalFilter_KeywordsAreOR(t *testing.T) {
	got := builtinFilter().Filter(SearchParams{Keywords: []string{"paramedic", "avionics"}})
	assert.ElementsMatch(t, []string{"Aircraft Maintenance Engineer", "Paramedic"}, titles(got))
}

func TestLocalFilter_MilitarySkills(t *testing.T) {
	got := builtinFilter().Filter(SearchParams{MilitarySkills: []string{"logistics"}})
	require.NotEmpty(t, got)
	assert.Contains(t, titles(got), "Logistics Coordinator")
	for _, j := range got {
		assert.Contains(t, strings.ToLower(strings.Join(j.RequiredSkills, " ")), "logistics")
	}
	assert.NotContains(t, titles(got), "Paramedic")
}

func TestLocalFilter_PreservesOrderAfterFiltering(t *testing.T) {
	all := BuiltinListings()
	got := builtinFilter().Filter(SearchParams{JobType: "FULL-TIME"})
	require.NotEmpty(t, got)
	pos := map[string]int{}
	for i, j := range all {
		pos[j.ID] = i
	}
	for i := 1; i < len(got); i++ {
		assert.Less(t, pos[got[i-1].ID], pos[got[i].ID])
	}
	for _, j := range got {
		assert.Equal(t, "full-time", j.JobType)
	}
}

func TestLocalFilter_Dimensions(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name   string
		params SearchParams
		want   []string
	}{
		{"region us", SearchParams{Region: RegionUS}, []string{"Intelligence Analyst", "Network Technician"}},
		{"accent-folded location", SearchParams{Locations: []string{"montreal"}}, []string{"Operations Manager"}},
		{"location OR", SearchParams{Locations: []string{"Regina", "Winnipeg"}}, []string{"Aircraft Maintenance Engineer", "Paramedic"}},
		{"industry substring", SearchParams{Industry: "defence"}, []string{"Cybersecurity Analyst", "Intelligence Analyst"}},
		{"experience", SearchParams{ExperienceLevel: "Executive"}, []string{"Operations Manager"}},
		{"education", SearchParams{EducationLevel: "trade certificate"}, []string{"Heavy Equipment Technician"}},
		{"company size and rating", SearchParams{CompanySize: "small", CompanyRating: 4}, []string{"Training Program Instructor"}},
		{"benefits", SearchParams{Benefits: []string{"401K"}}, []string{"Intelligence Analyst", "Network Technician"}},
		{"mos code", SearchParams{MOSCodes: []string{"25u"}}, []string{"Network Technician"}},
		{"mos primary code", SearchParams{MOSCodes: []string{"00161"}}, []string{"Security Operations Supervisor"}},
		{"clearance set", SearchParams{ClearanceLevels: []string{"Top Secret", "secret"}}, []string{"Cybersecurity Analyst", "Intelligence Analyst", "Network Technician"}},
		{"remote true", SearchParams{Remote: &yes}, []string{"Remote IT Support Specialist"}},
		{"AND across dimensions", SearchParams{Region: RegionCanada, ClearanceLevels: []string{"secret"}}, []string{"Cybersecurity Analyst"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, titles(builtinFilter().Filter(tt.params)))
		})
	}

	remote := builtinFilter().Filter(SearchParams{Remote: &no})
	assert.Len(t, remote, len(BuiltinListings())-1)
}

func TestLocalFilter_UnknownRegionDoesNotFilter(t *testing.T) {
	got := builtinFilter().Filter(SearchParams{Region: "mars"})
	assert.Len(t, got, len(BuiltinListings()))
}

func TestLocalFilter_RadiusIsNoOp(t *testing.T) {
	f := builtinFilter()
	base := SearchParams{Locations: []string{"ottawa"}}
	withRadius := base
	withRadius.Radius = 1
	assert.Equal(t, f.Filter(base), f.Filter(withRadius))
}

func TestLocalFilter_EmptyFieldsAreSkipped(t *testing.T) {
	got := builtinFilter().Filter(SearchParams{
		Keywords:        []string{" ", ""},
		ClearanceLevels: []string{""},
		MOSCodes:        []string{},
	})
	assert.Len(t, got, len(BuiltinListings()))
}

func TestLocalFilter_NoMatch(t *testing.T) {
	got := builtinFilter().Filter(SearchParams{Keywords: []string{"astronaut"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
