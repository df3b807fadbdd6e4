package jobs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillJob() Job {
	return Normalize(RawJob{
		Title:           "SOC Analyst",
		RequiredSkills:  []string{"Network Security", "Incident Response"},
		PreferredSkills: []string{"Python"},
	}, SourceLocal)
}

func TestMatchSkills_NilCases(t *testing.T) {
	cfg := DefaultScoring()
	assert.Nil(t, MatchSkills(skillJob(), nil, cfg))
	assert.Nil(t, MatchSkills(skillJob(), []string{" ", ""}, cfg))
	assert.Nil(t, MatchSkills(Normalize(RawJob{Title: "x"}, SourceLocal), []string{"python"}, cfg))

	pyJob := Normalize(RawJob{RequiredSkills: []string{"python"}}, SourceLocal)
	assert.Nil(t, MatchSkills(pyJob, []string{"java"}, cfg))
}

func TestMatchSkills_RequiredWeighsMore(t *testing.T) {
	cfg := DefaultScoring()
	m := MatchSkills(skillJob(), []string{"python", "security"}, cfg)
	require.NotNil(t, m)
	assert.Equal(t, []string{"Network Security", "Python"}, m.MatchingSkills)
	assert.Equal(t, 30, m.MatchScore)
	assert.Equal(t, "SOC Analyst", m.Title)
}

func TestMatchSkills_Deduplicates(t *testing.T) {
	m := MatchSkills(skillJob(), []string{"network", "security", "NETWORK SECURITY"}, DefaultScoring())
	require.NotNil(t, m)
	assert.Equal(t, []string{"Network Security"}, m.MatchingSkills)
	assert.Equal(t, 20, m.MatchScore)
}

func TestMatchSkills_Fuzzy(t *testing.T) {
	cfg := DefaultScoring()

	m := MatchSkills(skillJob(), []string{"networking security"}, cfg)
	require.NotNil(t, m)
	assert.Equal(t, []string{"Network Security"}, m.MatchingSkills)
	assert.Equal(t, 18, m.MatchScore)

	m = MatchSkills(skillJob(), []string{"responder"}, cfg)
	require.NotNil(t, m)
	assert.Equal(t, []string{"Incident Response"}, m.MatchingSkills)
	assert.Equal(t, 6, m.MatchScore)

	m = MatchSkills(skillJob(), []string{"network administration"}, cfg)
	require.NotNil(t, m, "one exact shared word is enough")
	assert.Equal(t, []string{"Network Security"}, m.MatchingSkills)
	assert.Equal(t, 10, m.MatchScore)

	assert.Nil(t, MatchSkills(skillJob(), []string{"data administration"}, cfg))
}

func TestMatchSkills_FuzzyAccumulatesWords(t *testing.T) {
	cfg := DefaultScoring()
	pm := Normalize(RawJob{RequiredSkills: []string{"Program Management"}}, SourceLocal)

	m := MatchSkills(pm, []string{"project management"}, cfg)
	require.NotNil(t, m)
	assert.Equal(t, []string{"Program Management"}, m.MatchingSkills)
	assert.Equal(t, 10, m.MatchScore)
}

func TestMatchSkills_FuzzyAcceptsEverySkillAboveThreshold(t *testing.T) {
	m := MatchSkills(skillJob(), []string{"security response"}, DefaultScoring())
	require.NotNil(t, m)
	assert.ElementsMatch(t, []string{"Network Security", "Incident Response"}, m.MatchingSkills)
	assert.Equal(t, 20, m.MatchScore)
}

func TestMatchSkills_ScoreBounded(t *testing.T) {
	var skills []string
	for i := range 30 {
		skills = append(skills, fmt.Sprintf("skill%02d", i))
	}
	j := Normalize(RawJob{RequiredSkills: skills}, SourceLocal)
	m := MatchSkills(j, skills, DefaultScoring())
	require.NotNil(t, m)
	assert.Equal(t, 100, m.MatchScore)
	assert.Len(t, m.MatchingSkills, 30)

	for _, l := range BuiltinListings() {
		if m := MatchSkills(l, []string{"leadership", "security", "python", "logistics"}, DefaultScoring()); m != nil {
			assert.GreaterOrEqual(t, m.MatchScore, 0)
			assert.LessOrEqual(t, m.MatchScore, 100)
			assert.NotEmpty(t, m.MatchingSkills)
		}
	}
}
