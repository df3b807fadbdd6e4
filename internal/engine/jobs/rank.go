package jobs

import (
	"cmp"
	"slices"
	"strings"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// Score computes the composite relevance of job for profile, in [0, 1].
// Components without enough input on either side contribute 0.
func Score(profile UserProfile, job Job, cfg ScoringConfig) float64 {
	s := cfg.SkillsWeight*skillsScore(profile.Skills, job.Skills()) +
		cfg.ExperienceWeight*experienceScore(profile.YearsExperience, job.ExperienceLevel, cfg.ExperienceDecayYears) +
		cfg.LocationWeight*locationScore(profile.PreferredLocations, job) +
		cfg.JobTypeWeight*jobTypeScore(profile.PreferredJobTypes, job.JobType) +
		cfg.SalaryWeight*salaryScore(profile, job.SalaryRange)
	return min(1, max(0, s))
}

// skillsScore is the overlap of the two skill sets relative to the larger one.
func skillsScore(have, want []string) float64 {
	a := lowerSet(have)
	b := lowerSet(want)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	for s := range a {
		if b[s] {
			n++
		}
	}
	return float64(n) / float64(max(len(a), len(b)))
}

// experienceScore is 1 inside the level's year band and decays linearly to 0
// decay years outside it.
func experienceScore(years float64, level string, decay float64) float64 {
	lo, hi, ok := ExperienceBand(level)
	if !ok || decay <= 0 {
		return 0
	}
	var dist float64
	switch {
	case years < lo:
		dist = lo - years
	case years > hi:
		dist = years - hi
	}
	return max(0, 1-dist/decay)
}

func locationScore(prefs []string, job Job) float64 {
	loc := engine.FoldText(job.Location)
	if loc == "" {
		return 0
	}
	for _, p := range foldTerms(prefs) {
		if strings.Contains(loc, p) || strings.Contains(p, loc) {
			return 1
		}
		if p == "remote" && job.Remote {
			return 1
		}
	}
	return 0
}

// jobTypeScore is 1 when any preferred role is a case-insensitive substring of the job type.
func jobTypeScore(prefs []string, jobType string) float64 {
	jt := strings.ToLower(strings.TrimSpace(jobType))
	if jt == "" {
		return 0
	}
	for _, p := range lowerTerms(prefs) {
		if strings.Contains(jt, p) {
			return 1
		}
	}
	return 0
}

// salaryScore is 1 when the job's band lies entirely within the preferred range.
func salaryScore(profile UserProfile, band SalaryBand) float64 {
	pmin, pmax, ok := profile.salaryRange()
	if !ok {
		return 0
	}
	bmin, bmax, ok := band.Bounds()
	if !ok {
		return 0
	}
	if bmin < pmin {
		return 0
	}
	if pmax > 0 && (bmax == 0 || bmax > pmax) {
		return 0
	}
	return 1
}

func lowerSet(in []string) map[string]bool {
	set := make(map[string]bool, len(in))
	for _, s := range lowerTerms(in) {
		set[s] = true
	}
	return set
}

// Recommend scores every job for profile and returns them by descending relevance,
// ties broken by match score. limit <= 0 returns all.
func Recommend(profile UserProfile, listings []Job, cfg ScoringConfig, limit int) []Recommendation {
	recs := make([]Recommendation, 0, len(listings))
	for _, j := range listings {
		m := MatchSkills(j, profile.Skills, cfg)
		if m == nil {
			m = &MatchResult{Job: j, MatchingSkills: []string{}}
		}
		recs = append(recs, Recommendation{MatchResult: *m, Relevance: Score(profile, j, cfg)})
	}
	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		if c := cmp.Compare(b.Relevance, a.Relevance); c != 0 {
			return c
		}
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
