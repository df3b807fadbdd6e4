package jobs

import (
	"math"
	"slices"
	"strings"
)

type skillHit struct {
	skill string
	score float64
}

// MatchSkills annotates job with the candidate skills it wants. It returns nil when
// there is nothing to compare or nothing matched.
//
// A candidate skill matches a job skill when either contains the other (case-insensitive);
// required skills weigh more than preferred ones. Without a containment hit every job
// skill whose word-level fuzzy score exceeds cfg.FuzzyThreshold matches, scoring that value.
func MatchSkills(job Job, candidateSkills []string, cfg ScoringConfig) *MatchResult {
	cands := lowerTerms(candidateSkills)
	if len(cands) == 0 {
		return nil
	}
	type jobSkill struct {
		name   string
		lower  string
		weight float64
	}
	var skills []jobSkill
	for _, s := range job.RequiredSkills {
		skills = append(skills, jobSkill{s, strings.ToLower(s), cfg.RequiredSkillWeight})
	}
	for _, s := range job.PreferredSkills {
		skills = append(skills, jobSkill{s, strings.ToLower(s), cfg.PreferredSkillWeight})
	}
	if len(skills) == 0 {
		return nil
	}

	best := make(map[string]int) // lower skill -> index in hits
	var hits []skillHit
	record := func(js jobSkill, score float64) {
		if i, ok := best[js.lower]; ok {
			hits[i].score = max(hits[i].score, score)
			return
		}
		best[js.lower] = len(hits)
		hits = append(hits, skillHit{skill: js.name, score: score})
	}

	for _, c := range cands {
		matched := false
		for _, js := range skills {
			if strings.Contains(js.lower, c) || strings.Contains(c, js.lower) {
				record(js, js.weight)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		for _, js := range skills {
			if score := fuzzySkillScore(c, js.lower, cfg); score > cfg.FuzzyThreshold {
				record(js, score)
			}
		}
	}
	if len(hits) == 0 {
		return nil
	}

	slices.SortStableFunc(hits, func(a, b skillHit) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	var total float64
	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.skill
		total += h.score
	}
	return &MatchResult{
		Job:            job,
		MatchingSkills: names,
		MatchScore:     min(100, int(math.Round(total*cfg.MatchScoreScale))),
	}
}

// fuzzySkillScore accumulates word-pair scores between two lower-cased skills:
// exact word, substring (long words only) or shared prefix.
func fuzzySkillScore(candidate, skill string, cfg ScoringConfig) float64 {
	var sum float64
	for _, a := range strings.Fields(candidate) {
		for _, b := range strings.Fields(skill) {
			sum += wordScore(a, b, cfg)
		}
	}
	return sum
}

func wordScore(a, b string, cfg ScoringConfig) float64 {
	switch {
	case a == b:
		return cfg.FuzzyExactWord
	case len(a) >= cfg.FuzzyMinWordLen && len(b) >= cfg.FuzzyMinWordLen &&
		(strings.Contains(a, b) || strings.Contains(b, a)):
		return cfg.FuzzySubstring
	case len(a) >= cfg.FuzzyPrefixLen && len(b) >= cfg.FuzzyPrefixLen &&
		a[:cfg.FuzzyPrefixLen] == b[:cfg.FuzzyPrefixLen]:
		return cfg.FuzzyPrefix
	}
	return 0
}
