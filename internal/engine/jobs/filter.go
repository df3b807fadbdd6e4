package jobs

import (
	"slices"
	"strings"

	"github.com/anatolykoptev/go_vetjobs/internal/engine"
)

// LocalFilter narrows a Dataset by SearchParams without touching the network.
type LocalFilter struct {
	data Dataset
}

// NewLocalFilter binds the filter to a dataset provider.
func NewLocalFilter(data Dataset) *LocalFilter {
	return &LocalFilter{data: data}
}

type jobPredicate func(Job) bool

// Filter returns listings that satisfy every present dimension of p, in dataset order.
// Dimensions are applied region, keyword, location, radius, job type, industry,
// experience, education, company size, rating, benefits, MOS, clearance, skills, remote.
func (f *LocalFilter) Filter(p SearchParams) []Job {
	preds := f.predicates(p)
	out := make([]Job, 0)
	for _, j := range f.data.Listings() {
		if matchesAll(j, preds) {
			out = append(out, j)
		}
	}
	return out
}

func matchesAll(j Job, preds []jobPredicate) bool {
	for _, pred := range preds {
		if !pred(j) {
			return false
		}
	}
	return true
}

func (f *LocalFilter) predicates(p SearchParams) []jobPredicate {
	var preds []jobPredicate

	// Unknown regions are malformed input and do not filter.
	if p.Region.known() {
		region := p.Region
		preds = append(preds, func(j Job) bool {
			return matchesRegion(j.Location, region)
		})
	}
	if kws := lowerTerms(p.Keywords); len(kws) > 0 {
		preds = append(preds, func(j Job) bool {
			hay := strings.ToLower(strings.Join(append([]string{j.Title, j.Company, j.Description}, j.Skills()...), " "))
			return containsAny(hay, kws)
		})
	}
	if locs := foldTerms(p.Locations); len(locs) > 0 {
		preds = append(preds, func(j Job) bool {
			return containsAny(engine.FoldText(j.Location), locs)
		})
	}
	// Radius: no geocoding, so it never narrows the result.
	if jt := strings.ToLower(strings.TrimSpace(p.JobType)); jt != "" {
		preds = append(preds, func(j Job) bool { return strings.EqualFold(j.JobType, jt) })
	}
	if ind := strings.ToLower(strings.TrimSpace(p.Industry)); ind != "" {
		preds = append(preds, func(j Job) bool {
			return strings.Contains(strings.ToLower(j.Industry), ind)
		})
	}
	if v := strings.TrimSpace(p.ExperienceLevel); v != "" {
		preds = append(preds, func(j Job) bool { return strings.EqualFold(j.ExperienceLevel, v) })
	}
	if v := strings.TrimSpace(p.EducationLevel); v != "" {
		preds = append(preds, func(j Job) bool { return strings.EqualFold(j.EducationLevel, v) })
	}
	if v := strings.TrimSpace(p.CompanySize); v != "" {
		preds = append(preds, func(j Job) bool { return strings.EqualFold(j.CompanySize, v) })
	}
	if p.CompanyRating > 0 {
		min := p.CompanyRating
		preds = append(preds, func(j Job) bool {
			return j.CompanyRating != nil && *j.CompanyRating >= min
		})
	}
	if bens := lowerTerms(p.Benefits); len(bens) > 0 {
		preds = append(preds, func(j Job) bool { return anyEqualFold(j.Benefits, bens) })
	}
	if codes := upperTerms(p.MOSCodes); len(codes) > 0 {
		preds = append(preds, func(j Job) bool {
			for _, c := range codes {
				if c == j.MOSCode || slices.Contains(j.RequiredMOSCodes, c) {
					return true
				}
			}
			return false
		})
	}
	if levels := clearanceSet(p.ClearanceLevels); len(levels) > 0 {
		preds = append(preds, func(j Job) bool { return levels[j.ClearanceLevel] })
	}
	if skills := lowerTerms(p.MilitarySkills); len(skills) > 0 {
		preds = append(preds, func(j Job) bool {
			return containsAny(strings.ToLower(strings.Join(j.RequiredSkills, "\n")), skills)
		})
	}
	if p.Remote != nil {
		want := *p.Remote
		preds = append(preds, func(j Job) bool { return j.Remote == want })
	}
	return preds
}

func containsAny(hay string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(hay, t) {
			return true
		}
	}
	return false
}

func anyEqualFold(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func lowerTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func upperTerms(in []string) []string {
	out := lowerTerms(in)
	for i := range out {
		out[i] = strings.ToUpper(out[i])
	}
	return out
}

func foldTerms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = engine.FoldText(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clearanceSet(in []string) map[Clearance]bool {
	if len(in) == 0 {
		return nil
	}
	set := make(map[Clearance]bool, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		set[ParseClearance(s)] = true
	}
	return set
}
