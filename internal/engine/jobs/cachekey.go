package jobs

import (
	"slices"
	"strconv"
	"strings"
)

// BuildKey derives the cache key for a search. Identical searches yield identical keys;
// the order of military skills does not matter, every other list is taken as given.
// String values are quoted, so no value can imitate a separator.
// Region defaults to canada for external searches, radius to 50, and the page
// (at least 1) comes last.
func BuildKey(p SearchParams, page int) string {
	skills := make([]string, 0, len(p.MilitarySkills))
	for _, s := range p.MilitarySkills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			skills = append(skills, s)
		}
	}
	slices.Sort(skills)

	radius := p.Radius
	if radius <= 0 {
		radius = DefaultRadiusKM
	}
	if page < 1 {
		page = 1
	}
	remote := ""
	if p.Remote != nil {
		remote = strconv.FormatBool(*p.Remote)
	}
	rating := ""
	if p.CompanyRating > 0 {
		rating = strconv.FormatFloat(p.CompanyRating, 'f', -1, 64)
	}

	fields := []string{
		"kw=" + quoteList(p.Keywords),
		"loc=" + quoteList(p.Locations),
		"radius=" + strconv.Itoa(radius),
		"type=" + strconv.Quote(p.JobType),
		"mos=" + quoteList(p.MOSCodes),
		"clearance=" + quoteList(p.ClearanceLevels),
		"remote=" + remote,
		"skills=" + quoteList(skills),
		"industry=" + strconv.Quote(p.Industry),
		"exp=" + strconv.Quote(p.ExperienceLevel),
		"edu=" + strconv.Quote(p.EducationLevel),
		"size=" + strconv.Quote(p.CompanySize),
		"rating=" + rating,
		"benefits=" + quoteList(p.Benefits),
		"region=" + keyRegion(p),
		"external=" + strconv.FormatBool(p.UseExternalSources),
		"per_page=" + strconv.Itoa(p.pageSize()),
		"page=" + strconv.Itoa(page),
	}
	return strings.Join(fields, "|")
}

// quoteList renders a list with every element Go-quoted, so separators inside
// values cannot make two different lists look alike.
func quoteList(in []string) string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(out, ",") + "]"
}

// keyRegion mirrors how a search resolves its region. The local filter treats an
// absent region as "everywhere", so only external searches fall back to the default.
func keyRegion(p SearchParams) string {
	switch {
	case p.UseExternalSources:
		return string(p.Region.orDefault())
	case p.Region.known():
		return string(p.Region)
	}
	return "any"
}
