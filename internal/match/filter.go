package match

import (
	"sort"
	"strings"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// FilterJobs applies the criteria to the listings. Categories compose as a
// logical AND; values within a category OR together. An empty criteria set
// is the identity.
func FilterJobs(listings []domain.JobListing, c domain.FilterCriteria) []domain.JobListing {
	if c.Empty() {
		return listings
	}
	out := make([]domain.JobListing, 0, len(listings))
	for _, l := range listings {
		if !anySubstring(c.Locations, l.Location) {
			continue
		}
		if !anyEqualFold(c.WorkTypes, l.WorkType) {
			continue
		}
		if !anyEqualFold(c.ExperienceLevels, l.ExperienceLevel) {
			continue
		}
		if !anyEqualFold(c.Companies, l.Company) {
			continue
		}
		if !skillMatch(c.Skills, l) {
			continue
		}
		if !industryMatch(c.Industries, l.Industries) {
			continue
		}
		if c.Keyword != "" && !keywordMatch(c.Keyword, l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// anySubstring passes when the accept list is empty or any accepted value is
// a substring of the candidate (case-insensitive).
func anySubstring(accepted []string, candidate string) bool {
	if len(accepted) == 0 {
		return true
	}
	candidate = strings.ToLower(candidate)
	for _, a := range accepted {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" && strings.Contains(candidate, a) {
			return true
		}
	}
	return false
}

func anyEqualFold(accepted []string, candidate string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, a := range accepted {
		if strings.EqualFold(strings.TrimSpace(a), candidate) {
			return true
		}
	}
	return false
}

// skillMatch accepts a listing when any requested skill appears in its
// required or optional skill sets.
func skillMatch(skills []string, l domain.JobListing) bool {
	if len(skills) == 0 {
		return true
	}
	have := foldSet(append(append([]string{}, l.RequiredSkills...), l.OptionalSkills...))
	for _, s := range skills {
		if _, ok := have[strings.ToLower(strings.TrimSpace(s))]; ok {
			return true
		}
	}
	return false
}

func industryMatch(industries []string, have []string) bool {
	if len(industries) == 0 {
		return true
	}
	set := foldSet(have)
	for _, i := range industries {
		if _, ok := set[strings.ToLower(strings.TrimSpace(i))]; ok {
			return true
		}
	}
	return false
}

func keywordMatch(kw string, l domain.JobListing) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	return strings.Contains(strings.ToLower(l.Title), kw) ||
		strings.Contains(strings.ToLower(l.Description), kw)
}

// ExtractFilterOptions derives, per filterable attribute, the sorted set of
// distinct non-empty values observed across the listings. Purely derived.
func ExtractFilterOptions(listings []domain.JobListing) domain.FilterOptions {
	locations := map[string]struct{}{}
	workTypes := map[string]struct{}{}
	levels := map[string]struct{}{}
	companies := map[string]struct{}{}
	skills := map[string]struct{}{}
	industries := map[string]struct{}{}
	for _, l := range listings {
		addNonEmpty(locations, l.Location)
		addNonEmpty(workTypes, strings.ToLower(l.WorkType))
		addNonEmpty(levels, strings.ToLower(l.ExperienceLevel))
		addNonEmpty(companies, l.Company)
		for _, s := range l.RequiredSkills {
			addNonEmpty(skills, strings.ToLower(s))
		}
		for _, s := range l.OptionalSkills {
			addNonEmpty(skills, strings.ToLower(s))
		}
		for _, i := range l.Industries {
			addNonEmpty(industries, strings.ToLower(i))
		}
	}
	return domain.FilterOptions{
		Locations:        sortedKeys(locations),
		WorkTypes:        sortedKeys(workTypes),
		ExperienceLevels: sortedKeys(levels),
		Companies:        sortedKeys(companies),
		Skills:           sortedKeys(skills),
		Industries:       sortedKeys(industries),
	}
}

func addNonEmpty(m map[string]struct{}, v string) {
	if v = strings.TrimSpace(v); v != "" {
		m[v] = struct{}{}
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
