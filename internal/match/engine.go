// Package match implements the heuristic job-matching engine: scoring a
// seeker profile against listings, ranking, filtering, and filter-option
// extraction. Everything here is pure and deterministic.
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// Point budget. Sub-rules are independent and additive; the sum is clamped
// to [0,100]. Location carries the largest single bonus.
const (
	requiredSkillPts = 20
	requiredSkillCap = 60
	optionalSkillPts = 8
	optionalSkillCap = 20
	titleMatchBonus  = 30
	titleTechBonus   = 5
	workExactBonus   = 15
	workRemoteBonus  = 10
	workHybridBonus  = 5
	locationBonus    = 35
	locationRemote   = 15
	industryBonus    = 10
)

// DefaultThreshold is the minimum score a listing must reach to be
// recommended. The search/filter surface applies no threshold.
const DefaultThreshold = 40

// MaxRecommendations caps the ranked result set.
const MaxRecommendations = 5

// genericTitleKeywords mark a listing title as a technical role for the
// small consolation title bonus.
var genericTitleKeywords = []string{"engineer", "developer", "programmer", "architect"}

// Engine scores and ranks listings for a seeker profile.
type Engine struct {
	Threshold int
}

// New returns an Engine with the default acceptance threshold.
func New() Engine { return Engine{Threshold: DefaultThreshold} }

// Score computes the match score for a seeker against one listing.
// It is total over well-formed input: empty optional fields simply
// contribute nothing.
func (Engine) Score(seeker domain.SeekerProfile, listing domain.JobListing) int {
	score := 0

	seekerSkills := foldSet(seeker.Skills)
	required := foldSet(listing.RequiredSkills)
	optional := foldSet(listing.OptionalSkills)

	score += capped(countOverlap(seekerSkills, required)*requiredSkillPts, requiredSkillCap)
	score += capped(countOverlap(seekerSkills, optional)*optionalSkillPts, optionalSkillCap)
	score += titleScore(seeker.PreferredTitles, listing.Title)
	score += workModeScore(seeker.WorkType, listing.WorkType)
	score += locationScore(seeker.PreferredLocations, listing.Location)

	if countOverlap(foldSet(seeker.Industries), foldSet(listing.Industries)) > 0 {
		score += industryBonus
	}

	return clamp(score, 0, 100)
}

// titleScore awards at most one title bonus: a substring hit in either
// direction between any preferred title and the listing title wins the full
// bonus, otherwise a generic technical-role keyword earns a small one.
func titleScore(preferred []string, listingTitle string) int {
	title := strings.ToLower(listingTitle)
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(title, p) || strings.Contains(p, title) {
			return titleMatchBonus
		}
	}
	for _, kw := range genericTitleKeywords {
		if strings.Contains(title, kw) {
			return titleTechBonus
		}
	}
	return 0
}

// workModeScore awards the exact-match bonus, or falls back to smaller
// bonuses for remote and hybrid listings, which are broadly acceptable.
func workModeScore(seekerMode, listingMode string) int {
	listingMode = strings.ToLower(strings.TrimSpace(listingMode))
	if listingMode == "" {
		return 0
	}
	if seekerMode != "" && strings.EqualFold(seekerMode, listingMode) {
		return workExactBonus
	}
	switch listingMode {
	case domain.WorkRemote:
		return workRemoteBonus
	case domain.WorkHybrid:
		return workHybridBonus
	}
	return 0
}

// locationScore awards the dominant bonus when any preferred location is a
// substring of the listing location, or a medium bonus when a remote-minded
// seeker meets a listing whose location mentions remote.
func locationScore(preferred []string, listingLocation string) int {
	loc := strings.ToLower(listingLocation)
	if loc == "" {
		return 0
	}
	wantsRemote := false
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(loc, p) {
			return locationBonus
		}
		if strings.Contains(p, domain.WorkRemote) {
			wantsRemote = true
		}
	}
	if wantsRemote && strings.Contains(loc, domain.WorkRemote) {
		return locationRemote
	}
	return 0
}

// MatchJobs scores every listing, drops anything below the acceptance
// threshold, sorts the rest descending by score (stable: original listing
// order wins ties) and returns at most MaxRecommendations.
func (e Engine) MatchJobs(seeker domain.SeekerProfile, listings []domain.JobListing) []domain.Recommendation {
	threshold := e.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	seekerID := seeker.ID
	if seekerID == "" {
		seekerID = "anonymous"
	}
	recs := make([]domain.Recommendation, 0, len(listings))
	for _, listing := range listings {
		score := e.Score(seeker, listing)
		if score < threshold {
			continue
		}
		recs = append(recs, domain.Recommendation{
			ID:          fmt.Sprintf("rec-%s-%s", listing.ID, seekerID),
			JobID:       listing.ID,
			SeekerID:    seekerID,
			MatchScore:  score,
			Explanation: explain(seeker, listing, score),
		})
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].MatchScore > recs[j].MatchScore })
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// explain builds a deterministic human-readable reason from the sub-rules
// that fired.
func explain(seeker domain.SeekerProfile, listing domain.JobListing, score int) string {
	var reasons []string

	seekerSkills := foldSet(seeker.Skills)
	var hits []string
	for _, s := range listing.RequiredSkills {
		if _, ok := seekerSkills[strings.ToLower(strings.TrimSpace(s))]; ok {
			hits = append(hits, s)
		}
	}
	if len(hits) > 0 {
		reasons = append(reasons, "Matches your "+strings.Join(hits, ", ")+" skills")
	}
	if seeker.WorkType != "" && strings.EqualFold(seeker.WorkType, listing.WorkType) {
		reasons = append(reasons, titleCase(listing.WorkType)+" role")
	}
	if locationScore(seeker.PreferredLocations, listing.Location) == locationBonus {
		reasons = append(reasons, "In your preferred location ("+listing.Location+")")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Strong overlap with your preferences")
	}
	return fmt.Sprintf("%d%% match. %s", score, strings.Join(reasons, ". "))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func foldSet(vals []string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			m[v] = struct{}{}
		}
	}
	return m
}

func countOverlap(a, b map[string]struct{}) int {
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func capped(v, cap int) int {
	if v > cap {
		return cap
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
