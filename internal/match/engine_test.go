package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/internal/match"
)

func frontendListing() domain.JobListing {
	return domain.JobListing{
		ID:             "job-001",
		Title:          "Senior Frontend Engineer",
		Company:        "TechCorp",
		Location:       "San Francisco, CA (Remote)",
		RequiredSkills: []string{"React", "TypeScript", "JavaScript"},
		OptionalSkills: []string{"GraphQL", "Next.js"},
		WorkType:       domain.WorkRemote,
		Industries:     []string{"technology"},
	}
}

func TestScore_StrongProfileClearsSixty(t *testing.T) {
	t.Parallel()
	seeker := domain.SeekerProfile{
		Skills:          []string{"react", "typescript"},
		PreferredTitles: []string{"frontend engineer"},
		WorkType:        domain.WorkRemote,
	}
	score := match.New().Score(seeker, frontendListing())
	// 2 required skills + title + exact work mode
	assert.Equal(t, 40+30+15, score)
	assert.GreaterOrEqual(t, score, 60)
}

func TestScore_RangeAndDeterminism(t *testing.T) {
	t.Parallel()
	eng := match.New()
	seekers := []domain.SeekerProfile{
		{},
		{Skills: []string{"react"}},
		{
			Skills:             []string{"react", "typescript", "javascript", "graphql", "next.js"},
			PreferredTitles:    []string{"frontend engineer"},
			PreferredLocations: []string{"san francisco"},
			WorkType:           domain.WorkRemote,
			Industries:         []string{"technology"},
		},
	}
	for _, s := range seekers {
		first := eng.Score(s, frontendListing())
		assert.GreaterOrEqual(t, first, 0)
		assert.LessOrEqual(t, first, 100)
		assert.Equal(t, first, eng.Score(s, frontendListing()))
	}
}

func TestScore_MoreSkillsNeverLowers(t *testing.T) {
	t.Parallel()
	eng := match.New()
	listing := frontendListing()
	seeker := domain.SeekerProfile{}
	prev := eng.Score(seeker, listing)
	for _, sk := range []string{"react", "typescript", "javascript", "graphql", "next.js"} {
		seeker.Skills = append(seeker.Skills, sk)
		cur := eng.Score(seeker, listing)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestScore_SkillCaps(t *testing.T) {
	t.Parallel()
	eng := match.New()
	listing := domain.JobListing{
		ID:             "caps",
		Title:          "Nurse",
		RequiredSkills: []string{"a", "b", "c", "d", "e"},
		OptionalSkills: []string{"f", "g", "h", "i"},
	}
	seeker := domain.SeekerProfile{Skills: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}}
	// required capped at 60, optional at 20
	assert.Equal(t, 80, eng.Score(seeker, listing))
}

func TestScore_TitleBonusAwardedOnce(t *testing.T) {
	t.Parallel()
	eng := match.New()
	listing := domain.JobListing{ID: "t", Title: "Backend Developer"}
	full := eng.Score(domain.SeekerProfile{PreferredTitles: []string{"backend developer", "developer"}}, listing)
	assert.Equal(t, 30, full)
	// no substring hit, but a generic technical keyword
	generic := eng.Score(domain.SeekerProfile{PreferredTitles: []string{"designer"}}, listing)
	assert.Equal(t, 5, generic)
}

func TestScore_LocationDominatesWorkMode(t *testing.T) {
	t.Parallel()
	eng := match.New()
	listing := domain.JobListing{ID: "l", Title: "Nurse", Location: "Austin, TX", WorkType: domain.WorkOnsite}
	byLocation := eng.Score(domain.SeekerProfile{PreferredLocations: []string{"austin"}}, listing)
	byMode := eng.Score(domain.SeekerProfile{WorkType: domain.WorkOnsite}, listing)
	assert.Equal(t, 35, byLocation)
	assert.Equal(t, 15, byMode)
}

func TestScore_RemoteSeekerRemoteListing(t *testing.T) {
	t.Parallel()
	eng := match.New()
	listing := domain.JobListing{ID: "r", Title: "Nurse", Location: "Remote (US)"}
	score := eng.Score(domain.SeekerProfile{PreferredLocations: []string{domain.WorkRemote}}, listing)
	assert.Equal(t, 35, score) // "remote" substring of the location wins the full bonus
}

func TestMatchJobs_ThresholdSortAndCap(t *testing.T) {
	t.Parallel()
	seeker := domain.SeekerProfile{
		ID:       "seeker-1",
		Skills:   []string{"go", "python"},
		WorkType: domain.WorkRemote,
	}
	listings := []domain.JobListing{
		{ID: "low", Title: "Florist", RequiredSkills: []string{"arranging"}},
		{ID: "mid", Title: "Backend Engineer", RequiredSkills: []string{"go"}, WorkType: domain.WorkRemote},
		{ID: "high", Title: "Platform Engineer", RequiredSkills: []string{"go", "python"}, WorkType: domain.WorkRemote},
	}
	recs := match.New().MatchJobs(seeker, listings)
	require.Len(t, recs, 2)
	assert.Equal(t, "high", recs[0].JobID)
	assert.Equal(t, "mid", recs[1].JobID)
	assert.Equal(t, "rec-high-seeker-1", recs[0].ID)
	for _, r := range recs {
		assert.GreaterOrEqual(t, r.MatchScore, match.DefaultThreshold)
		assert.Equal(t, "seeker-1", r.SeekerID)
	}
}

func TestMatchJobs_StableTieOrderAndLimit(t *testing.T) {
	t.Parallel()
	seeker := domain.SeekerProfile{Skills: []string{"go", "sql", "docker"}}
	var listings []domain.JobListing
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		listings = append(listings, domain.JobListing{
			ID:             id,
			Title:          "Operator",
			RequiredSkills: []string{"go", "sql", "docker"},
		})
	}
	recs := match.New().MatchJobs(seeker, listings)
	require.Len(t, recs, match.MaxRecommendations)
	// equal scores keep listing order
	assert.Equal(t, []string{"a", "b", "c", "d", "e"},
		[]string{recs[0].JobID, recs[1].JobID, recs[2].JobID, recs[3].JobID, recs[4].JobID})
}

func TestMatchJobs_AnonymousSeeker(t *testing.T) {
	t.Parallel()
	recs := match.New().MatchJobs(
		domain.SeekerProfile{Skills: []string{"react", "typescript"}},
		[]domain.JobListing{frontendListing()},
	)
	require.Len(t, recs, 1)
	assert.Equal(t, "anonymous", recs[0].SeekerID)
	assert.Equal(t, "rec-job-001-anonymous", recs[0].ID)
}

func TestExplain_NamesMatchedSkillsAndLocation(t *testing.T) {
	t.Parallel()
	seeker := domain.SeekerProfile{
		Skills:             []string{"react", "typescript"},
		PreferredLocations: []string{"san francisco"},
		WorkType:           domain.WorkRemote,
	}
	recs := match.New().MatchJobs(seeker, []domain.JobListing{frontendListing()})
	require.Len(t, recs, 1)
	expl := recs[0].Explanation
	assert.Contains(t, expl, "Matches your React, TypeScript skills")
	assert.Contains(t, expl, "Remote role")
	assert.Contains(t, expl, "In your preferred location")
	assert.Contains(t, expl, "% match")
}
