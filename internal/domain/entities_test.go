package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

func TestSeekerProfileMerge_SetsUnionFolded(t *testing.T) {
	t.Parallel()
	p := domain.SeekerProfile{Skills: []string{"React", "go"}}
	out := p.Merge(domain.ProfileUpdate{Skills: []string{"GO", "sql", " react "}})
	assert.Equal(t, []string{"go", "react", "sql"}, out.Skills)
	// input is untouched
	assert.Equal(t, []string{"React", "go"}, p.Skills)
}

func TestSeekerProfileMerge_ScalarsFillOnlyWhileEmpty(t *testing.T) {
	t.Parallel()
	p := domain.SeekerProfile{WorkType: domain.WorkRemote}
	out := p.Merge(domain.ProfileUpdate{WorkType: "Onsite", CurrentRole: "Analyst"})
	assert.Equal(t, domain.WorkRemote, out.WorkType, "confirmed answers are never overwritten")
	assert.Equal(t, "Analyst", out.CurrentRole)

	again := out.Merge(domain.ProfileUpdate{CurrentRole: "Something Else"})
	assert.Equal(t, "Analyst", again.CurrentRole)
}

func TestSeekerProfileMerge_EmptyUpdateIsIdentity(t *testing.T) {
	t.Parallel()
	p := domain.SeekerProfile{
		CurrentRole:     "Chef",
		Skills:          []string{"plating"},
		PreferredTitles: []string{"head chef"},
		WorkType:        domain.WorkOnsite,
	}
	out := p.Merge(domain.ProfileUpdate{})
	assert.Equal(t, p.CurrentRole, out.CurrentRole)
	assert.Equal(t, p.Skills, out.Skills)
	assert.Equal(t, p.PreferredTitles, out.PreferredTitles)
	assert.Equal(t, p.WorkType, out.WorkType)
}

func TestProfileUpdateEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, domain.ProfileUpdate{}.Empty())
	assert.False(t, domain.ProfileUpdate{WorkType: domain.WorkHybrid}.Empty())
	assert.False(t, domain.ProfileUpdate{Skills: []string{"go"}}.Empty())
}

func TestJobInfoMerge_BulletsKeepCaseAndOrder(t *testing.T) {
	t.Parallel()
	i := domain.JobInfo{Responsibilities: []string{"Own the roadmap", "Mentor juniors"}}
	out := i.Merge(domain.JobInfo{Responsibilities: []string{"own the roadmap", "Run standups"}})
	assert.Equal(t, []string{"Own the roadmap", "Mentor juniors", "Run standups"}, out.Responsibilities)
}

func TestJobInfoMerge_ScalarsFillOnlyWhileEmpty(t *testing.T) {
	t.Parallel()
	i := domain.JobInfo{JobTitle: "Backend Engineer"}
	out := i.Merge(domain.JobInfo{JobTitle: "Frontend Engineer", Company: "Acme", WorkplaceType: "Remote"})
	assert.Equal(t, "Backend Engineer", out.JobTitle)
	assert.Equal(t, "Acme", out.Company)
	assert.Equal(t, domain.WorkRemote, out.WorkplaceType, "workplace type is normalized to lower case")
}

func TestJobInfoEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, domain.JobInfo{}.Empty())
	assert.False(t, domain.JobInfo{Skills: []string{"go"}}.Empty())
	assert.False(t, domain.JobInfo{OtherInfo: "note"}.Empty())
}

func TestSampleListings_WellFormed(t *testing.T) {
	t.Parallel()
	listings := domain.SampleListings()
	require.NotEmpty(t, listings)
	seen := map[string]struct{}{}
	for _, l := range listings {
		assert.NotEmpty(t, l.ID)
		assert.NotEmpty(t, l.Title)
		assert.NotEmpty(t, l.Company)
		assert.NotEmpty(t, l.RequiredSkills)
		_, dup := seen[l.ID]
		assert.False(t, dup, "duplicate listing id %s", l.ID)
		seen[l.ID] = struct{}{}
	}
}
