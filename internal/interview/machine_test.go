package interview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/internal/interview"
)

func TestFinderComplete_RequiresTitlesSkillsAndWorkType(t *testing.T) {
	t.Parallel()
	p := domain.SeekerProfile{}
	assert.False(t, interview.FinderComplete(p))

	p.PreferredTitles = []string{"chef"}
	p.Skills = []string{"plating"}
	assert.False(t, interview.FinderComplete(p))

	p.WorkType = domain.WorkOnsite
	assert.True(t, interview.FinderComplete(p), "optional fields never gate completion")
}

func TestNextFinderQuestion_FollowsInterviewOrder(t *testing.T) {
	t.Parallel()
	p := domain.SeekerProfile{}
	assert.Equal(t, "What is your current or most recent role?", interview.NextFinderQuestion(p))

	p.CurrentRole = "Line Cook"
	assert.Equal(t, "What job titles are you targeting next?", interview.NextFinderQuestion(p))

	p.PreferredTitles = []string{"chef"}
	assert.Equal(t, "List 3-5 core skills you want to highlight.", interview.NextFinderQuestion(p))

	p.Skills = []string{"plating"}
	p.PreferredLocations = []string{"portland"}
	assert.Equal(t, "What work style do you prefer? (remote / onsite / hybrid)", interview.NextFinderQuestion(p))

	p.WorkType = domain.WorkHybrid
	assert.Empty(t, interview.NextFinderQuestion(p), "complete profile has no next question")
}

func TestHiringComplete_EnforcesListMinimums(t *testing.T) {
	t.Parallel()
	info := domain.JobInfo{
		JobTitle:         "Pastry Chef",
		SeniorityLevel:   "senior",
		JobType:          "Full-Time",
		Responsibilities: []string{"bake"},
		Requirements:     []string{"2 years experience"},
		Skills:           []string{"lamination", "plating"},
	}
	assert.False(t, interview.HiringComplete(info), "one responsibility is not enough")

	info.Responsibilities = append(info.Responsibilities, "menu planning")
	assert.True(t, interview.HiringComplete(info))
}

func TestNextHiringQuestion_AsksForFirstMissingField(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "What position are you looking to fill?",
		interview.NextHiringQuestion(domain.JobInfo{}))
	assert.Equal(t, "Is this full-time, part-time, or contract?",
		interview.NextHiringQuestion(domain.JobInfo{JobTitle: "Chef", SeniorityLevel: "senior"}))
}

func TestDetectHelpRequest(t *testing.T) {
	t.Parallel()
	cases := []struct {
		message string
		want    string
	}{
		{"Can you suggest some skills for this role?", "skills"},
		{"what should the responsibilities look like?", "responsibilities"},
		{"help me with the job description", "summary"},
		{"any ideas for culture?", "culture_and_team"},
		{"skills: go, python, sql", ""},    // answer, not a request
		{"I could use some help", ""},      // no section named
		{"The team is small and fast", ""}, // section word without a verb
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, interview.DetectHelpRequest(tc.message), tc.message)
	}
}

func TestDefaultVocabulary_Loaded(t *testing.T) {
	t.Parallel()
	v := interview.DefaultVocabulary()
	assert.NotEmpty(t, v.Skills)
	assert.NotEmpty(t, v.TitleFragments)
	assert.NotEmpty(t, v.Industries)
	assert.NotEmpty(t, v.Locations)
}
