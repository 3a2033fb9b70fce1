package interview

import (
	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// CompleteSentinel is appended by the hiring interview LLM when it judges
// the interview done. The orchestrator strips it from user-visible text.
const CompleteSentinel = "[INTERVIEW_COMPLETE]"

// Minimum list sizes for hiring completion.
const (
	minResponsibilities = 2
	minRequirements     = 1
	minHiringSkills     = 2
)

// finderQuestion pairs a profile field with the question that fills it.
type finderQuestion struct {
	filled   func(domain.SeekerProfile) bool
	required bool
	text     string
}

// finderQuestions is the fixed interview order for the seeker flow. Only
// the required entries gate completion; optional ones are asked while the
// profile is still collecting.
var finderQuestions = []finderQuestion{
	{func(p domain.SeekerProfile) bool { return p.CurrentRole != "" }, false,
		"What is your current or most recent role?"},
	{func(p domain.SeekerProfile) bool { return len(p.PreferredTitles) > 0 }, true,
		"What job titles are you targeting next?"},
	{func(p domain.SeekerProfile) bool { return len(p.Skills) > 0 }, true,
		"List 3-5 core skills you want to highlight."},
	{func(p domain.SeekerProfile) bool { return len(p.PreferredLocations) > 0 }, false,
		"Do you have preferred locations, or are you open to remote roles?"},
	{func(p domain.SeekerProfile) bool { return p.WorkType != "" }, true,
		"What work style do you prefer? (remote / onsite / hybrid)"},
	{func(p domain.SeekerProfile) bool { return len(p.Industries) > 0 }, false,
		"Which industries are you most interested in?"},
	{func(p domain.SeekerProfile) bool { return p.SalaryExpectation != "" }, false,
		"Do you have a salary range in mind?"},
}

// FinderComplete reports whether every required seeker field is populated.
func FinderComplete(p domain.SeekerProfile) bool {
	for _, q := range finderQuestions {
		if q.required && !q.filled(p) {
			return false
		}
	}
	return true
}

// NextFinderQuestion returns the next outstanding question for the seeker
// flow, or "" when the profile is complete.
func NextFinderQuestion(p domain.SeekerProfile) string {
	if FinderComplete(p) {
		return ""
	}
	for _, q := range finderQuestions {
		if !q.filled(p) {
			return q.text
		}
	}
	return ""
}

// FinderGreeting opens a seeker session.
const FinderGreeting = "Hi! I'm your Job Finder Agent. Let's build your profile. What role are you targeting next?"

// HiringGreeting opens a hiring session.
const HiringGreeting = "Hi! I'm here to help you create a professional LinkedIn hiring post. Let's start with the basics - what position are you looking to fill?"

// hiringQuestion pairs a hiring field with its question.
type hiringQuestion struct {
	filled func(domain.JobInfo) bool
	text   string
}

var hiringQuestions = []hiringQuestion{
	{func(i domain.JobInfo) bool { return i.JobTitle != "" },
		"What position are you looking to fill?"},
	{func(i domain.JobInfo) bool { return i.SeniorityLevel != "" },
		"What seniority level are you hiring for?"},
	{func(i domain.JobInfo) bool { return i.JobType != "" },
		"Is this full-time, part-time, or contract?"},
	{func(i domain.JobInfo) bool { return len(i.Responsibilities) >= minResponsibilities },
		"What are the main responsibilities of this role? A few bullet points are perfect."},
	{func(i domain.JobInfo) bool { return len(i.Requirements) >= minRequirements },
		"What qualifications or requirements should candidates have?"},
	{func(i domain.JobInfo) bool { return len(i.Skills) >= minHiringSkills },
		"Which skills are must-haves for this position?"},
}

// HiringComplete reports whether the hiring interview has collected every
// required field. The sentinel from the LLM is the primary completion
// trigger; this heuristic backs it up when the model is unavailable.
func HiringComplete(i domain.JobInfo) bool {
	for _, q := range hiringQuestions {
		if !q.filled(i) {
			return false
		}
	}
	return true
}

// NextHiringQuestion returns the next outstanding hiring question, or ""
// when the required field set is complete.
func NextHiringQuestion(i domain.JobInfo) string {
	for _, q := range hiringQuestions {
		if !q.filled(i) {
			return q.text
		}
	}
	return ""
}
