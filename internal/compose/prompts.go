// Package compose builds and polishes the LinkedIn-style hiring post from a
// completed interview: an LLM-backed compose stage, an LLM-backed format
// stage, and deterministic fallbacks for both.
package compose

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// InterviewSystemPrompt drives the hiring interview conversation.
const InterviewSystemPrompt = `You are a professional recruiting assistant helping a hiring manager create a LinkedIn hiring post.

RULES:
1. Ask only ONE question at a time.
2. Ask follow-up questions if answers are vague.
3. Collect: job title, seniority level, job type, workplace type, responsibilities, requirements, must-have skills, and anything about company culture.
4. Keep the tone friendly, professional, and concise.

After your response, decide whether you have collected enough information for a complete post. If yes, end your response with: [INTERVIEW_COMPLETE]
If not, continue asking questions.`

// toneInstruction picks a writing register from job type and seniority, the
// way the post composer writes differently for an intern role vs. a
// principal one.
func toneInstruction(info domain.JobInfo) string {
	seniority := strings.ToLower(info.SeniorityLevel)
	switch {
	case strings.Contains(seniority, "intern"), strings.Contains(seniority, "junior"):
		return "Friendly, encouraging tone. Emphasize learning, mentorship, and growth opportunities."
	case strings.Contains(seniority, "senior"), strings.Contains(seniority, "staff"),
		strings.Contains(seniority, "principal"), strings.Contains(seniority, "lead"):
		return "Confident, impact-focused tone. Emphasize ownership, scope, and technical leadership."
	case strings.Contains(strings.ToLower(info.JobType), "contract"):
		return "Direct, outcome-oriented tone. Emphasize deliverables and engagement terms."
	default:
		return "Professional tone: clear, engaging, results-oriented. Use strong action verbs. Emphasize impact and opportunities."
	}
}

// composerSystemPrompt is the compose-stage system prompt.
func composerSystemPrompt(info domain.JobInfo) string {
	return fmt.Sprintf(`You are an expert LinkedIn hiring post writer. Create a professional, engaging hiring post from the job information provided.

%s

Return ONLY a JSON object with this shape:
{
  "title": "string",
  "summary": "string",
  "culture_and_team": "string",
  "responsibilities": ["string"],
  "requirements": ["string"],
  "skills": ["string"],
  "keywords": ["string"],
  "hashtags": ["string"],
  "tone_type": "string"
}`, toneInstruction(info))
}

// composerUserPrompt serializes the collected info for the compose call.
func composerUserPrompt(info domain.JobInfo) string {
	b, _ := json.MarshalIndent(info, "", "  ")
	return fmt.Sprintf("Create a LinkedIn hiring post based on this information:\n\n%s\n\nMake it engaging and LinkedIn-optimized.", string(b))
}

// formatterSystemPrompt is the format-stage system prompt.
const formatterSystemPrompt = `You are an expert content editor specializing in LinkedIn hiring posts. Clean bullet points, spacing, and paragraph structure. Professional tone, no fluff. Return the polished post in the same JSON structure you are given, with no other text.`

func formatterUserPrompt(post domain.JobPost) string {
	doc := map[string]any{
		"title":            post.Title,
		"summary":          post.Summary,
		"culture_and_team": post.CultureAndTeam,
		"responsibilities": post.Responsibilities,
		"requirements":     post.Requirements,
		"skills":           post.Skills,
		"keywords":         post.Keywords,
		"hashtags":         post.Hashtags,
		"tone_type":        post.ToneType,
	}
	b, _ := json.MarshalIndent(doc, "", "  ")
	return fmt.Sprintf("Format and polish this hiring post. Make it clean, professional, and LinkedIn-ready:\n\n%s", string(b))
}

func sectionPrompt(section string, content any) string {
	b, _ := json.MarshalIndent(content, "", "  ")
	return fmt.Sprintf(`Format this %s section of a LinkedIn hiring post. Make it clean, professional, and engaging.

Content:
%s

If the content is a list, return ONLY a JSON array. If it is text, return ONLY the formatted text.`, section, string(b))
}

func hashtagPrompt(post domain.JobPost) string {
	return fmt.Sprintf(`Generate 5-8 relevant LinkedIn hashtags for this job post:

Title: %s
Summary: %s
Skills: %s

Return ONLY a JSON array of hashtag strings (without the # symbol), no other text.
Example: ["hiring", "techjobs", "softwareengineer"]`, post.Title, post.Summary, strings.Join(firstN(post.Skills, 5), ", "))
}

func keywordPrompt(post domain.JobPost) string {
	return fmt.Sprintf(`Generate 5-10 LinkedIn-optimized keywords for this job post:

Title: %s
Summary: %s
Skills: %s

Return ONLY a JSON array of keyword strings, no other text.
Example: ["software engineer", "python", "remote work"]`, post.Title, post.Summary, strings.Join(firstN(post.Skills, 5), ", "))
}

// helpSuggestionPrompt asks for contextual examples when the user requests
// help with a section mid-interview.
func helpSuggestionPrompt(info domain.JobInfo, section string) string {
	title := info.JobTitle
	if title == "" {
		title = "the position"
	}
	seniority := info.SeniorityLevel
	if seniority == "" {
		seniority = "mid-level"
	}
	return fmt.Sprintf("Suggest 4-6 strong %s bullet points for a %s %s. Keep each under 15 words. Return plain text, one per line.", section, seniority, title)
}

func firstN(vals []string, n int) []string {
	if len(vals) <= n {
		return vals
	}
	return vals[:n]
}
