// Package stub provides a fast, deterministic AI client for local runs and
// tests. Extraction-shaped prompts get an empty JSON object so the keyword
// tier stays authoritative; everything else gets canned content.
package stub

import (
	"strings"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// Client is a deterministic domain.AIClient.
type Client struct{}

// New constructs a stub client.
func New() *Client { return &Client{} }

// ChatText returns a short canned acknowledgment.
func (c *Client) ChatText(_ domain.Context, _ string, userPrompt string, _ float64, _ int) (string, error) {
	if strings.Contains(userPrompt, "Suggest") {
		return "Own the roadmap for a core product area\nCollaborate with design and engineering\nShip measurable improvements every quarter", nil
	}
	return "Thanks, that's helpful!", nil
}

// ChatJSON returns deterministic JSON keyed off the prompt shape.
func (c *Client) ChatJSON(_ domain.Context, systemPrompt, _ string, _ int) (string, error) {
	switch {
	case strings.Contains(systemPrompt, "job-seeker profile"):
		return "{}", nil
	case strings.Contains(systemPrompt, "hiring information"):
		return "{}", nil
	case strings.Contains(systemPrompt, "hiring post writer"):
		return `{
  "title": "Software Engineer",
  "summary": "Join a team shipping products users love.",
  "culture_and_team": "Collaborative, low-ego engineering culture.",
  "responsibilities": ["Design and build backend services", "Review code and mentor peers"],
  "requirements": ["3+ years of professional experience"],
  "skills": ["go", "postgresql"],
  "keywords": ["software engineer", "backend"],
  "hashtags": ["hiring", "engineering"],
  "tone_type": "professional"
}`, nil
	default:
		// Formatter-shaped prompts echo a minimal valid structure.
		return "{}", nil
	}
}
