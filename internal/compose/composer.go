package compose

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/pkg/llmjson"
)

// Composer turns a completed interview's JobInfo into a full hiring post.
type Composer struct {
	AI domain.AIClient
}

// NewComposer constructs a Composer.
func NewComposer(ai domain.AIClient) Composer { return Composer{AI: ai} }

// composedPost is the JSON shape the compose call returns.
type composedPost struct {
	Title            string   `json:"title"`
	Summary          string   `json:"summary"`
	CultureAndTeam   string   `json:"culture_and_team"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Skills           []string `json:"skills"`
	Keywords         []string `json:"keywords"`
	Hashtags         []string `json:"hashtags"`
	ToneType         string   `json:"tone_type"`
}

// Compose generates the long-form post. On any upstream or parse failure it
// degrades to FallbackPost rather than failing the turn.
func (c Composer) Compose(ctx domain.Context, info domain.JobInfo) domain.JobPost {
	if c.AI == nil {
		return FallbackPost(info)
	}
	raw, err := c.AI.ChatJSON(ctx, composerSystemPrompt(info), composerUserPrompt(info), 2000)
	if err != nil {
		slog.Warn("compose call failed, using fallback post", slog.Any("error", err))
		return FallbackPost(info)
	}
	var cp composedPost
	if err := llmjson.Unmarshal(raw, &cp); err != nil {
		slog.Warn("compose response unparseable, using fallback post", slog.Any("error", err))
		return FallbackPost(info)
	}
	post := domain.JobPost{
		Title:            orDefault(cp.Title, info.JobTitle),
		Company:          info.Company,
		Location:         info.Location,
		WorkplaceType:    info.WorkplaceType,
		JobType:          info.JobType,
		Summary:          cp.Summary,
		CultureAndTeam:   orDefault(cp.CultureAndTeam, info.CultureAndTeam),
		Responsibilities: orList(cp.Responsibilities, info.Responsibilities),
		Requirements:     orList(cp.Requirements, info.Requirements),
		Skills:           orList(cp.Skills, info.Skills),
		Keywords:         cp.Keywords,
		Hashtags:         cp.Hashtags,
		ToneType:         orDefault(cp.ToneType, "professional"),
		CreatedAt:        time.Now().UTC(),
	}
	return post
}

// FallbackPost builds a minimal valid post deterministically from the fields
// the interview already collected.
func FallbackPost(info domain.JobInfo) domain.JobPost {
	title := info.JobTitle
	if title == "" {
		title = "Position"
	}
	summary := fmt.Sprintf("We're looking for a %s to join our team.", title)
	skills := append(append([]string{}, info.Skills...), info.PreferredSkills...)
	return domain.JobPost{
		Title:            title,
		Company:          info.Company,
		Location:         info.Location,
		WorkplaceType:    info.WorkplaceType,
		JobType:          info.JobType,
		Summary:          summary,
		CultureAndTeam:   info.CultureAndTeam,
		Responsibilities: info.Responsibilities,
		Requirements:     info.Requirements,
		Skills:           skills,
		Keywords:         []string{},
		Hashtags:         []string{},
		ToneType:         "professional",
		CreatedAt:        time.Now().UTC(),
	}
}

// LivePreview assembles a best-effort partial post from whatever fields have
// been extracted so far, so callers can render a progressively filling form
// before the interview completes.
func LivePreview(info domain.JobInfo) domain.JobPost {
	return domain.JobPost{
		Title:            info.JobTitle,
		Company:          info.Company,
		Location:         info.Location,
		WorkplaceType:    info.WorkplaceType,
		JobType:          info.JobType,
		CultureAndTeam:   info.CultureAndTeam,
		Responsibilities: info.Responsibilities,
		Requirements:     info.Requirements,
		Skills:           info.Skills,
		Keywords:         []string{},
		Hashtags:         []string{},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orList(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
