package compose

import (
	"log/slog"
	"strings"
	"time"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/pkg/llmjson"
)

// Formatter polishes hiring posts. The LLM pass is best-effort; the
// deterministic normalization pass always runs, so a failed upstream call
// still yields a consistent post.
type Formatter struct {
	AI domain.AIClient
}

// NewFormatter constructs a Formatter.
func NewFormatter(ai domain.AIClient) Formatter { return Formatter{AI: ai} }

// FormatPost runs the whole-post polish and then normalizes. On upstream or
// parse failure the input post is normalized and returned unchanged
// otherwise.
func (f Formatter) FormatPost(ctx domain.Context, post domain.JobPost) domain.JobPost {
	if f.AI != nil {
		raw, err := f.AI.ChatJSON(ctx, formatterSystemPrompt, formatterUserPrompt(post), 2000)
		if err != nil {
			slog.Warn("format call failed, keeping post as-is", slog.Any("error", err))
		} else {
			var fp composedPost
			if err := llmjson.Unmarshal(raw, &fp); err != nil {
				slog.Warn("format response unparseable, keeping post as-is", slog.Any("error", err))
			} else {
				post.Title = orDefault(fp.Title, post.Title)
				post.Summary = orDefault(fp.Summary, post.Summary)
				post.CultureAndTeam = orDefault(fp.CultureAndTeam, post.CultureAndTeam)
				post.Responsibilities = orList(fp.Responsibilities, post.Responsibilities)
				post.Requirements = orList(fp.Requirements, post.Requirements)
				post.Skills = orList(fp.Skills, post.Skills)
				post.Keywords = orList(fp.Keywords, post.Keywords)
				post.Hashtags = orList(fp.Hashtags, post.Hashtags)
				post.ToneType = orDefault(fp.ToneType, post.ToneType)
			}
		}
	}
	return Normalize(post)
}

// FormatSection polishes a single list section and returns it. Text sections
// are handled by FormatTextSection. Failure returns the input unchanged.
func (f Formatter) FormatSection(ctx domain.Context, section string, content []string) []string {
	if f.AI == nil {
		return content
	}
	raw, err := f.AI.ChatJSON(ctx, formatterSystemPrompt, sectionPrompt(section, content), 1000)
	if err != nil {
		slog.Warn("section format call failed", slog.String("section", section), slog.Any("error", err))
		return content
	}
	var out []string
	if err := llmjson.Unmarshal(raw, &out); err != nil {
		slog.Warn("section format unparseable", slog.String("section", section), slog.Any("error", err))
		return content
	}
	return out
}

// FormatTextSection polishes a free-text section.
func (f Formatter) FormatTextSection(ctx domain.Context, section, content string) string {
	if f.AI == nil {
		return content
	}
	out, err := f.AI.ChatText(ctx, formatterSystemPrompt, sectionPrompt(section, content), 0.5, 1000)
	if err != nil {
		slog.Warn("text section format call failed", slog.String("section", section), slog.Any("error", err))
		return content
	}
	return strings.TrimSpace(out)
}

// GenerateHashtags regenerates the hashtag list; fallback is the current set.
func (f Formatter) GenerateHashtags(ctx domain.Context, post domain.JobPost) []string {
	if f.AI == nil {
		return post.Hashtags
	}
	raw, err := f.AI.ChatJSON(ctx, formatterSystemPrompt, hashtagPrompt(post), 200)
	if err != nil {
		slog.Warn("hashtag generation failed", slog.Any("error", err))
		return post.Hashtags
	}
	var out []string
	if err := llmjson.Unmarshal(raw, &out); err != nil {
		return post.Hashtags
	}
	return out
}

// GenerateKeywords regenerates the keyword list; fallback is the current set.
func (f Formatter) GenerateKeywords(ctx domain.Context, post domain.JobPost) []string {
	if f.AI == nil {
		return post.Keywords
	}
	raw, err := f.AI.ChatJSON(ctx, formatterSystemPrompt, keywordPrompt(post), 200)
	if err != nil {
		slog.Warn("keyword generation failed", slog.Any("error", err))
		return post.Keywords
	}
	var out []string
	if err := llmjson.Unmarshal(raw, &out); err != nil {
		return post.Keywords
	}
	return out
}

// SuggestSection asks for example content for a section the user requested
// help with. Degrades to "" on failure; the caller restates its question.
func (f Formatter) SuggestSection(ctx domain.Context, info domain.JobInfo, section string) string {
	if f.AI == nil {
		return ""
	}
	out, err := f.AI.ChatText(ctx, formatterSystemPrompt, helpSuggestionPrompt(info, section), 0.8, 800)
	if err != nil {
		slog.Warn("section suggestion failed", slog.String("section", section), slog.Any("error", err))
		return ""
	}
	return strings.TrimSpace(out)
}

// Normalize applies the deterministic formatting rules: trimmed fields,
// empty bullets dropped, deduplicated skills, hashtags stored without '#'.
func Normalize(post domain.JobPost) domain.JobPost {
	post.Title = strings.TrimSpace(post.Title)
	post.Summary = strings.TrimSpace(post.Summary)
	post.CultureAndTeam = strings.TrimSpace(post.CultureAndTeam)
	post.Responsibilities = cleanList(post.Responsibilities, false)
	post.Requirements = cleanList(post.Requirements, false)
	post.Skills = cleanList(post.Skills, true)
	post.Keywords = cleanList(post.Keywords, true)
	hashtags := make([]string, len(post.Hashtags))
	for i, h := range post.Hashtags {
		hashtags[i] = strings.TrimPrefix(strings.TrimSpace(h), "#")
	}
	post.Hashtags = cleanList(hashtags, true)
	post.UpdatedAt = time.Now().UTC()
	return post
}

// cleanList trims entries, drops empties and duplicates; fold lowercases
// entries for tag-like lists.
func cleanList(vals []string, fold bool) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if fold {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
