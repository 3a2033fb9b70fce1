package interview

import (
	"log/slog"
	"strings"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/pkg/llmjson"
)

// smallTalk lists conversationally empty messages that must never produce
// field updates.
var smallTalk = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "yo": {}, "thanks": {}, "thank you": {},
	"ok": {}, "okay": {}, "sure": {}, "cool": {}, "great": {}, "nice": {},
	"yes": {}, "no": {}, "yep": {}, "nope": {}, "got it": {}, "sounds good": {},
	"good morning": {}, "good afternoon": {}, "good evening": {},
}

// Extractor maps free-text user messages onto profile/job fields. Tier 1 is
// a zero-cost vocabulary matcher; tier 2 is an LLM call that degrades to an
// empty update on any failure.
type Extractor struct {
	Vocab Vocabulary
	AI    domain.AIClient
}

// NewExtractor builds an extractor over the given vocabulary. ai may be nil,
// in which case only tier 1 runs.
func NewExtractor(vocab Vocabulary, ai domain.AIClient) Extractor {
	return Extractor{Vocab: vocab, AI: ai}
}

// IsSmallTalk reports whether the message is a greeting or acknowledgment
// that carries no extractable information.
func IsSmallTalk(message string) bool {
	norm := strings.ToLower(strings.TrimSpace(message))
	norm = strings.Trim(norm, ".,!?")
	if len(norm) <= 2 {
		return true
	}
	_, ok := smallTalk[norm]
	return ok
}

// ExtractProfile runs both tiers over one finder message and returns the
// update set. Never returns an error: extraction failures yield an empty
// update so the state machine can re-ask its question.
func (e Extractor) ExtractProfile(ctx domain.Context, message string) domain.ProfileUpdate {
	if IsSmallTalk(message) {
		return domain.ProfileUpdate{}
	}
	if u := e.profileKeywords(message); !u.Empty() {
		return u
	}
	return e.profileLLM(ctx, message)
}

// profileKeywords is tier 1: fixed-vocabulary and comma-list matching.
func (e Extractor) profileKeywords(message string) domain.ProfileUpdate {
	lower := strings.ToLower(message)
	var u domain.ProfileUpdate

	switch {
	case strings.Contains(lower, domain.WorkRemote):
		u.WorkType = domain.WorkRemote
	case strings.Contains(lower, domain.WorkHybrid):
		u.WorkType = domain.WorkHybrid
	case strings.Contains(lower, "onsite"), strings.Contains(lower, "on-site"), strings.Contains(lower, "on site"):
		u.WorkType = domain.WorkOnsite
	}

	u.Skills = matchVocab(lower, e.Vocab.Skills)
	u.PreferredTitles = matchVocab(lower, e.Vocab.TitleFragments)
	u.Industries = matchVocab(lower, e.Vocab.Industries)
	for _, loc := range matchVocab(lower, e.Vocab.Locations) {
		if loc != domain.WorkRemote {
			u.PreferredLocations = append(u.PreferredLocations, loc)
		} else if u.WorkType == domain.WorkRemote {
			u.PreferredLocations = append(u.PreferredLocations, loc)
		}
	}

	// A comma-separated list of short tokens reads as an enumeration of
	// skills even when the tokens are outside the curated vocabulary.
	if len(u.Skills) == 0 {
		u.Skills = commaListTokens(message)
	}
	return u
}

// matchVocab returns every vocabulary entry present in the lowered message.
func matchVocab(lower string, vocab []string) []string {
	var out []string
	for _, v := range vocab {
		if containsWord(lower, v) {
			out = append(out, v)
		}
	}
	return out
}

// containsWord reports whether needle occurs in hay on word boundaries. Short
// vocabulary entries like "go" or "ai" must not hit inside other words.
func containsWord(hay, needle string) bool {
	for i := 0; ; {
		j := strings.Index(hay[i:], needle)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(needle)
		beforeOK := start == 0 || !isWordChar(hay[start-1])
		afterOK := end == len(hay) || !isWordChar(hay[end])
		if beforeOK && afterOK {
			return true
		}
		i = start + 1
	}
}

func isWordChar(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') || ('A' <= c && c <= 'Z')
}

// commaListTokens splits a message on commas, accepting it as a skill list
// only when it has at least two tokens and every token is short enough to be
// a skill name rather than a sentence fragment.
func commaListTokens(message string) []string {
	if !strings.Contains(message, ",") {
		return nil
	}
	parts := strings.Split(strings.ReplaceAll(message, "/", ","), ",")
	var out []string
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		p = strings.TrimPrefix(p, "and ")
		if len(p) <= 2 || len(strings.Fields(p)) > 3 {
			return nil
		}
		out = append(out, p)
	}
	if len(out) < 2 {
		return nil
	}
	return out
}

const profileExtractionPrompt = `You extract job-seeker profile fields from one chat message.

Return ONLY a JSON object with this shape, including only fields you are
confident about:
{
  "current_role": "string",
  "skills": ["string"],
  "preferred_titles": ["string"],
  "preferred_locations": ["string"],
  "work_type": "remote|hybrid|onsite",
  "industries": ["string"],
  "salary_expectation": "string"
}

If the message is a greeting, acknowledgment, or contains no profile
information, return exactly {}. Never guess.`

// profileLLM is tier 2. Transport and parse failures both collapse to an
// empty update.
func (e Extractor) profileLLM(ctx domain.Context, message string) domain.ProfileUpdate {
	if e.AI == nil {
		return domain.ProfileUpdate{}
	}
	raw, err := e.AI.ChatJSON(ctx, profileExtractionPrompt, message, 400)
	if err != nil {
		slog.Warn("profile extraction call failed", slog.Any("error", err))
		return domain.ProfileUpdate{}
	}
	var u domain.ProfileUpdate
	if err := llmjson.Unmarshal(raw, &u); err != nil {
		slog.Warn("profile extraction unparseable", slog.Any("error", err))
		return domain.ProfileUpdate{}
	}
	return u
}

const jobInfoExtractionPrompt = `You extract structured hiring information from a recruiter conversation.

Return ONLY a JSON object with this shape, including only fields you are
confident about:
{
  "job_title": "string",
  "company": "string",
  "location": "string",
  "job_type": "Full-Time|Part-Time|Contract",
  "workplace_type": "remote|hybrid|onsite",
  "seniority_level": "string",
  "responsibilities": ["string"],
  "requirements": ["string"],
  "skills": ["string"],
  "preferred_skills": ["string"],
  "culture_and_team": "string",
  "other_info": "string"
}

If the conversation contains no job information yet, return exactly {}.
Never guess.`

// ExtractJobInfo runs tier 1 over the latest message and, when that yields
// nothing, tier 2 over the whole transcript.
func (e Extractor) ExtractJobInfo(ctx domain.Context, message string, history []domain.Message) domain.JobInfo {
	if IsSmallTalk(message) {
		return domain.JobInfo{}
	}
	if u := e.jobInfoKeywords(message); !u.Empty() {
		return u
	}
	return e.jobInfoLLM(ctx, history)
}

// jobInfoKeywords catches the cheap enumerable hiring fields.
func (e Extractor) jobInfoKeywords(message string) domain.JobInfo {
	lower := strings.ToLower(message)
	var u domain.JobInfo

	switch {
	case strings.Contains(lower, "full-time"), strings.Contains(lower, "full time"):
		u.JobType = "Full-Time"
	case strings.Contains(lower, "part-time"), strings.Contains(lower, "part time"):
		u.JobType = "Part-Time"
	case strings.Contains(lower, "contract"):
		u.JobType = "Contract"
	}
	switch {
	case strings.Contains(lower, domain.WorkRemote):
		u.WorkplaceType = domain.WorkRemote
	case strings.Contains(lower, domain.WorkHybrid):
		u.WorkplaceType = domain.WorkHybrid
	case strings.Contains(lower, "onsite"), strings.Contains(lower, "on-site"), strings.Contains(lower, "on site"):
		u.WorkplaceType = domain.WorkOnsite
	}
	for _, lvl := range []string{"intern", "junior", "mid-level", "senior", "staff", "principal", "lead"} {
		if strings.Contains(lower, lvl) {
			u.SeniorityLevel = lvl
			break
		}
	}
	u.Skills = matchVocab(lower, e.Vocab.Skills)
	return u
}

func (e Extractor) jobInfoLLM(ctx domain.Context, history []domain.Message) domain.JobInfo {
	if e.AI == nil {
		return domain.JobInfo{}
	}
	var b strings.Builder
	for _, m := range history {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	raw, err := e.AI.ChatJSON(ctx, jobInfoExtractionPrompt, b.String(), 1000)
	if err != nil {
		slog.Warn("job info extraction call failed", slog.Any("error", err))
		return domain.JobInfo{}
	}
	var u domain.JobInfo
	if err := llmjson.Unmarshal(raw, &u); err != nil {
		slog.Warn("job info extraction unparseable", slog.Any("error", err))
		return domain.JobInfo{}
	}
	return u
}
