// Package domain holds the core entities, error taxonomy and ports of the
// hiring/job-finder assistant. It has no dependencies on adapters.
package domain

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUpstreamTimeout     = errors.New("upstream timeout")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrSchemaInvalid       = errors.New("schema invalid")
	ErrInternal            = errors.New("internal error")
)

// Flow enumerates the two conversational wizards.
type Flow string

const (
	FlowHiring Flow = "hiring"
	FlowFinder Flow = "finder"
)

// Work modes understood by the matcher and the interview extractor.
const (
	WorkRemote = "remote"
	WorkHybrid = "hybrid"
	WorkOnsite = "onsite"
)

// SeekerProfile captures a job seeker's attributes as collected by the
// finder interview. Set-valued fields are case-insensitive token sets.
type SeekerProfile struct {
	ID                 string   `json:"id"`
	CurrentRole        string   `json:"current_role,omitempty"`
	Skills             []string `json:"skills"`
	PreferredTitles    []string `json:"preferred_titles"`
	PreferredLocations []string `json:"preferred_locations"`
	WorkType           string   `json:"work_type,omitempty"`
	Industries         []string `json:"industries"`
	SalaryExpectation  string   `json:"salary_expectation,omitempty"`
}

// ProfileUpdate is a partial profile extracted from one message. Empty
// fields mean "no new information".
type ProfileUpdate struct {
	CurrentRole        string   `json:"current_role,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	PreferredTitles    []string `json:"preferred_titles,omitempty"`
	PreferredLocations []string `json:"preferred_locations,omitempty"`
	WorkType           string   `json:"work_type,omitempty"`
	Industries         []string `json:"industries,omitempty"`
	SalaryExpectation  string   `json:"salary_expectation,omitempty"`
}

// Empty reports whether the update carries no new field values.
func (u ProfileUpdate) Empty() bool {
	return u.CurrentRole == "" && u.WorkType == "" && u.SalaryExpectation == "" &&
		len(u.Skills) == 0 && len(u.PreferredTitles) == 0 &&
		len(u.PreferredLocations) == 0 && len(u.Industries) == 0
}

// Merge returns a new profile with the update applied. Set-valued fields are
// unioned case-insensitively; scalar fields are last-write-wins only while
// empty, so later free-text guesses never overwrite confirmed answers.
func (p SeekerProfile) Merge(u ProfileUpdate) SeekerProfile {
	out := p
	out.Skills = unionFold(p.Skills, u.Skills)
	out.PreferredTitles = unionFold(p.PreferredTitles, u.PreferredTitles)
	out.PreferredLocations = unionFold(p.PreferredLocations, u.PreferredLocations)
	out.Industries = unionFold(p.Industries, u.Industries)
	if out.CurrentRole == "" {
		out.CurrentRole = strings.TrimSpace(u.CurrentRole)
	}
	if out.WorkType == "" {
		out.WorkType = strings.ToLower(strings.TrimSpace(u.WorkType))
	}
	if out.SalaryExpectation == "" {
		out.SalaryExpectation = strings.TrimSpace(u.SalaryExpectation)
	}
	return out
}

// unionFold merges two token lists case-insensitively and returns a sorted copy.
func unionFold(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// JobListing is a posted opening. Read-only once sourced from the store.
type JobListing struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	RequiredSkills  []string `json:"required_skills"`
	OptionalSkills  []string `json:"optional_skills"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	SalaryRange     string   `json:"salary_range,omitempty"`
	WorkType        string   `json:"work_type,omitempty"`
	Industries      []string `json:"industries"`
	Description     string   `json:"description,omitempty"`
}

// Recommendation pairs a listing with a seeker at a given score. The score is
// immutable after creation; only the formatting stage rewrites Explanation.
type Recommendation struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	SeekerID    string `json:"seeker_id"`
	MatchScore  int    `json:"match_score"`
	Explanation string `json:"explanation"`
}

// JobInfo is the structured field set extracted during the hiring interview.
type JobInfo struct {
	JobTitle         string   `json:"job_title,omitempty"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	JobType          string   `json:"job_type,omitempty"`
	WorkplaceType    string   `json:"workplace_type,omitempty"`
	SeniorityLevel   string   `json:"seniority_level,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Requirements     []string `json:"requirements,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	PreferredSkills  []string `json:"preferred_skills,omitempty"`
	CultureAndTeam   string   `json:"culture_and_team,omitempty"`
	OtherInfo        string   `json:"other_info,omitempty"`
}

// Empty reports whether no field was extracted.
func (i JobInfo) Empty() bool {
	return i.JobTitle == "" && i.Company == "" && i.Location == "" &&
		i.JobType == "" && i.WorkplaceType == "" && i.SeniorityLevel == "" &&
		i.CultureAndTeam == "" && i.OtherInfo == "" &&
		len(i.Responsibilities) == 0 && len(i.Requirements) == 0 &&
		len(i.Skills) == 0 && len(i.PreferredSkills) == 0
}

// Merge applies the same policy as SeekerProfile.Merge: lists union, scalars
// fill only while empty.
func (i JobInfo) Merge(u JobInfo) JobInfo {
	out := i
	out.Responsibilities = unionKeepCase(i.Responsibilities, u.Responsibilities)
	out.Requirements = unionKeepCase(i.Requirements, u.Requirements)
	out.Skills = unionFold(i.Skills, u.Skills)
	out.PreferredSkills = unionFold(i.PreferredSkills, u.PreferredSkills)
	if out.JobTitle == "" {
		out.JobTitle = strings.TrimSpace(u.JobTitle)
	}
	if out.Company == "" {
		out.Company = strings.TrimSpace(u.Company)
	}
	if out.Location == "" {
		out.Location = strings.TrimSpace(u.Location)
	}
	if out.JobType == "" {
		out.JobType = strings.TrimSpace(u.JobType)
	}
	if out.WorkplaceType == "" {
		out.WorkplaceType = strings.ToLower(strings.TrimSpace(u.WorkplaceType))
	}
	if out.SeniorityLevel == "" {
		out.SeniorityLevel = strings.TrimSpace(u.SeniorityLevel)
	}
	if out.CultureAndTeam == "" {
		out.CultureAndTeam = strings.TrimSpace(u.CultureAndTeam)
	}
	if out.OtherInfo == "" {
		out.OtherInfo = strings.TrimSpace(u.OtherInfo)
	}
	return out
}

// unionKeepCase unions free-text bullet lists, deduplicating on folded text
// but preserving the first-seen casing and order.
func unionKeepCase(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			v = strings.TrimSpace(v)
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
	}
	return out
}

// JobPost is the LinkedIn-style hiring post composed from a completed
// interview.
type JobPost struct {
	ID               string    `json:"id,omitempty"`
	Title            string    `json:"title,omitempty"`
	Company          string    `json:"company,omitempty"`
	Location         string    `json:"location,omitempty"`
	WorkplaceType    string    `json:"workplace_type,omitempty"`
	JobType          string    `json:"job_type,omitempty"`
	Summary          string    `json:"summary,omitempty"`
	CultureAndTeam   string    `json:"culture_and_team,omitempty"`
	Responsibilities []string  `json:"responsibilities"`
	Requirements     []string  `json:"requirements"`
	Skills           []string  `json:"skills"`
	Keywords         []string  `json:"keywords"`
	Hashtags         []string  `json:"hashtags"`
	ToneType         string    `json:"tone_type,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// Message is one turn side in a session transcript.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is the per-conversation mutable state. It is created on session
// start and mutated on every turn; eviction is the store's concern (TTL).
type Session struct {
	ID              string           `json:"id"`
	Flow            Flow             `json:"flow"`
	Messages        []Message        `json:"messages"`
	Profile         SeekerProfile    `json:"profile"`
	JobInfo         JobInfo          `json:"job_info"`
	Complete        bool             `json:"complete"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Post            *JobPost         `json:"post,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// FilterCriteria selects listings. Omitted categories pass everything;
// categories AND together, values within a category OR together.
type FilterCriteria struct {
	Locations        []string `json:"locations,omitempty"`
	WorkTypes        []string `json:"work_types,omitempty"`
	ExperienceLevels []string `json:"experience_levels,omitempty"`
	Companies        []string `json:"companies,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	Industries       []string `json:"industries,omitempty"`
	Keyword          string   `json:"keyword,omitempty"`
}

// Empty reports whether no filter is active.
func (c FilterCriteria) Empty() bool {
	return len(c.Locations) == 0 && len(c.WorkTypes) == 0 &&
		len(c.ExperienceLevels) == 0 && len(c.Companies) == 0 &&
		len(c.Skills) == 0 && len(c.Industries) == 0 && c.Keyword == ""
}

// FilterOptions enumerates the distinct values observed per filterable
// attribute, for populating a filter UI.
type FilterOptions struct {
	Locations        []string `json:"locations"`
	WorkTypes        []string `json:"work_types"`
	ExperienceLevels []string `json:"experience_levels"`
	Companies        []string `json:"companies"`
	Skills           []string `json:"skills"`
	Industries       []string `json:"industries"`
}

// Ports

// SessionRepository stores sessions by id.
type SessionRepository interface {
	Create(ctx Context, s Session) error
	Get(ctx Context, id string) (Session, error)
	Update(ctx Context, s Session) error
}

// ListingSource provides the read-mostly listing set. Implementations may
// fall back to a fixed sample set when the real source is empty.
type ListingSource interface {
	Listings(ctx Context) ([]JobListing, error)
}

// PostRepository persists composed job posts.
type PostRepository interface {
	Create(ctx Context, p JobPost) (string, error)
	Get(ctx Context, id string) (JobPost, error)
	Update(ctx Context, p JobPost) error
}

// AIClient is the generative-text port. Callers must treat failures as
// recoverable and degrade to deterministic behavior.
type AIClient interface {
	// ChatText returns free-form assistant text.
	ChatText(ctx Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
	// ChatJSON returns a JSON document matching the schema described in the
	// prompt; deterministic in stub mode.
	ChatJSON(ctx Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// Context aliases context.Context so adapters and usecases share one
// signature without the domain importing adapter packages.
type Context = context.Context
