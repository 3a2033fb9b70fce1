package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/hirecraft/hirecraft-backend/internal/adapter/observability"
	"github.com/hirecraft/hirecraft-backend/internal/compose"
	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/internal/interview"
	"github.com/hirecraft/hirecraft-backend/pkg/textx"
)

// HiringTurn is the outcome of one hiring-manager message. Preview always
// reflects the information gathered so far; once the interview completes it
// is the composed post itself.
type HiringTurn struct {
	Reply    string         `json:"reply"`
	Complete bool           `json:"complete"`
	JobInfo  domain.JobInfo `json:"job_info"`
	Preview  domain.JobPost `json:"preview"`
}

// HiringService runs the hiring wizard: interview the manager, accumulate
// structured job info, and compose a polished post on completion.
type HiringService struct {
	Sessions  domain.SessionRepository
	Posts     domain.PostRepository
	AI        domain.AIClient
	Extractor interview.Extractor
	Composer  compose.Composer
	Formatter compose.Formatter

	locks *sessionLocks
}

func NewHiringService(sessions domain.SessionRepository, posts domain.PostRepository, ai domain.AIClient, ex interview.Extractor, cp compose.Composer, fm compose.Formatter) *HiringService {
	return &HiringService{
		Sessions:  sessions,
		Posts:     posts,
		AI:        ai,
		Extractor: ex,
		Composer:  cp,
		Formatter: fm,
		locks:     newSessionLocks(),
	}
}

// StartSession creates a hiring session seeded with the greeting.
func (s *HiringService) StartSession(ctx domain.Context) (domain.Session, error) {
	tracer := otel.Tracer("usecase.hiring")
	ctx, span := tracer.Start(ctx, "hiring.StartSession")
	defer span.End()

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        uuid.New().String(),
		Flow:      domain.FlowHiring,
		Messages:  []domain.Message{{Role: "assistant", Content: interview.HiringGreeting, At: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("op=hiring.start: %w", err)
	}
	observability.SessionsStartedTotal.WithLabelValues(string(domain.FlowHiring)).Inc()
	slog.Default().InfoContext(ctx, "hiring session started", slog.String("session_id", sess.ID))
	return sess, nil
}

// ProcessMessage runs one turn. Help requests ("can you suggest some
// skills?") are answered without advancing the interview; every other
// message goes through extraction and the interview reply. Composition runs
// exactly once, on the turn the interview completes.
func (s *HiringService) ProcessMessage(ctx domain.Context, sessionID, message string) (HiringTurn, error) {
	tracer := otel.Tracer("usecase.hiring")
	ctx, span := tracer.Start(ctx, "hiring.ProcessMessage")
	defer span.End()

	message = textx.CollapseSpaces(textx.SanitizeText(message))
	if message == "" || len(message) > maxMessageLen {
		return HiringTurn{}, fmt.Errorf("op=hiring.turn: message: %w", domain.ErrInvalidArgument)
	}

	release := s.locks.acquire(sessionID)
	defer release()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return HiringTurn{}, err
	}
	if sess.Flow != domain.FlowHiring {
		return HiringTurn{}, fmt.Errorf("op=hiring.turn: flow=%s: %w", sess.Flow, domain.ErrInvalidArgument)
	}
	observability.TurnsTotal.WithLabelValues(string(domain.FlowHiring)).Inc()

	now := time.Now().UTC()
	history := sess.Messages
	sess.Messages = append(sess.Messages, domain.Message{Role: "user", Content: message, At: now})

	turn := HiringTurn{}
	if section := interview.DetectHelpRequest(message); section != "" && !sess.Complete {
		turn.Reply = s.Formatter.SuggestSection(ctx, sess.JobInfo, section)
		if turn.Reply == "" {
			// Suggestion degraded; restate the open question instead of
			// going silent.
			turn.Reply = interview.NextHiringQuestion(sess.JobInfo)
		}
	} else if !sess.Complete {
		update := s.Extractor.ExtractJobInfo(ctx, message, history)
		sess.JobInfo = sess.JobInfo.Merge(update)

		reply, sentinel := s.interviewReply(ctx, sess)
		if sentinel || interview.HiringComplete(sess.JobInfo) {
			sess.Complete = true
			post := s.Composer.Compose(ctx, sess.JobInfo)
			post = s.Formatter.FormatPost(ctx, post)
			sess.Post = &post
			observability.SessionsCompletedTotal.WithLabelValues(string(domain.FlowHiring)).Inc()
			if reply == "" {
				reply = "That's everything I need. Your hiring post draft is ready - review the preview and ask me to regenerate any section you'd like to change."
			}
		}
		turn.Reply = reply
	} else {
		// Interview already done; keep answering but never re-compose.
		turn.Reply = "Your post is already drafted. You can regenerate individual sections or save it."
	}

	turn.Complete = sess.Complete
	turn.JobInfo = sess.JobInfo
	if sess.Post != nil {
		turn.Preview = *sess.Post
	} else {
		turn.Preview = compose.LivePreview(sess.JobInfo)
	}

	sess.Messages = append(sess.Messages, domain.Message{Role: "assistant", Content: turn.Reply, At: time.Now().UTC()})
	sess.UpdatedAt = time.Now().UTC()
	if err := s.Sessions.Update(ctx, sess); err != nil {
		return HiringTurn{}, fmt.Errorf("op=hiring.turn: %w", err)
	}
	return turn, nil
}

// interviewReply asks the model for the next interviewer turn over the full
// transcript. It reports whether the completion sentinel was present; the
// sentinel itself never reaches the caller. On model failure the
// deterministic next question is used.
func (s *HiringService) interviewReply(ctx domain.Context, sess domain.Session) (string, bool) {
	reply, err := s.AI.ChatText(ctx, compose.InterviewSystemPrompt, transcript(sess.Messages), 0.7, 400)
	if err != nil {
		slog.Default().WarnContext(ctx, "interview reply degraded", slog.Any("error", err))
		return interview.NextHiringQuestion(sess.JobInfo), false
	}
	sentinel := strings.Contains(reply, interview.CompleteSentinel)
	reply = strings.TrimSpace(strings.ReplaceAll(reply, interview.CompleteSentinel, ""))
	if reply == "" && !sentinel {
		return interview.NextHiringQuestion(sess.JobInfo), false
	}
	return reply, sentinel
}

func transcript(msgs []domain.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// RegenerateSection rewrites one section of the drafted post and leaves the
// rest untouched apart from normalization.
func (s *HiringService) RegenerateSection(ctx domain.Context, sessionID, section string) (domain.JobPost, error) {
	tracer := otel.Tracer("usecase.hiring")
	ctx, span := tracer.Start(ctx, "hiring.RegenerateSection")
	defer span.End()

	release := s.locks.acquire(sessionID)
	defer release()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.JobPost{}, err
	}
	if sess.Post == nil {
		return domain.JobPost{}, fmt.Errorf("op=hiring.regenerate: no drafted post: %w", domain.ErrConflict)
	}
	post := *sess.Post
	switch section {
	case "summary":
		post.Summary = s.Formatter.FormatTextSection(ctx, section, post.Summary)
	case "culture_and_team":
		post.CultureAndTeam = s.Formatter.FormatTextSection(ctx, section, post.CultureAndTeam)
	case "responsibilities":
		post.Responsibilities = s.Formatter.FormatSection(ctx, section, post.Responsibilities)
	case "requirements":
		post.Requirements = s.Formatter.FormatSection(ctx, section, post.Requirements)
	case "skills":
		post.Skills = s.Formatter.FormatSection(ctx, section, post.Skills)
	case "hashtags":
		post.Hashtags = s.Formatter.GenerateHashtags(ctx, post)
	case "keywords":
		post.Keywords = s.Formatter.GenerateKeywords(ctx, post)
	default:
		return domain.JobPost{}, fmt.Errorf("op=hiring.regenerate: section=%s: %w", section, domain.ErrInvalidArgument)
	}
	post = compose.Normalize(post)
	sess.Post = &post
	sess.UpdatedAt = time.Now().UTC()
	if err := s.Sessions.Update(ctx, sess); err != nil {
		return domain.JobPost{}, fmt.Errorf("op=hiring.regenerate: %w", err)
	}
	return post, nil
}

// Preview returns the drafted post, or a live preview assembled from the
// fields gathered so far, along with the interview completion state.
func (s *HiringService) Preview(ctx domain.Context, sessionID string) (domain.JobPost, bool, error) {
	tracer := otel.Tracer("usecase.hiring")
	ctx, span := tracer.Start(ctx, "hiring.Preview")
	defer span.End()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.JobPost{}, false, err
	}
	if sess.Post != nil {
		return *sess.Post, sess.Complete, nil
	}
	return compose.LivePreview(sess.JobInfo), sess.Complete, nil
}

// SavePost persists the drafted post and returns its id. Saving twice
// updates the same stored post.
func (s *HiringService) SavePost(ctx domain.Context, sessionID string) (string, error) {
	tracer := otel.Tracer("usecase.hiring")
	ctx, span := tracer.Start(ctx, "hiring.SavePost")
	defer span.End()

	release := s.locks.acquire(sessionID)
	defer release()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess.Post == nil {
		return "", fmt.Errorf("op=hiring.save: no drafted post: %w", domain.ErrConflict)
	}
	post := *sess.Post
	if post.ID != "" {
		if uerr := s.Posts.Update(ctx, post); uerr != nil {
			return "", uerr
		}
		return post.ID, nil
	}
	id, err := s.Posts.Create(ctx, post)
	if err != nil {
		return "", err
	}
	post.ID = id
	sess.Post = &post
	sess.UpdatedAt = time.Now().UTC()
	if uerr := s.Sessions.Update(ctx, sess); uerr != nil {
		slog.Default().WarnContext(ctx, "post id write-back failed", slog.Any("error", uerr))
	}
	return id, nil
}
