package usecase

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/hirecraft/hirecraft-backend/internal/adapter/observability"
	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/internal/interview"
	"github.com/hirecraft/hirecraft-backend/internal/match"
	"github.com/hirecraft/hirecraft-backend/pkg/textx"
)

const maxMessageLen = 4000

// FinderTurn is the outcome of one seeker message.
type FinderTurn struct {
	Reply           string                  `json:"reply"`
	Complete        bool                    `json:"complete"`
	Profile         domain.SeekerProfile    `json:"profile"`
	Recommendations []domain.Recommendation `json:"recommendations,omitempty"`
}

// FinderService runs the job-seeker wizard: interview the seeker, build a
// profile and, once the required fields are present, score the listing set.
type FinderService struct {
	Sessions  domain.SessionRepository
	Listings  domain.ListingSource
	AI        domain.AIClient
	Extractor interview.Extractor
	Engine    match.Engine

	locks *sessionLocks
}

func NewFinderService(sessions domain.SessionRepository, listings domain.ListingSource, ai domain.AIClient, ex interview.Extractor, eng match.Engine) *FinderService {
	return &FinderService{
		Sessions:  sessions,
		Listings:  listings,
		AI:        ai,
		Extractor: ex,
		Engine:    eng,
		locks:     newSessionLocks(),
	}
}

// StartSession creates a finder session seeded with the greeting.
func (s *FinderService) StartSession(ctx domain.Context) (domain.Session, error) {
	tracer := otel.Tracer("usecase.finder")
	ctx, span := tracer.Start(ctx, "finder.StartSession")
	defer span.End()

	now := time.Now().UTC()
	sess := domain.Session{
		ID:        uuid.New().String(),
		Flow:      domain.FlowFinder,
		Messages:  []domain.Message{{Role: "assistant", Content: interview.FinderGreeting, At: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	sess.Profile.ID = sess.ID
	if err := s.Sessions.Create(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("op=finder.start: %w", err)
	}
	observability.SessionsStartedTotal.WithLabelValues(string(domain.FlowFinder)).Inc()
	slog.Default().InfoContext(ctx, "finder session started", slog.String("session_id", sess.ID))
	return sess, nil
}

// ProcessMessage runs one turn: extract profile fields from the message,
// merge them, and either ask the next question or deliver recommendations.
// Turns on the same session are serialized.
func (s *FinderService) ProcessMessage(ctx domain.Context, sessionID, message string) (FinderTurn, error) {
	tracer := otel.Tracer("usecase.finder")
	ctx, span := tracer.Start(ctx, "finder.ProcessMessage")
	defer span.End()

	message = textx.CollapseSpaces(textx.SanitizeText(message))
	if message == "" || len(message) > maxMessageLen {
		return FinderTurn{}, fmt.Errorf("op=finder.turn: message: %w", domain.ErrInvalidArgument)
	}

	release := s.locks.acquire(sessionID)
	defer release()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return FinderTurn{}, err
	}
	if sess.Flow != domain.FlowFinder {
		return FinderTurn{}, fmt.Errorf("op=finder.turn: flow=%s: %w", sess.Flow, domain.ErrInvalidArgument)
	}
	observability.TurnsTotal.WithLabelValues(string(domain.FlowFinder)).Inc()

	now := time.Now().UTC()
	sess.Messages = append(sess.Messages, domain.Message{Role: "user", Content: message, At: now})

	update := s.Extractor.ExtractProfile(ctx, message)
	sess.Profile = sess.Profile.Merge(update)

	turn := FinderTurn{Profile: sess.Profile}
	wasComplete := sess.Complete
	sess.Complete = interview.FinderComplete(sess.Profile)
	turn.Complete = sess.Complete

	switch {
	case sess.Complete && !wasComplete:
		recs, rerr := s.recommend(ctx, sess.Profile)
		if rerr != nil {
			return FinderTurn{}, rerr
		}
		sess.Recommendations = recs
		turn.Recommendations = recs
		turn.Reply = completionReply(recs)
		observability.SessionsCompletedTotal.WithLabelValues(string(domain.FlowFinder)).Inc()
	case sess.Complete:
		turn.Recommendations = sess.Recommendations
		turn.Reply = completionReply(sess.Recommendations)
	default:
		turn.Reply = s.converse(ctx, message, interview.NextFinderQuestion(sess.Profile))
	}

	sess.Messages = append(sess.Messages, domain.Message{Role: "assistant", Content: turn.Reply, At: time.Now().UTC()})
	sess.UpdatedAt = time.Now().UTC()
	if err := s.Sessions.Update(ctx, sess); err != nil {
		return FinderTurn{}, fmt.Errorf("op=finder.turn: %w", err)
	}
	return turn, nil
}

// Recommendations returns the scored matches for a completed session,
// recomputing when the stored set is empty.
func (s *FinderService) Recommendations(ctx domain.Context, sessionID string) ([]domain.Recommendation, error) {
	tracer := otel.Tracer("usecase.finder")
	ctx, span := tracer.Start(ctx, "finder.Recommendations")
	defer span.End()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Complete {
		return nil, fmt.Errorf("op=finder.recommendations: profile incomplete: %w", domain.ErrConflict)
	}
	if len(sess.Recommendations) > 0 {
		return sess.Recommendations, nil
	}
	recs, err := s.recommend(ctx, sess.Profile)
	if err != nil {
		return nil, err
	}
	sess.Recommendations = recs
	sess.UpdatedAt = time.Now().UTC()
	if uerr := s.Sessions.Update(ctx, sess); uerr != nil {
		slog.Default().WarnContext(ctx, "recommendation cache write failed", slog.Any("error", uerr))
	}
	return recs, nil
}

// SearchListings applies the filter criteria to the listing set. No score
// threshold applies here; filters are exact.
func (s *FinderService) SearchListings(ctx domain.Context, c domain.FilterCriteria) ([]domain.JobListing, error) {
	tracer := otel.Tracer("usecase.finder")
	ctx, span := tracer.Start(ctx, "finder.SearchListings")
	defer span.End()

	listings, err := s.Listings.Listings(ctx)
	if err != nil {
		return nil, fmt.Errorf("op=finder.search: %w", err)
	}
	return match.FilterJobs(listings, c), nil
}

// ListingFilterOptions reports the distinct filterable values present in the
// listing set.
func (s *FinderService) ListingFilterOptions(ctx domain.Context) (domain.FilterOptions, error) {
	tracer := otel.Tracer("usecase.finder")
	ctx, span := tracer.Start(ctx, "finder.ListingFilterOptions")
	defer span.End()

	listings, err := s.Listings.Listings(ctx)
	if err != nil {
		return domain.FilterOptions{}, fmt.Errorf("op=finder.options: %w", err)
	}
	return match.ExtractFilterOptions(listings), nil
}

func (s *FinderService) recommend(ctx domain.Context, profile domain.SeekerProfile) ([]domain.Recommendation, error) {
	listings, err := s.Listings.Listings(ctx)
	if err != nil {
		return nil, fmt.Errorf("op=finder.recommend: %w", err)
	}
	recs := s.Engine.MatchJobs(profile, listings)
	for _, r := range recs {
		observability.MatchScoreHistogram.Observe(float64(r.MatchScore))
	}
	return match.FormatRecommendations(recs), nil
}

// converse asks the model for a short conversational bridge into the next
// question; the deterministic question alone is the fallback. The question is
// appended when the model's reply omits it, so no turn ends without one.
func (s *FinderService) converse(ctx domain.Context, message, nextQuestion string) string {
	prompt := fmt.Sprintf("The candidate said: %q. Acknowledge briefly (one sentence), then ask exactly this question: %s", message, nextQuestion)
	reply, err := s.AI.ChatText(ctx, finderSystemPrompt, prompt, 0.7, 150)
	if err != nil || strings.TrimSpace(reply) == "" {
		return nextQuestion
	}
	if !strings.Contains(reply, nextQuestion) {
		return strings.TrimSpace(reply) + " " + nextQuestion
	}
	return reply
}

const finderSystemPrompt = `You are a friendly job-search assistant interviewing a candidate to build their profile. Keep replies under three sentences and always end with the question you were given. Never invent job openings.`

func completionReply(recs []domain.Recommendation) string {
	if len(recs) == 0 {
		return "Your profile is complete, but I couldn't find a strong match right now. Try broadening your preferred locations or titles."
	}
	return fmt.Sprintf("Great news - your profile is complete and I found %d matching role(s) for you! Here are your top recommendations.", len(recs))
}
