package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/internal/interview"
	"github.com/hirecraft/hirecraft-backend/internal/match"
	"github.com/hirecraft/hirecraft-backend/internal/usecase"
)

type memSessions struct {
	mu sync.Mutex
	m  map[string]domain.Session
}

func newMemSessions() *memSessions { return &memSessions{m: map[string]domain.Session{}} }

func (s *memSessions) Create(_ domain.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[sess.ID]; ok {
		return fmt.Errorf("id=%s: %w", sess.ID, domain.ErrConflict)
	}
	s.m[sess.ID] = sess
	return nil
}

func (s *memSessions) Get(_ domain.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("id=%s: %w", id, domain.ErrNotFound)
	}
	return sess, nil
}

func (s *memSessions) Update(_ domain.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[sess.ID]; !ok {
		return fmt.Errorf("id=%s: %w", sess.ID, domain.ErrNotFound)
	}
	s.m[sess.ID] = sess
	return nil
}

type memListings struct {
	listings []domain.JobListing
	err      error
}

func (l memListings) Listings(_ domain.Context) ([]domain.JobListing, error) {
	return l.listings, l.err
}

// fakeAI answers canned responses; the zero value fails every call so the
// deterministic degradation paths run.
type fakeAI struct {
	textResp  string
	textOK    bool
	jsonResp  string
	jsonOK    bool
	jsonCalls int
}

func (f *fakeAI) ChatText(_ domain.Context, _, _ string, _ float64, _ int) (string, error) {
	if !f.textOK {
		return "", errors.New("ai unavailable")
	}
	return f.textResp, nil
}

func (f *fakeAI) ChatJSON(_ domain.Context, _, _ string, _ int) (string, error) {
	f.jsonCalls++
	if !f.jsonOK {
		return "", errors.New("ai unavailable")
	}
	return f.jsonResp, nil
}

func testListings() []domain.JobListing {
	return []domain.JobListing{
		{
			ID:             "job-001",
			Title:          "Senior Frontend Engineer",
			Company:        "TechCorp",
			Location:       "San Francisco, CA",
			RequiredSkills: []string{"react", "typescript", "javascript"},
			WorkType:       domain.WorkRemote,
		},
		{
			ID:             "job-003",
			Title:          "Product Manager",
			Company:        "FinServe",
			Location:       "New York, NY",
			RequiredSkills: []string{"roadmapping"},
			WorkType:       domain.WorkOnsite,
		},
	}
}

func newFinder(sessions *memSessions, listings memListings, ai domain.AIClient) *usecase.FinderService {
	ex := interview.NewExtractor(interview.DefaultVocabulary(), ai)
	return usecase.NewFinderService(sessions, listings, ai, ex, match.New())
}

func TestFinderStartSession_SeedsGreeting(t *testing.T) {
	t.Parallel()
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, &fakeAI{})
	sess, err := svc.StartSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.FlowFinder, sess.Flow)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, "assistant", sess.Messages[0].Role)
	assert.Equal(t, interview.FinderGreeting, sess.Messages[0].Content)
}

func TestFinderProcessMessage_UnknownSession(t *testing.T) {
	t.Parallel()
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, &fakeAI{})
	_, err := svc.ProcessMessage(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinderProcessMessage_RejectsEmptyMessage(t *testing.T) {
	t.Parallel()
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, &fakeAI{})
	sess, err := svc.StartSession(context.Background())
	require.NoError(t, err)
	_, err = svc.ProcessMessage(context.Background(), sess.ID, "  \x00 ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestFinderFlow_CompletesAndRecommends(t *testing.T) {
	t.Parallel()
	ai := &fakeAI{jsonResp: "{}", jsonOK: true} // text calls fail -> deterministic questions
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, ai)
	ctx := context.Background()
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)

	turn, err := svc.ProcessMessage(ctx, sess.ID, "I'd like a frontend position next")
	require.NoError(t, err)
	assert.False(t, turn.Complete)
	assert.Equal(t, "What is your current or most recent role?", turn.Reply)
	assert.Equal(t, []string{"frontend"}, turn.Profile.PreferredTitles)

	turn, err = svc.ProcessMessage(ctx, sess.ID, "react, typescript, css")
	require.NoError(t, err)
	assert.False(t, turn.Complete)
	assert.ElementsMatch(t, []string{"react", "typescript", "css"}, turn.Profile.Skills)

	turn, err = svc.ProcessMessage(ctx, sess.ID, "fully remote please")
	require.NoError(t, err)
	assert.True(t, turn.Complete)
	require.Len(t, turn.Recommendations, 1)
	rec := turn.Recommendations[0]
	assert.Equal(t, "job-001", rec.JobID)
	assert.GreaterOrEqual(t, rec.MatchScore, match.DefaultThreshold)
	assert.True(t, strings.HasSuffix(rec.Explanation, "."), "explanations are formatted")

	// idempotent read after completion
	recs, err := svc.Recommendations(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, turn.Recommendations, recs)
}

func TestFinderConverse_ReplyAlwaysCarriesTheQuestion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Model acknowledges but drops the question: it gets appended.
	ai := &fakeAI{textOK: true, textResp: "Thanks, that's helpful!", jsonOK: true, jsonResp: "{}"}
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, ai)
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)
	turn, err := svc.ProcessMessage(ctx, sess.ID, "I'd like a frontend position next")
	require.NoError(t, err)
	assert.Equal(t, "Thanks, that's helpful! What is your current or most recent role?", turn.Reply)

	// Model already ends with the question: nothing is duplicated.
	ai2 := &fakeAI{textOK: true, textResp: "Nice! What is your current or most recent role?", jsonOK: true, jsonResp: "{}"}
	svc2 := newFinder(newMemSessions(), memListings{listings: testListings()}, ai2)
	sess2, err := svc2.StartSession(ctx)
	require.NoError(t, err)
	turn, err = svc2.ProcessMessage(ctx, sess2.ID, "I'd like a frontend position next")
	require.NoError(t, err)
	assert.Equal(t, ai2.textResp, turn.Reply)
}

func TestFinderProcessMessage_SameStateSameMessageSameUpdate(t *testing.T) {
	t.Parallel()
	ai := &fakeAI{jsonOK: true, jsonResp: "{}"}
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, ai)
	ctx := context.Background()

	const msg = "Senior frontend work, ideally remote"
	a, err := svc.StartSession(ctx)
	require.NoError(t, err)
	b, err := svc.StartSession(ctx)
	require.NoError(t, err)

	ta, err := svc.ProcessMessage(ctx, a.ID, msg)
	require.NoError(t, err)
	tb, err := svc.ProcessMessage(ctx, b.ID, msg)
	require.NoError(t, err)

	// Profile ids are the session ids; everything extracted must match.
	pa, pb := ta.Profile, tb.Profile
	pa.ID, pb.ID = "", ""
	assert.Equal(t, pa, pb, "same prior state and message extract the same update")
	assert.Equal(t, ta.Complete, tb.Complete)
}

func TestFinderProcessMessage_CollapsesWhitespace(t *testing.T) {
	t.Parallel()
	sessions := newMemSessions()
	ai := &fakeAI{jsonOK: true, jsonResp: "{}"}
	svc := newFinder(sessions, memListings{listings: testListings()}, ai)
	ctx := context.Background()
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)

	turn, err := svc.ProcessMessage(ctx, sess.ID, "react,   typescript,\tcss")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"react", "typescript", "css"}, turn.Profile.Skills)

	stored, err := sessions.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 3)
	assert.Equal(t, "react, typescript, css", stored.Messages[1].Content)
}

func TestFinderRecommendations_IncompleteProfileConflicts(t *testing.T) {
	t.Parallel()
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, &fakeAI{})
	sess, err := svc.StartSession(context.Background())
	require.NoError(t, err)
	_, err = svc.Recommendations(context.Background(), sess.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestFinderSearchListings_AppliesCriteria(t *testing.T) {
	t.Parallel()
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, &fakeAI{})
	out, err := svc.SearchListings(context.Background(), domain.FilterCriteria{
		WorkTypes: []string{domain.WorkRemote},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "job-001", out[0].ID)
}

func TestFinderListingFilterOptions(t *testing.T) {
	t.Parallel()
	svc := newFinder(newMemSessions(), memListings{listings: testListings()}, &fakeAI{})
	opts, err := svc.ListingFilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"onsite", "remote"}, opts.WorkTypes)
	assert.Equal(t, []string{"FinServe", "TechCorp"}, opts.Companies)
}

func TestFinderProcessMessage_ListingSourceFailureSurfaces(t *testing.T) {
	t.Parallel()
	ai := &fakeAI{jsonResp: "{}", jsonOK: true}
	svc := newFinder(newMemSessions(), memListings{err: errors.New("store down")}, ai)
	ctx := context.Background()
	sess, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = svc.ProcessMessage(ctx, sess.ID, "frontend roles")
	require.NoError(t, err, "listing source is untouched before completion")
	_, err = svc.ProcessMessage(ctx, sess.ID, "react, typescript")
	require.NoError(t, err)
	_, err = svc.ProcessMessage(ctx, sess.ID, "remote works for me")
	assert.Error(t, err, "completion needs the listing source")
}
