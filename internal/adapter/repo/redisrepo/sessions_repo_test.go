package redisrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirecraft/hirecraft-backend/internal/adapter/repo/redisrepo"
	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

func newRepo(t *testing.T, ttl time.Duration) (*redisrepo.SessionsRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisrepo.NewSessionsRepo(rdb, ttl), mr
}

func sampleSession() domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Session{
		ID:   "sess-1",
		Flow: domain.FlowFinder,
		Messages: []domain.Message{
			{Role: "assistant", Content: "Hi!", At: now},
		},
		Profile:   domain.SeekerProfile{ID: "sess-1", Skills: []string{"go", "sql"}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSessionsRepo_RoundTrip(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleSession()))
	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)
}

func TestSessionsRepo_CreateTwiceConflicts(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, sampleSession()))
	err := repo.Create(ctx, sampleSession())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSessionsRepo_GetMissing(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t, time.Hour)
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionsRepo_UpdateMissing(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t, time.Hour)
	err := repo.Update(context.Background(), sampleSession())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionsRepo_UpdateOverwritesAndRefreshesTTL(t *testing.T) {
	t.Parallel()
	repo, mr := newRepo(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, sampleSession()))

	mr.FastForward(30 * time.Minute)

	sess := sampleSession()
	sess.Complete = true
	require.NoError(t, repo.Update(ctx, sess))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, got.Complete)

	// the write pushed expiry a full TTL out again
	mr.FastForward(45 * time.Minute)
	_, err = repo.Get(ctx, "sess-1")
	assert.NoError(t, err)
}

func TestSessionsRepo_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()
	repo, mr := newRepo(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, sampleSession()))

	mr.FastForward(2 * time.Minute)
	_, err := repo.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
