package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePool struct {
	execs   []string
	execErr error
}

func (f *fakePool) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakePool) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (f *fakePool) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }

func TestEnsureSchema_CreatesAllTables(t *testing.T) {
	t.Parallel()
	pool := &fakePool{}
	require.NoError(t, EnsureSchema(context.Background(), pool))
	require.Len(t, pool.execs, len(schema))
	assert.Contains(t, pool.execs[0], "listings")
	assert.Contains(t, pool.execs[1], "job_posts")
	for _, stmt := range pool.execs {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}

func TestSeed_SkipsExistingRows(t *testing.T) {
	t.Parallel()
	pool := &fakePool{}
	repo := NewListingsRepo(pool)
	require.NoError(t, repo.Seed(context.Background()))
	first := len(pool.execs)
	require.NotZero(t, first)
	for _, stmt := range pool.execs {
		assert.Contains(t, stmt, "ON CONFLICT (id) DO NOTHING")
	}
	// A second seed issues the same conflict-guarded inserts, so rerunning
	// at startup never duplicates listings.
	require.NoError(t, repo.Seed(context.Background()))
	assert.Len(t, pool.execs, 2*first)
}

func TestEnsureSchema_PropagatesError(t *testing.T) {
	t.Parallel()
	pool := &fakePool{execErr: errors.New("boom")}
	err := EnsureSchema(context.Background(), pool)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure_schema")
}
