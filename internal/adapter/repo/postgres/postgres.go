package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repositories use, kept small so
// tests can fake it.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		company          TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		required_skills  TEXT[] NOT NULL DEFAULT '{}',
		optional_skills  TEXT[] NOT NULL DEFAULT '{}',
		experience_level TEXT,
		salary_range     TEXT,
		work_type        TEXT,
		industries       TEXT[] NOT NULL DEFAULT '{}',
		description      TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS job_posts (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		company          TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		workplace_type   TEXT,
		job_type         TEXT,
		summary          TEXT,
		culture_and_team TEXT,
		responsibilities TEXT[] NOT NULL DEFAULT '{}',
		requirements     TEXT[] NOT NULL DEFAULT '{}',
		skills           TEXT[] NOT NULL DEFAULT '{}',
		keywords         TEXT[] NOT NULL DEFAULT '{}',
		hashtags         TEXT[] NOT NULL DEFAULT '{}',
		tone_type        TEXT,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables the repositories depend on. Statements are
// idempotent so repeated startups are safe.
func EnsureSchema(ctx context.Context, pool PgxPool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("op=postgres.ensure_schema: %w", err)
		}
	}
	return nil
}
