package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// PostsRepo persists composed job posts.
type PostsRepo struct {
	Pool PgxPool
}

// NewPostsRepo constructs a PostsRepo with the given pool.
func NewPostsRepo(p PgxPool) *PostsRepo { return &PostsRepo{Pool: p} }

// Create inserts a new post and returns its id.
func (r *PostsRepo) Create(ctx domain.Context, p domain.JobPost) (string, error) {
	tracer := otel.Tracer("repo.posts")
	ctx, span := tracer.Start(ctx, "posts.Create")
	defer span.End()
	id := p.ID
	if id == "" {
		id = uuid.New().String()
	}
	q := `INSERT INTO job_posts (id, title, company, location, workplace_type, job_type,
		summary, culture_and_team, responsibilities, requirements, skills, keywords,
		hashtags, tone_type, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`
	now := time.Now().UTC()
	_, err := r.Pool.Exec(ctx, q, id, p.Title, p.Company, p.Location, p.WorkplaceType,
		p.JobType, p.Summary, p.CultureAndTeam, p.Responsibilities, p.Requirements,
		p.Skills, p.Keywords, p.Hashtags, p.ToneType, now, now)
	if err != nil {
		return "", fmt.Errorf("op=posts.create: %w", err)
	}
	return id, nil
}

// Get loads a post by id.
func (r *PostsRepo) Get(ctx domain.Context, id string) (domain.JobPost, error) {
	tracer := otel.Tracer("repo.posts")
	ctx, span := tracer.Start(ctx, "posts.Get")
	defer span.End()
	q := `SELECT id, title, company, location, COALESCE(workplace_type,''), COALESCE(job_type,''),
		COALESCE(summary,''), COALESCE(culture_and_team,''), responsibilities, requirements,
		skills, keywords, hashtags, COALESCE(tone_type,''), created_at, updated_at
		FROM job_posts WHERE id=$1`
	var p domain.JobPost
	err := r.Pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Company, &p.Location,
		&p.WorkplaceType, &p.JobType, &p.Summary, &p.CultureAndTeam, &p.Responsibilities,
		&p.Requirements, &p.Skills, &p.Keywords, &p.Hashtags, &p.ToneType,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JobPost{}, fmt.Errorf("op=posts.get: %w", domain.ErrNotFound)
		}
		return domain.JobPost{}, fmt.Errorf("op=posts.get: %w", err)
	}
	return p, nil
}

// Update rewrites an existing post.
func (r *PostsRepo) Update(ctx domain.Context, p domain.JobPost) error {
	tracer := otel.Tracer("repo.posts")
	ctx, span := tracer.Start(ctx, "posts.Update")
	defer span.End()
	q := `UPDATE job_posts SET title=$2, company=$3, location=$4, workplace_type=$5,
		job_type=$6, summary=$7, culture_and_team=$8, responsibilities=$9, requirements=$10,
		skills=$11, keywords=$12, hashtags=$13, tone_type=$14, updated_at=$15 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, p.ID, p.Title, p.Company, p.Location, p.WorkplaceType,
		p.JobType, p.Summary, p.CultureAndTeam, p.Responsibilities, p.Requirements,
		p.Skills, p.Keywords, p.Hashtags, p.ToneType, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=posts.update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=posts.update: %w", domain.ErrNotFound)
	}
	return nil
}
