package postgres

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

// ListingsRepo sources job listings from PostgreSQL, falling back to the
// fixed sample set when the table is empty or unreachable.
type ListingsRepo struct {
	Pool PgxPool
}

// NewListingsRepo constructs a ListingsRepo.
func NewListingsRepo(p PgxPool) *ListingsRepo { return &ListingsRepo{Pool: p} }

// Listings returns every stored listing. An empty or failing store degrades
// to domain.SampleListings so the finder flow always has material to rank.
func (r *ListingsRepo) Listings(ctx domain.Context) ([]domain.JobListing, error) {
	tracer := otel.Tracer("repo.listings")
	ctx, span := tracer.Start(ctx, "listings.List")
	defer span.End()

	q := `SELECT id, title, company, location, required_skills, optional_skills,
		COALESCE(experience_level,''), COALESCE(salary_range,''), COALESCE(work_type,''),
		industries, COALESCE(description,'')
		FROM listings ORDER BY created_at, id`
	rows, err := r.Pool.Query(ctx, q)
	if err != nil {
		slog.Warn("listing store unavailable, serving sample set", slog.Any("error", err))
		return domain.SampleListings(), nil
	}
	defer rows.Close()

	var out []domain.JobListing
	for rows.Next() {
		var l domain.JobListing
		if err := rows.Scan(&l.ID, &l.Title, &l.Company, &l.Location,
			&l.RequiredSkills, &l.OptionalSkills, &l.ExperienceLevel,
			&l.SalaryRange, &l.WorkType, &l.Industries, &l.Description); err != nil {
			return nil, fmt.Errorf("op=listings.scan: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=listings.rows: %w", err)
	}
	if len(out) == 0 {
		return domain.SampleListings(), nil
	}
	return out, nil
}

// Seed inserts the sample listings, skipping ids that already exist.
func (r *ListingsRepo) Seed(ctx domain.Context) error {
	q := `INSERT INTO listings (id, title, company, location, required_skills, optional_skills,
		experience_level, salary_range, work_type, industries, description, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now())
		ON CONFLICT (id) DO NOTHING`
	for _, l := range domain.SampleListings() {
		if _, err := r.Pool.Exec(ctx, q, l.ID, l.Title, l.Company, l.Location,
			l.RequiredSkills, l.OptionalSkills, l.ExperienceLevel, l.SalaryRange,
			l.WorkType, l.Industries, l.Description); err != nil {
			return fmt.Errorf("op=listings.seed: %w", err)
		}
	}
	return nil
}
