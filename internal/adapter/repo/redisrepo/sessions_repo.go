package redisrepo

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/hirecraft/hirecraft-backend/internal/domain"
)

const keyPrefix = "session:"

// SessionsRepo stores interview sessions as TTL'd JSON blobs in Redis.
// Every write refreshes the TTL so active conversations never expire
// mid-interview.
type SessionsRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionsRepo(rdb *redis.Client, ttl time.Duration) *SessionsRepo {
	return &SessionsRepo{rdb: rdb, ttl: ttl}
}

func (r *SessionsRepo) Create(ctx domain.Context, s domain.Session) error {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Create")
	defer span.End()
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("op=sessions.create: marshal: %w", err)
	}
	ok, err := r.rdb.SetNX(ctx, keyPrefix+s.ID, b, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("op=sessions.create: %w", err)
	}
	if !ok {
		return fmt.Errorf("op=sessions.create: id=%s: %w", s.ID, domain.ErrConflict)
	}
	return nil
}

func (r *SessionsRepo) Get(ctx domain.Context, id string) (domain.Session, error) {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Get")
	defer span.End()
	b, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, fmt.Errorf("op=sessions.get: id=%s: %w", id, domain.ErrNotFound)
		}
		return domain.Session{}, fmt.Errorf("op=sessions.get: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Session{}, fmt.Errorf("op=sessions.get: unmarshal: %w", err)
	}
	return s, nil
}

func (r *SessionsRepo) Update(ctx domain.Context, s domain.Session) error {
	tracer := otel.Tracer("repo.sessions")
	ctx, span := tracer.Start(ctx, "sessions.Update")
	defer span.End()
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("op=sessions.update: marshal: %w", err)
	}
	ok, err := r.rdb.SetXX(ctx, keyPrefix+s.ID, b, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("op=sessions.update: %w", err)
	}
	if !ok {
		return fmt.Errorf("op=sessions.update: id=%s: %w", s.ID, domain.ErrNotFound)
	}
	return nil
}
