package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hirecraft/hirecraft-backend/internal/config"
	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Hiring     *usecase.HiringService
	Finder     *usecase.FinderService
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, hiring *usecase.HiringService, finder *usecase.FinderService, dbCheck, redisCheck func(context.Context) error) *Server {
	return &Server{Cfg: cfg, Hiring: hiring, Finder: finder, DBCheck: dbCheck, RedisCheck: redisCheck}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// decodeValid decodes a JSON body into v and runs struct validation.
func decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
		return false
	}
	if err := getValidator().Struct(v); err != nil {
		verrs := map[string]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				verrs[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		writeError(w, r, fmt.Errorf("%w: validation failed", domain.ErrInvalidArgument), verrs)
		return false
	}
	return true
}

// HiringStartHandler opens a hiring session.
func (s *Server) HiringStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.Hiring.StartSession(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"session_id": sess.ID,
			"response":   sess.Messages[0].Content,
		})
	}
}

// HiringMessageHandler processes one hiring-manager turn.
func (s *Server) HiringMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id" validate:"required"`
			Message   string `json:"message" validate:"required,max=4000"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		turn, err := s.Hiring.ProcessMessage(r.Context(), req.SessionID, req.Message)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"response":    turn.Reply,
			"job_post":    turn.Preview,
			"is_complete": turn.Complete,
		})
	}
}

// HiringPreviewHandler returns the current draft for a session.
func (s *Server) HiringPreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument), nil)
			return
		}
		post, complete, err := s.Hiring.Preview(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"session_id":  id,
			"job_post":    post,
			"is_complete": complete,
		})
	}
}

// HiringRegenerateHandler rewrites one section of a drafted post.
func (s *Server) HiringRegenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id" validate:"required"`
			Section   string `json:"section" validate:"required,oneof=summary culture_and_team responsibilities requirements skills hashtags keywords"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		post, err := s.Hiring.RegenerateSection(r.Context(), req.SessionID, req.Section)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"job_post": post})
	}
}

// HiringSaveHandler persists the drafted post.
func (s *Server) HiringSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id" validate:"required"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		id, err := s.Hiring.SavePost(r.Context(), req.SessionID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"post_id": id})
	}
}

// FinderStartHandler opens a finder session.
func (s *Server) FinderStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.Finder.StartSession(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"session_id": sess.ID,
			"message":    sess.Messages[0].Content,
		})
	}
}

// FinderMessageHandler processes one seeker turn.
func (s *Server) FinderMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id" validate:"required"`
			Message   string `json:"message" validate:"required,max=4000"`
		}
		if !decodeValid(w, r, &req) {
			return
		}
		turn, err := s.Finder.ProcessMessage(r.Context(), req.SessionID, req.Message)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"next_question":       turn.Reply,
			"profile":             turn.Profile,
			"recommendations":     turn.Recommendations,
			"is_profile_complete": turn.Complete,
		})
	}
}

// FinderRecommendationsHandler returns the scored matches for a completed
// session.
func (s *Server) FinderRecommendationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, r, fmt.Errorf("%w: id missing", domain.ErrInvalidArgument), nil)
			return
		}
		recs, err := s.Finder.Recommendations(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if recs == nil {
			recs = []domain.Recommendation{}
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

// FinderSearchHandler filters the listing set by the posted criteria.
func (s *Server) FinderSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.FilterCriteria
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument), nil)
			return
		}
		listings, err := s.Finder.SearchListings(r.Context(), req)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"listings": listings, "count": len(listings)})
	}
}

// FinderFiltersHandler reports the distinct filterable values.
func (s *Server) FinderFiltersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.Finder.ListingFilterOptions(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, opts)
	}
}

// ReadyzHandler probes the session store and listing store.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 2)
		if s.DBCheck != nil {
			if err := s.DBCheck(ctx); err != nil {
				checks = append(checks, check{Name: "db", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "db", OK: true})
			}
		}
		if s.RedisCheck != nil {
			if err := s.RedisCheck(ctx); err != nil {
				checks = append(checks, check{Name: "redis", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "redis", OK: true})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
