// Command server starts the HireCraft HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirecraft/hirecraft-backend/internal/adapter/ai/openai"
	"github.com/hirecraft/hirecraft-backend/internal/adapter/ai/stub"
	httpserver "github.com/hirecraft/hirecraft-backend/internal/adapter/httpserver"
	"github.com/hirecraft/hirecraft-backend/internal/adapter/observability"
	"github.com/hirecraft/hirecraft-backend/internal/adapter/repo/postgres"
	"github.com/hirecraft/hirecraft-backend/internal/adapter/repo/redisrepo"
	"github.com/hirecraft/hirecraft-backend/internal/app"
	"github.com/hirecraft/hirecraft-backend/internal/compose"
	"github.com/hirecraft/hirecraft-backend/internal/config"
	"github.com/hirecraft/hirecraft-backend/internal/domain"
	"github.com/hirecraft/hirecraft-backend/internal/interview"
	"github.com/hirecraft/hirecraft-backend/internal/match"
	"github.com/hirecraft/hirecraft-backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		slog.Error("schema setup failed", slog.Any("error", err))
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer func() { _ = rdb.Close() }()

	// Repositories
	sessions := redisrepo.NewSessionsRepo(rdb, cfg.SessionTTL)
	listings := postgres.NewListingsRepo(pool)
	posts := postgres.NewPostsRepo(pool)

	if cfg.SeedListings {
		if err := listings.Seed(ctx); err != nil {
			slog.Error("listing seed failed", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("listing seed done", slog.Int("count", len(domain.SampleListings())))
	}

	// AI client: deterministic stub or OpenAI-compatible provider.
	var aicl domain.AIClient
	if cfg.UseStubAI || cfg.OpenAIAPIKey == "" {
		slog.Info("using stub AI client")
		aicl = stub.New()
	} else {
		aicl = openai.New(cfg)
	}

	vocab := interview.DefaultVocabulary()
	if cfg.VocabPath != "" {
		vocab, err = interview.LoadVocabulary(cfg.VocabPath)
		if err != nil {
			slog.Error("vocabulary load failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
	extractor := interview.NewExtractor(vocab, aicl)

	engine := match.New()
	engine.Threshold = cfg.MatchThreshold

	// Usecases
	finderSvc := usecase.NewFinderService(sessions, listings, aicl, extractor, engine)
	hiringSvc := usecase.NewHiringService(sessions, posts, aicl, extractor,
		compose.NewComposer(aicl), compose.NewFormatter(aicl))

	dbCheck := func(ctx context.Context) error { return pool.Ping(ctx) }
	redisCheck := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }

	srv := httpserver.NewServer(cfg, hiringSvc, finderSvc, dbCheck, redisCheck)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
