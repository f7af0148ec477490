// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api serves the Storytime site and its JSON API.
//
// Only SESSION_SECRET is required. With nothing else set the server reads
// the embedded catalogue, keeps no database, and leaves read-aloud off.
// DATABASE_URL adds the feedback inbox and the postgres content source,
// REDIS_URL adds the content cache, and NARRATION_ENABLED turns on
// Google Text-to-Speech narration.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/storytime/internal/api"
	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/feedback"
	"github.com/taibuivan/storytime/internal/narration"
	"github.com/taibuivan/storytime/internal/platform/config"
	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/migration"
	pgstore "github.com/taibuivan/storytime/internal/platform/postgres"
	redisstore "github.com/taibuivan/storytime/internal/platform/redis"
	"github.com/taibuivan/storytime/internal/platform/session"
	"github.com/taibuivan/storytime/internal/quiz"
	"github.com/taibuivan/storytime/internal/reading"
	"github.com/taibuivan/storytime/internal/site"
	"github.com/taibuivan/storytime/internal/spelling"
)

const (
	// audioBase is where the narration handler serves clips.
	audioBase = "/api/v1/narration/"

	startupTimeout = 30 * time.Second
)

func main() {
	// ── Logger & configuration ────────────────────────────────────────────
	// The level starts at INFO so configuration errors are already JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	cfg, err := config.Load()
	must(log, err, "load configuration")
	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("content_source", cfg.ContentSource),
		slog.Bool("narration", cfg.NarrationEnabled),
	)

	// appCtx ends on SIGINT or SIGTERM. Connecting gets a shorter deadline
	// so an unreachable dependency fails the deploy instead of hanging it.
	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(appCtx, startupTimeout)
	defer startupCancel()

	var checks []api.Check

	// ── PostgreSQL ────────────────────────────────────────────────────────
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("postgres_closing")
			pool.Close()
		}()

		migrations, err := migration.Source(cfg.MigrationPath)
		must(log, err, "locate migrations")
		must(log, migration.RunUp(cfg.DatabaseURL, migrations, log), "run migrations")

		checks = append(checks, api.Check{Name: "postgres", Ping: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})
	}

	// ── Redis ─────────────────────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("redis_closing")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		checks = append(checks, api.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	// ── Content ───────────────────────────────────────────────────────────
	contentOptions := content.OpenOptions{
		Source: cfg.ContentSource,
		Pool:   pool,
		CMS: content.CMSOptions{
			Endpoint: cfg.CMSEndpoint(),
			Token:    cfg.CMSToken,
			Timeout:  cfg.CMSTimeout,
		},
	}
	if rdb != nil {
		contentOptions.Cache = rdb
		contentOptions.CacheTTL = cfg.ContentCacheTTL
	}
	repository, err := content.Open(contentOptions, log)
	must(log, err, "open content source")

	if cfg.ContentSource == config.SourceCMS {
		if pinger, ok := repository.(content.Pinger); ok {
			checks = append(checks, api.Check{Name: "cms", Ping: pinger.Ping})
		}
	}

	contentService := content.NewService(repository, log)

	// ── Sessions & narration ──────────────────────────────────────────────
	codec, err := session.NewCodec(cfg.SessionSecret, constants.SessionIssuer, cfg.SessionTTL)
	must(log, err, "initialize session codec")

	// narrator stays a nil interface when read-aloud is disabled.
	var narrator reading.Narrator
	var narrationService *narration.Service
	var narrationHandler *narration.Handler
	if cfg.NarrationEnabled {
		synthesizer, err := narration.NewGoogleSynthesizer(startupCtx, cfg.NarrationVoice, cfg.NarrationLanguage)
		must(log, err, "initialize speech synthesizer")
		defer func() {
			if cerr := synthesizer.Close(); cerr != nil {
				log.Error("synthesizer_close_failed", slog.Any("error", cerr))
			}
		}()

		var clips narration.ClipStore = narration.NewMemoryClipStore()
		if rdb != nil {
			clips = narration.NewRedisClipStore(rdb)
		}

		narrationService = narration.NewService(synthesizer, clips, cfg.NarrationClipTTL, log)
		narrationHandler = narration.NewHandler(narrationService)
		narrator = narrationService
	}

	// ── Services & handlers ───────────────────────────────────────────────
	readingService := reading.NewService(contentService, narrator, codec, audioBase, log)
	quizService := quiz.NewService(contentService, codec, log)
	spellingService := spelling.NewService(contentService, codec, time.Now, log)

	var feedbackRepository feedback.Repository = feedback.NewLogRepository(log)
	if pool != nil {
		feedbackRepository = feedback.NewPostgresRepository(pool)
	}
	feedbackService := feedback.NewService(feedbackRepository, log)

	siteHandler, err := site.NewHandler(site.Options{
		BaseURL:  cfg.SiteBaseURL,
		Content:  contentService,
		Reading:  readingService,
		Quiz:     quizService,
		Spelling: spellingService,
		Feedback: feedbackService,
		Logger:   log,
	})
	must(log, err, "parse site templates")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{Checks: checks}, log)

	// ── HTTP ──────────────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Content:   content.NewHandler(contentService),
		Reading:   reading.NewHandler(readingService),
		Quiz:      quiz.NewHandler(quizService),
		Spelling:  spelling.NewHandler(spellingService),
		Narration: narrationHandler,
		Feedback:  feedback.NewHandler(feedbackService),
		Site:      siteHandler,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-appCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("http_server_failed", slog.Any("error", err))
	}
	stop()

	log.Info("http_server_draining", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("http_server_shutdown_failed", slog.Any("error", err))
	}

	// Pending narrations must stop before their clip store closes.
	if narrationService != nil {
		narrationService.Close()
	}

	log.Info("service_stopped")
}

// must aborts startup on err. Once the server runs, errors are returned,
// never fatal.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failed", slog.String("step", step), slog.Any("error", err))
		os.Exit(1)
	}
}
