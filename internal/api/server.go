// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the one chi router that serves Storytime.

	/health, /ready          probes
	/api/v1/...              JSON API (stories, series, reading, quizzes,
	                         spelling, narration, feedback)
	everything else          HTML site, sitemap.xml and robots.txt

Unknown paths under /api/v1 answer with the JSON error envelope; unknown
paths elsewhere get the site's 404 page.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/feedback"
	"github.com/taibuivan/storytime/internal/narration"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/config"
	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/middleware"
	"github.com/taibuivan/storytime/internal/platform/respond"
	"github.com/taibuivan/storytime/internal/quiz"
	"github.com/taibuivan/storytime/internal/reading"
	"github.com/taibuivan/storytime/internal/site"
	"github.com/taibuivan/storytime/internal/spelling"
)

// Server owns the router and the [http.Server] listening on SERVER_PORT.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers are the route sets mounted by [NewServer]. Only Narration may be nil.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	// Content serves the story and series catalogue.
	Content *content.Handler

	// Reading runs the section-by-section reading sessions.
	Reading *reading.Handler

	// Quiz runs the four-question comprehension quiz.
	Quiz *quiz.Handler

	// Spelling runs the vocabulary spelling game.
	Spelling *spelling.Handler

	// Narration serves synthesized clips. Nil when read-aloud is disabled.
	Narration *narration.Handler

	// Feedback accepts star ratings and comments.
	Feedback *feedback.Handler

	// Site renders the public HTML pages.
	Site *site.Handler
}

// NewServer builds the router. ctx bounds the rate limiter's sweeper and
// should live as long as the process.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		// Set before the site registers its HTML fallback so API clients keep getting JSON.
		api.NotFound(func(writer http.ResponseWriter, request *http.Request) {
			respond.Error(writer, request, apperr.NotFound("Endpoint"))
		})

		api.Group(func(catalog chi.Router) {
			catalog.Use(middleware.CacheControl(constants.ContentMaxAge))
			h.Content.RegisterRoutes(catalog)
		})

		api.Mount("/reading", h.Reading.Routes())
		api.Mount("/quizzes", h.Quiz.Routes())
		api.Mount("/spelling", h.Spelling.Routes())

		if h.Narration != nil {
			h.Narration.RegisterRoutes(api)
		}
		h.Feedback.RegisterRoutes(api)
	})

	h.Site.RegisterRoutes(r)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until [Server.Shutdown] or a listener failure.
func (s *Server) ListenAndServe() error {
	s.log.Info("http_server_listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
