// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site renders the public HTML pages of Storytime.

Every page is server-rendered from the embedded templates. Interactive
pieces (reading, quiz, spelling game) are plain forms that carry the signed
session token in a hidden field, so the pages work without JavaScript. The
only script is the optional narration player.

Failures never escape as bare errors: a missing record renders the friendly
not-found page and an unavailable content source renders a page with a
"Try again" link to the same URL.
*/
package site

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/feedback"
	"github.com/taibuivan/storytime/internal/quiz"
	"github.com/taibuivan/storytime/internal/reading"
	"github.com/taibuivan/storytime/internal/spelling"
)

// homeSectionSize is how many stories and series the home page features.
const homeSectionSize = 3

// Options wires a [Handler] to the domain services.
type Options struct {
	BaseURL  string
	Content  *content.Service
	Reading  *reading.Service
	Quiz     *quiz.Service
	Spelling *spelling.Service
	Feedback *feedback.Service
	Logger   *slog.Logger

	// Now is the sitemap clock. Nil means time.Now.
	Now func() time.Time
}

// Handler serves the HTML site.
type Handler struct {
	baseURL   string
	content   *content.Service
	reading   *reading.Service
	quiz      *quiz.Service
	spelling  *spelling.Service
	feedback  *feedback.Service
	templates *templates
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler parses the embedded templates and constructs the site [Handler].
func NewHandler(options Options) (*Handler, error) {
	parsed, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	now := options.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		baseURL:   strings.TrimRight(options.BaseURL, "/"),
		content:   options.Content,
		reading:   options.Reading,
		quiz:      options.Quiz,
		spelling:  options.Spelling,
		feedback:  options.Feedback,
		templates: parsed,
		logger:    options.Logger,
		now:       now,
	}, nil
}

// RegisterRoutes attaches every page to the router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.home)

	router.Get("/stories", handler.stories)
	router.Get("/story/{id}", handler.story)
	router.Post("/story/{id}", handler.story)

	router.Get("/series", handler.seriesList)
	router.Get("/series/{id}", handler.series)
	router.Get("/series/{id}/chapter/{chapterID}", handler.chapter)
	router.Post("/series/{id}/chapter/{chapterID}", handler.chapter)

	router.Get("/story-questions/{id}", handler.quizPage)
	router.Post("/story-questions/{id}", handler.quizPage)
	router.Get("/spelling-game/{id}", handler.spellingPage)
	router.Post("/spelling-game/{id}", handler.spellingPage)

	router.Post("/feedback", handler.submitFeedback)

	for _, page := range staticPages {
		router.Get(page.path, handler.staticPage(page))
	}

	router.Get("/sitemap.xml", handler.sitemap)
	router.Get("/robots.txt", handler.robots)

	router.NotFound(handler.notFound)
}
