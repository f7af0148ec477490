// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	"github.com/taibuivan/storytime/internal/platform/respond"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the page templates rendered inside layout.html. partials.html
// is shared by all of them.
var pageNames = []string{
	"home", "stories", "story", "series_list", "series", "chapter",
	"quiz", "spelling", "static", "feedback", "error",
}

// templates holds one parsed set per page, each combined with the layout.
type templates struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"storyPath":    storyPath,
	"seriesPath":   seriesPath,
	"chapterPath":  chapterPath,
	"quizPath":     quizPath,
	"spellingPath": spellingPath,
	"statusLabel":  func(status content.Status) string { return status.Label() },
	"add":          func(a, b int) int { return a + b },
	"selected": func(current, value string) bool {
		return current == value
	},
	"is": func(pointer *int, value int) bool {
		return pointer != nil && *pointer == value
	},
	"truthy": func(pointer *bool) bool {
		return pointer != nil && *pointer
	},
	"paragraphs": func(text string) []string {
		var out []string
		for _, paragraph := range strings.Split(text, "\n\n") {
			if paragraph = strings.TrimSpace(paragraph); paragraph != "" {
				out = append(out, paragraph)
			}
		}
		return out
	},
}

func loadTemplates() (*templates, error) {
	parsed := &templates{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		page, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("site: failed to parse template %s: %w", name, err)
		}
		parsed.pages[name] = page
	}
	return parsed, nil
}

// Page is the data every template receives.
type Page struct {
	Meta   Meta
	Crumbs []Crumb
	Path   string

	// Refresh, when set, reloads the page after the given URL and delay.
	Refresh *Refresh

	Data any
}

// Refresh is a <meta http-equiv="refresh"> instruction.
type Refresh struct {
	Seconds int
	URL     string
}

// render executes name into a buffer first so a template failure never
// leaves a half-written page behind.
func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, name string, page Page) {
	tmpl, ok := handler.templates.pages[name]
	if !ok {
		http.Error(writer, "template not found", http.StatusInternalServerError)
		return
	}

	if page.Meta.Title == "" {
		page.Meta.Title = siteTitle
	}
	if page.Meta.Description == "" {
		page.Meta.Description = siteDescription
	}
	if page.Meta.Keywords == "" {
		page.Meta.Keywords = siteKeywords
	}
	if page.Meta.Canonical == "" {
		page.Meta.Canonical = handler.baseURL + request.URL.Path
	}
	if len(page.Crumbs) > 0 {
		page.Meta.StructuredData = append(page.Meta.StructuredData, jsonLD(BreadcrumbSchema(handler.baseURL, page.Crumbs))...)
	}
	page.Path = request.URL.Path

	var buffer bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buffer, "layout.html", page); err != nil {
		ctxutil.GetLogger(request.Context()).Error("template_render_failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// errorPage is the data of error.html.
type errorPage struct {
	Status    int
	Heading   string
	Message   string
	Retry     string
	BackHref  string
	BackLabel string
}

// fail renders err as a friendly page. back is the listing a reader is sent
// to when the record does not exist.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, err error, back Crumb) {
	appError := respond.Classify(request, err)

	page := errorPage{
		Status:    appError.HTTPStatus,
		Heading:   "Something went wrong",
		Message:   appError.Message,
		BackHref:  back.Href,
		BackLabel: back.Label,
	}

	switch {
	case appError.Code == "NOT_FOUND":
		page.Heading = "Oops! Page Not Found"
		page.Message = "Looks like this page went on its own adventure! Don't worry, we'll help you find your way back to the magical stories."
	case appError.Retryable || appError.HTTPStatus >= http.StatusInternalServerError:
		page.Message = "We couldn't load the stories right now. Please try again in a moment."
		page.Retry = request.URL.RequestURI()
	case appError.Code == "INVALID_SESSION":
		page.Heading = "Let's start again"
		page.Retry = request.URL.Path
	}

	handler.render(writer, request, appError.HTTPStatus, "error", Page{
		Meta: Meta{Title: page.Heading + " | " + siteName},
		Data: page,
	})
}

func (handler *Handler) notFound(writer http.ResponseWriter, request *http.Request) {
	handler.fail(writer, request, apperr.NotFound("Page"), Crumb{Label: "Browse Stories", Href: "/stories"})
}
