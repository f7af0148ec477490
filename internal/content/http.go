// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/storytime/internal/catalog"
	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/platform/respond"
	"github.com/taibuivan/storytime/pkg/pagination"
	"github.com/taibuivan/storytime/pkg/slice"
)

// # Handler Implementation

// Handler exposes the catalogue as read-only JSON.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the story and series endpoints to router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/stories", handler.listStories)
	router.Get("/stories/{id}", handler.getStory)

	router.Get("/series", handler.listSeries)
	router.Get("/series/{id}", handler.getSeries)
	router.Get("/series/{id}/chapters/{chapterID}", handler.getChapter)
}

// listPayload is the data block of a listing response.
type listPayload[T any] struct {
	Items  []T                 `json:"items"`
	Facets catalog.FacetValues `json:"facets"`
	Query  catalog.Query       `json:"query"`
}

// # Story Endpoints

/*
GET /api/v1/stories.

Description: Filtered, paginated story summaries in catalog order.

Request:
  - q: string (Search over title, summary and moral lesson)
  - category: string ("all" for any)
  - age_group: string ("all" for any)
  - page: int
  - limit: int

Response:
  - 200: {items: []Story, facets, query} with pagination meta
  - 503: CONTENT_UNAVAILABLE
*/
func (handler *Handler) listStories(writer http.ResponseWriter, request *http.Request) {
	query := catalog.QueryFromRequest(request)
	params := pagination.FromRequest(request)

	listing, err := handler.service.ListStories(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items := slice.Map(catalog.Page(listing.Items, params), (*Story).Summarize)

	respond.Paginated(writer, listPayload[*Story]{
		Items:  items,
		Facets: listing.Facets,
		Query:  query,
	}, pagination.NewMeta(params.Page, params.Limit, listing.Total))
}

/*
GET /api/v1/stories/{id}.

Response:
  - 200: Story (sections, vocabulary and embed URL included)
  - 404: NOT_FOUND
*/
func (handler *Handler) getStory(writer http.ResponseWriter, request *http.Request) {
	story, err := handler.service.GetStory(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, storyDetail{Story: story, EmbedURL: story.EmbedURL()})
}

type storyDetail struct {
	*Story
	EmbedURL string `json:"embed_url,omitempty"`
}

// # Series Endpoints

// GET /api/v1/series. Same parameters as the story listing plus status.
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	query := catalog.QueryFromRequest(request)
	params := pagination.FromRequest(request)

	listing, err := handler.service.ListSeries(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, listPayload[*Series]{
		Items:  catalog.Page(listing.Items, params),
		Facets: listing.Facets,
		Query:  query,
	}, pagination.NewMeta(params.Page, params.Limit, listing.Total))
}

// seriesDetail adds the publication stats shown on the series page.
type seriesDetail struct {
	*Series
	PublishedChapters int `json:"published_chapters"`
	Progress          int `json:"progress"`
}

// GET /api/v1/series/{id}. Chapters are listed without content.
func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.service.GetSeries(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, seriesDetail{
		Series:            series,
		PublishedChapters: series.PublishedChapters(),
		Progress:          series.Progress(),
	})
}

/*
GET /api/v1/series/{id}/chapters/{chapterID}.

Response:
  - 200: ChapterView (coming_soon=true and no sections when unpublished)
  - 404: NOT_FOUND for an unknown series or chapter
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.GetChapter(request.Context(),
		requestutil.ID(request, "id"),
		requestutil.ID(request, "chapterID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}
