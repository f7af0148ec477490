// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/platform/respond"
	"github.com/taibuivan/storytime/internal/platform/validate"
)

// Handler exposes reading sessions over JSON.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reading [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the reading endpoints, mounted under /reading.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/stories/{id}", handler.startStory)
	router.Post("/series/{id}/chapters/{chapterID}", handler.startChapter)

	router.Post("/goto", handler.goTo)
	router.Post("/next", handler.step(handler.service.Next))
	router.Post("/previous", handler.step(handler.service.Previous))
	router.Post("/narration", handler.step(handler.service.ToggleNarration))
	router.Post("/narration/complete", handler.complete)

	return router
}

// actionRequest is the body shared by every action endpoint.
type actionRequest struct {
	Token   string `json:"token"`
	Section int    `json:"section"`
	Handle  string `json:"handle"`
}

func (body actionRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required("token", body.Token)
	return validator.Err()
}

func (handler *Handler) startStory(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.StartStory(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

func (handler *Handler) startChapter(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.StartChapter(request.Context(),
		requestutil.ID(request, "id"),
		requestutil.ID(request, "chapterID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

/*
POST /api/v1/reading/goto.

Request:
  - token: string
  - section: int (Clamped to the valid range)

Response:
  - 200: View
  - 400: INVALID_SESSION
*/
func (handler *Handler) goTo(writer http.ResponseWriter, request *http.Request) {
	var body actionRequest
	if !handler.decode(writer, request, &body) {
		return
	}

	view, err := handler.service.GoTo(request.Context(), body.Token, body.Section)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

// step adapts a token-only service action into a handler.
func (handler *Handler) step(action func(ctx context.Context, token string) (View, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var body actionRequest
		if !handler.decode(writer, request, &body) {
			return
		}

		view, err := action(request.Context(), body.Token)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, view)
	}
}

// POST /api/v1/reading/narration/complete. Stale handles are accepted and ignored.
func (handler *Handler) complete(writer http.ResponseWriter, request *http.Request) {
	var body actionRequest
	if !handler.decode(writer, request, &body) {
		return
	}

	view, err := handler.service.Complete(request.Context(), body.Token, Handle(body.Handle))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) decode(writer http.ResponseWriter, request *http.Request, body *actionRequest) bool {
	if err := requestutil.DecodeJSON(writer, request, body); err != nil {
		respond.Error(writer, request, err)
		return false
	}
	if err := body.validate(); err != nil {
		respond.Error(writer, request, err)
		return false
	}
	return true
}
