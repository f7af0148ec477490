// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spelling

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/platform/respond"
	"github.com/taibuivan/storytime/internal/platform/validate"
)

// Handler exposes spelling games over JSON.
type Handler struct {
	service *Service
}

// NewHandler constructs a new spelling [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the spelling endpoints, mounted under /spelling.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/{storyID}", handler.start)
	router.Post("/state", handler.step(handler.service.State))
	router.Post("/submit", handler.submit)
	router.Post("/hint", handler.step(handler.service.ToggleHint))
	router.Post("/skip", handler.step(handler.service.Skip))
	router.Post("/reset", handler.step(handler.service.Reset))

	return router
}

type actionRequest struct {
	Token string `json:"token"`
	Input string `json:"input"`
}

func (handler *Handler) start(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.Start(request.Context(), requestutil.ID(request, "storyID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, view)
}

/*
POST /api/v1/spelling/submit.

Request:
  - token: string
  - input: string (Trimmed and compared case-insensitively)

Response:
  - 200: View (phase correct or incorrect)
  - 400: VALIDATION_ERROR | INVALID_SESSION
  - 409: CONFLICT (Feedback still showing, or game completed)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var body actionRequest
	if !decode(writer, request, &body) {
		return
	}

	view, err := handler.service.Submit(request.Context(), body.Token, body.Input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) step(action func(ctx context.Context, token string) (View, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var body actionRequest
		if !decode(writer, request, &body) {
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

func decode(writer http.ResponseWriter, request *http.Request, body *actionRequest) bool {
	if err := requestutil.DecodeJSON(writer, request, body); err != nil {
		respond.Error(writer, request, err)
		return false
	}
	if err := (&validate.Validator{}).Required("token", body.Token).Err(); err != nil {
		respond.Error(writer, request, err)
		return false
	}
	return true
}
