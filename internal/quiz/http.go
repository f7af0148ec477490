// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package quiz

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/platform/respond"
	"github.com/taibuivan/storytime/internal/platform/validate"
)

// Handler exposes quizzes over JSON.
type Handler struct {
	service *Service
}

// NewHandler constructs a new quiz [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the quiz endpoints, mounted under /quizzes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/{storyID}", handler.start)
	router.Post("/answer", handler.answer)
	router.Post("/advance", handler.step(handler.service.Advance))
	router.Post("/reset", handler.step(handler.service.Reset))

	return router
}

type actionRequest struct {
	Token  string `json:"token"`
	Option *int   `json:"option"`
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
POST /api/v1/quizzes/answer.

Request:
  - token: string
  - option: int (Index into the current question's options)

Response:
  - 200: View (Answer revealed, or unchanged if it already was)
  - 400: VALIDATION_ERROR | INVALID_SESSION
*/
func (handler *Handler) answer(writer http.ResponseWriter, request *http.Request) {
	var body actionRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("token", body.Token)
	validator.Custom("option", body.Option == nil, "is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Answer(request.Context(), body.Token, *body.Option)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) step(action func(ctx context.Context, token string) (View, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var body actionRequest
		if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
			respond.Error(writer, request, err)
			return
		}
		if err := (&validate.Validator{}).Required("token", body.Token).Err(); err != nil {
			respond.Error(writer, request, err)
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
