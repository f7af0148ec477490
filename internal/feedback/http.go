// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feedback

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/platform/respond"
)

// Handler exposes the feedback form endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new feedback [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the feedback endpoint to the router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/feedback", handler.submit)
}

type submitRequest struct {
	Rating  int    `json:"rating"`
	Message string `json:"message"`
	Email   string `json:"email"`
	Page    string `json:"page"`
	Story   string `json:"story"`
}

type submitResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

/*
POST /api/v1/feedback.

Request:
  - rating: int (1-5, required)
  - message: string (Up to 2000 characters)
  - email, page, story: string (Optional)

Response:
  - 201: {id, message}
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var body submitRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := &Entry{
		Rating:    body.Rating,
		Message:   body.Message,
		Email:     body.Email,
		Page:      body.Page,
		Story:     body.Story,
		UserAgent: request.UserAgent(),
	}
	if err := handler.service.Submit(request.Context(), entry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submitResponse{ID: entry.ID, Message: RatingMessage(entry.Rating)})
}
