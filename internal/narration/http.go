// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narration

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/platform/respond"
	"github.com/taibuivan/storytime/internal/reading"
)

// Handler serves synthesized clips.
type Handler struct {
	service *Service
}

// NewHandler constructs a new narration [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the clip endpoint to the router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/narration/{handle}", handler.clip)
}

type statusPayload struct {
	Handle string `json:"handle"`
	Status Status `json:"status"`
}

/*
GET /api/v1/narration/{handle}.

Response:
  - 200: audio/mpeg clip
  - 202: {"status": "pending"} while synthesis runs
  - 404: NOT_FOUND for unknown, failed or cancelled handles
*/
func (handler *Handler) clip(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	handle := reading.Handle(requestutil.ID(request, "handle"))

	switch handler.service.Status(ctx, handle) {
	case StatusPending:
		respond.Accepted(writer, statusPayload{Handle: string(handle), Status: StatusPending})
		return
	case StatusUnknown:
		respond.Error(writer, request, apperr.NotFound("Narration"))
		return
	}

	clip, err := handler.service.Clip(ctx, handle)
	if err != nil {
		ctxutil.GetLogger(ctx).Debug("narration_clip_vanished", slog.String("handle", string(handle)))
		respond.Error(writer, request, apperr.NotFound("Narration"))
		return
	}

	writer.Header().Set("Content-Type", "audio/mpeg")
	writer.Header().Set("Content-Length", strconv.Itoa(len(clip)))
	writer.Header().Set("Cache-Control", "private, max-age=600")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(clip)
}
