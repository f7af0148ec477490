// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes the JSON envelopes of the /api/v1 surface.
//
//	{"data": ...}                               success
//	{"data": [...], "meta": {"page": ...}}      paginated listing
//	{"error": "...", "code": "...", ...}        failure
//
// The HTML site shares [Classify] so a failure is logged the same way
// whichever surface served it.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	"github.com/taibuivan/storytime/pkg/pagination"
)

// SuccessEnvelope wraps a single resource or an unpaginated list.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope wraps one page of a listing.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the body of every failed API call. Retryable is set for
// transient content source failures.
type ErrorEnvelope struct {
	Error     string              `json:"error"`
	Code      string              `json:"code"`
	Details   []apperr.FieldError `json:"details,omitempty"`
	Retryable bool                `json:"retryable,omitempty"`
}

// JSON encodes payload with status.
func JSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}

func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created answers a POST that started a session or stored feedback.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Accepted answers a narration request whose audio is still being made.
func Accepted(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusAccepted, SuccessEnvelope{Data: data})
}

func Paginated(writer http.ResponseWriter, data any, meta pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: meta})
}

// Error renders err as an [ErrorEnvelope].
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := Classify(request, err)
	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:     appError.Message,
		Code:      appError.Code,
		Details:   appError.Details,
		Retryable: appError.Retryable,
	})
}

// Classify resolves err to an [*apperr.AppError]. Errors outside the
// vocabulary become INTERNAL_ERROR. Every 5xx is logged with its cause.
func Classify(request *http.Request, err error) *apperr.AppError {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "request_failed",
			slog.String("code", appError.Code),
			slog.Bool("retryable", appError.Retryable),
			slog.Any("cause", appError.Cause),
		)
	}
	return appError
}
