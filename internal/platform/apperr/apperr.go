// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the error vocabulary shared by services, the JSON API and
the HTML pages.

Services return an [*AppError] for every failure a reader can see. The JSON
responder renders it as the error envelope; the page renderer picks a
friendly heading from its Code and offers a retry when Retryable is set.
Anything else reaching the edge is logged and shown as INTERNAL_ERROR.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable codes carried in the "code" field of error responses.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidSession     = "INVALID_SESSION"
	CodeUnprocessable      = "UNPROCESSABLE"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeContentUnavailable = "CONTENT_UNAVAILABLE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is a failure with a client-safe message. Cause is logged, never
// rendered.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
	Retryable  bool         `json:"retryable,omitempty"`
}

// FieldError names one request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NotFound reports a missing story, series, chapter or endpoint:
// apperr.NotFound("Story") reads "Story not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// Conflict reports a request the current state forbids, such as reading an
// unpublished chapter.
func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// ValidationError reports malformed input, optionally per field.
func ValidationError(message string, details ...FieldError) *AppError {
	validation := newError(http.StatusBadRequest, CodeValidation, message)
	validation.Details = details
	return validation
}

// InvalidSession reports a quiz, spelling or reading token that is forged,
// expired or of another kind. The reader has to start over.
func InvalidSession(cause error) *AppError {
	invalid := newError(http.StatusBadRequest, CodeInvalidSession, "Session is invalid or has expired. Please start again.")
	invalid.Cause = cause
	return invalid
}

// Unprocessable reports well-formed input that makes no sense for the
// session, such as an option index beyond the question.
func Unprocessable(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, CodeUnprocessable, message)
}

// RateLimited reports a client over its request budget.
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// Internal hides an unexpected failure behind a generic message.
func Internal(cause error) *AppError {
	internal := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	internal.Cause = cause
	return internal
}

// ContentUnavailable reports a content source that failed to answer. The
// same request may succeed later, so it is marked retryable.
func ContentUnavailable(cause error) *AppError {
	unavailable := newError(http.StatusServiceUnavailable, CodeContentUnavailable,
		"Stories could not be loaded right now. Please try again.")
	unavailable.Cause = cause
	unavailable.Retryable = true
	return unavailable
}

// ServiceUnavailable reports a feature switched off in this deployment.
func ServiceUnavailable(message string) *AppError {
	return newError(http.StatusServiceUnavailable, CodeServiceUnavailable, message)
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}
