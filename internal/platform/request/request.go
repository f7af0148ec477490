// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil reads path parameters and JSON bodies for the API handlers.
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/storytime/internal/platform/validate"
)

// maxBodyBytes caps JSON bodies. The largest legitimate one is a feedback
// message or a session token.
const maxBodyBytes = 64 << 10

// DecodeJSON decodes one JSON value from the body into target. Oversized,
// malformed or trailing-garbage bodies all yield [validate.ErrInvalidJSON].
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	if decoder.More() {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns the named route parameter, typically a story, series or
// chapter id.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
