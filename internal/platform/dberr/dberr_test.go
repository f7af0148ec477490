// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      string
		status    int
		retryable bool
	}{
		{"no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound, 404, false},
		{"unique", &pgconn.PgError{Code: "23505"}, apperr.CodeConflict, 409, false},
		{"rating check", &pgconn.PgError{Code: "23514", ConstraintName: "entry_rating_check"}, apperr.CodeUnprocessable, 422, false},
		{"missing story", &pgconn.PgError{Code: "23503"}, apperr.CodeUnprocessable, 422, false},
		{"timeout", fmt.Errorf("exec: %w", context.DeadlineExceeded), apperr.CodeServiceUnavailable, 503, true},
		{"unknown", errors.New("connection reset"), apperr.CodeInternal, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.As(dberr.Wrap(tt.err, "create feedback"))
			require.NotNil(t, appError)
			assert.Equal(t, tt.code, appError.Code)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Equal(t, tt.retryable, appError.Retryable)
		})
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := dberr.Wrap(cause, "insert_story")

	assert.ErrorIs(t, wrapped, cause)
	assert.ErrorContains(t, apperr.As(wrapped).Cause, "insert_story")
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}
