// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors as [apperr.AppError] values so the
// Postgres repositories never leak SQL to a reader.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/storytime/internal/platform/apperr"
)

// SQLSTATE codes of the constraints the schema declares.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// Wrap classifies err raised while performing action:
//
//   - no rows: NOT_FOUND
//   - unique violation: CONFLICT
//   - check or foreign key violation: UNPROCESSABLE, naming the constraint
//   - unreachable database or timeout: retryable SERVICE_UNAVAILABLE
//   - anything else: INTERNAL_ERROR carrying action and the cause
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Record")
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case uniqueViolation:
			return apperr.Conflict("Record already exists")
		case checkViolation, foreignKeyViolation:
			rejected := apperr.Unprocessable(fmt.Sprintf("Rejected by constraint %s", pgError.ConstraintName))
			rejected.Cause = fmt.Errorf("%s: %w", action, err)
			return rejected
		}
	}

	var connectError *pgconn.ConnectError
	if errors.As(err, &connectError) || errors.Is(err, context.DeadlineExceeded) {
		unavailable := apperr.ServiceUnavailable("The database is unavailable. Please try again.")
		unavailable.Cause = fmt.Errorf("%s: %w", action, err)
		unavailable.Retryable = true
		return unavailable
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
