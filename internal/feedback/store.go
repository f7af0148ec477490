// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feedback

import (
	"context"
	"log/slog"
)

// # Feedback Data Access

// Repository defines where feedback entries end up.
type Repository interface {

	/*
		Create persists a validated entry.

		Parameters:
		  - ctx: context.Context
		  - entry: *Entry (ID and CreatedAt already assigned)

		Returns:
		  - error: Storage failures
	*/
	Create(ctx context.Context, entry *Entry) error
}

// LogRepository writes entries to the structured log. It is used when no
// database is configured.
type LogRepository struct {
	logger *slog.Logger
}

// NewLogRepository constructs a log-backed feedback sink.
func NewLogRepository(logger *slog.Logger) *LogRepository {
	return &LogRepository{logger: logger}
}

// Create logs the entry. The email is left out of the log line.
func (repository *LogRepository) Create(_ context.Context, entry *Entry) error {
	repository.logger.Info("feedback_received",
		slog.String("feedback_id", entry.ID),
		slog.Int("rating", entry.Rating),
		slog.String("message", entry.Message),
		slog.String("page", entry.Page),
		slog.String("story", entry.Story),
		slog.Bool("has_email", entry.Email != ""),
	)
	return nil
}
