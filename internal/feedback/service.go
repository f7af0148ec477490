// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feedback

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	"github.com/taibuivan/storytime/internal/platform/validate"
	"github.com/taibuivan/storytime/pkg/uuid"
)

// # Service Layer

// Service validates and records feedback.
type Service struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a new feedback [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, now: time.Now, logger: logger}
}

/*
Submit validates and stores a feedback entry.

Description: Text fields are trimmed before validation. A rating is
mandatory; the message, email and page are optional.

Parameters:
  - ctx: context.Context
  - entry: *Entry (Rating, Message, Email, Page, Story, UserAgent)

Returns:
  - error: VALIDATION_ERROR listing every failed field, or storage failures
*/
func (service *Service) Submit(ctx context.Context, entry *Entry) error {
	entry.Message = strings.TrimSpace(entry.Message)
	entry.Email = strings.TrimSpace(entry.Email)
	entry.Page = strings.TrimSpace(entry.Page)
	entry.Story = strings.TrimSpace(entry.Story)

	validator := &validate.Validator{}
	if entry.Rating == 0 {
		validator.Custom(FieldRating, true, "Please select a star rating before submitting")
	} else {
		validator.Range(FieldRating, entry.Rating, MinRating, MaxRating)
	}
	validator.MaxLen(FieldMessage, entry.Message, MaxMessageLength)
	validator.MaxLen(FieldPage, entry.Page, MaxPageLength)
	validator.MaxLen(FieldStory, entry.Story, MaxStoryLength)
	if entry.Email != "" {
		validator.Email(FieldEmail, entry.Email)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	entry.ID = uuid.New()
	entry.CreatedAt = service.now().UTC()

	if err := service.repo.Create(ctx, entry); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).Info("feedback_submitted",
		slog.String("feedback_id", entry.ID),
		slog.Int("rating", entry.Rating),
	)
	return nil
}
