// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spelling

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	"github.com/taibuivan/storytime/internal/platform/session"
	"github.com/taibuivan/storytime/pkg/grade"
)

// Stories looks up the story a game is built from.
type Stories interface {
	GetStory(ctx context.Context, id string) (*content.Story, error)
}

// View is the response to every spelling action. The word being guessed is
// left out of the view fields, but the signed token still carries it in
// readable form.
type View struct {
	Token         string    `json:"token"`
	StoryID       string    `json:"story_id"`
	StoryTitle    string    `json:"story_title"`
	Phase         Phase     `json:"phase"`
	Number        int       `json:"number"`
	Total         int       `json:"total"`
	Definition    string    `json:"definition,omitempty"`
	Pronunciation string    `json:"pronunciation,omitempty"`
	Input         string    `json:"input"`
	Attempts      int       `json:"attempts"`
	Score         int       `json:"score"`
	ShowHint      bool      `json:"show_hint"`
	Hint          string    `json:"hint,omitempty"`
	Feedback      string    `json:"feedback,omitempty"`
	FeedbackUntil time.Time `json:"feedback_until,omitzero"`
	Percent       int       `json:"percent,omitempty"`
	Message       string    `json:"message,omitempty"`
}

// # Service Layer

// Service runs spelling games over sealed session tokens.
type Service struct {
	stories Stories
	sealer  session.Sealer
	now     func() time.Time
	logger  *slog.Logger
}

/*
NewService constructs a spelling [Service].

Parameters:
  - stories: Stories
  - sealer: session.Sealer
  - now: func() time.Time (Clock used for feedback deadlines; nil means time.Now)
  - logger: *slog.Logger
*/
func NewService(stories Stories, sealer session.Sealer, now func() time.Time, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{stories: stories, sealer: sealer, now: now, logger: logger}
}

// Start opens a game on the first word. Stories without vocabulary yield
// an unprocessable error.
func (service *Service) Start(ctx context.Context, storyID string) (View, error) {
	story, err := service.stories.GetStory(ctx, storyID)
	if err != nil {
		return View{}, err
	}

	game, err := New(story)
	if err != nil {
		return View{}, translate(err)
	}

	ctxutil.GetLogger(ctx).Debug("spelling_started", slog.String("story_id", story.ID), slog.Int("words", game.Total()))
	return service.render(game)
}

// State resolves any expired feedback and returns the current game.
func (service *Service) State(_ context.Context, token string) (View, error) {
	return service.apply(token, func(*Game) error { return nil })
}

// Submit checks input against the current word.
func (service *Service) Submit(ctx context.Context, token, input string) (View, error) {
	return service.apply(token, func(game *Game) error {
		if err := game.SetInput(input); err != nil {
			return err
		}
		correct, err := game.Submit(service.now())
		if err != nil {
			return err
		}
		ctxutil.GetLogger(ctx).Debug("spelling_submitted",
			slog.String("story_id", game.StoryID),
			slog.Int("word", game.Index+1),
			slog.Bool("correct", correct),
		)
		return nil
	})
}

// ToggleHint shows or hides the hint.
func (service *Service) ToggleHint(_ context.Context, token string) (View, error) {
	return service.apply(token, (*Game).ToggleHint)
}

// Skip moves past the current word.
func (service *Service) Skip(_ context.Context, token string) (View, error) {
	return service.apply(token, (*Game).Skip)
}

// Reset restarts the game. It is allowed during feedback.
func (service *Service) Reset(_ context.Context, token string) (View, error) {
	return service.apply(token, func(game *Game) error {
		game.Reset()
		return nil
	})
}

// # Internals

func (service *Service) apply(token string, action func(*Game) error) (View, error) {
	var game Game
	if err := service.sealer.Decode(token, constants.SessionKindSpelling, &game); err != nil {
		return View{}, err
	}
	if len(game.Words) == 0 {
		return View{}, apperr.InvalidSession(ErrNoWords)
	}

	game.Tick(service.now())

	if err := action(&game); err != nil {
		return View{}, translate(err)
	}
	return service.render(game)
}

func (service *Service) render(game Game) (View, error) {
	token, err := service.sealer.Encode(constants.SessionKindSpelling, game)
	if err != nil {
		return View{}, apperr.Internal(err)
	}

	view := View{
		Token:         token,
		StoryID:       game.StoryID,
		StoryTitle:    game.StoryTitle,
		Phase:         game.Phase,
		Number:        game.Index + 1,
		Total:         game.Total(),
		Input:         game.Input,
		Attempts:      game.Attempts,
		Score:         game.Score,
		ShowHint:      game.ShowHint,
		Hint:          game.Hint(),
		Feedback:      game.Feedback(),
		FeedbackUntil: game.FeedbackUntil,
	}

	if word := game.Word(); word != nil {
		view.Definition = word.Definition
		view.Pronunciation = word.Pronunciation
	}
	if game.Phase == PhaseCompleted {
		view.Number = game.Total()
		view.Percent = grade.Percent(game.Score, game.Total())
		view.Message = game.Message()
	}

	return view, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, ErrNoWords):
		return apperr.Unprocessable("This story doesn't have word helpers for the spelling game")
	case errors.Is(err, ErrEmptyInput):
		return apperr.ValidationError("Type a word first", apperr.FieldError{Field: "input", Message: "is required"})
	case errors.Is(err, ErrFeedbackPending):
		return apperr.Conflict("Wait for the feedback to finish")
	case errors.Is(err, ErrCompleted):
		return apperr.Conflict("Game is already completed")
	}
	return err
}
