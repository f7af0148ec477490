// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	"github.com/taibuivan/storytime/internal/platform/session"
	"github.com/taibuivan/storytime/pkg/grade"
)

// Stories looks up the story a quiz is built from.
type Stories interface {
	GetStory(ctx context.Context, id string) (*content.Story, error)
}

// QuestionView is a question as shown to the player. The correct index and
// the explanation are only filled in once the answer is revealed.
type QuestionView struct {
	Number      int      `json:"number"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Selected    *int     `json:"selected,omitempty"`
	Correct     *int     `json:"correct,omitempty"`
	IsCorrect   *bool    `json:"is_correct,omitempty"`
	Result      string   `json:"result,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// View is the response to every quiz action.
type View struct {
	Token      string        `json:"token"`
	StoryID    string        `json:"story_id"`
	StoryTitle string        `json:"story_title"`
	Total      int           `json:"total"`
	Score      int           `json:"score"`
	Completed  bool          `json:"completed"`
	Question   *QuestionView `json:"question,omitempty"`
	Percent    int           `json:"percent,omitempty"`
	Message    string        `json:"message,omitempty"`
}

// # Service Layer

// Service runs quizzes over sealed session tokens.
type Service struct {
	stories Stories
	sealer  session.Sealer
	logger  *slog.Logger
}

// NewService constructs a quiz [Service].
func NewService(stories Stories, sealer session.Sealer, logger *slog.Logger) *Service {
	return &Service{stories: stories, sealer: sealer, logger: logger}
}

/*
Start builds a new quiz for a story.

Parameters:
  - ctx: context.Context
  - storyID: string

Returns:
  - View: The first question
  - error: NOT_FOUND if the story does not exist
*/
func (service *Service) Start(ctx context.Context, storyID string) (View, error) {
	story, err := service.stories.GetStory(ctx, storyID)
	if err != nil {
		return View{}, err
	}

	state := New(story)
	ctxutil.GetLogger(ctx).Debug("quiz_started", slog.String("story_id", story.ID))
	return service.render(state)
}

// Answer selects option for the current question.
func (service *Service) Answer(ctx context.Context, token string, option int) (View, error) {
	return service.apply(token, func(state *Quiz) error {
		changed, err := state.SelectAnswer(option)
		if err != nil {
			return err
		}
		if changed {
			ctxutil.GetLogger(ctx).Debug("quiz_answered",
				slog.String("story_id", state.StoryID),
				slog.Int("question", state.Index+1),
				slog.Bool("correct", state.AnsweredCorrectly()),
			)
		}
		return nil
	})
}

// Advance moves past a revealed question.
func (service *Service) Advance(ctx context.Context, token string) (View, error) {
	return service.apply(token, func(state *Quiz) error {
		if err := state.Advance(); err != nil {
			return err
		}
		if state.Completed {
			ctxutil.GetLogger(ctx).Info("quiz_completed",
				slog.String("story_id", state.StoryID),
				slog.Int("score", state.Score),
				slog.Int("total", state.Total()),
			)
		}
		return nil
	})
}

// Reset restarts the quiz from the first question.
func (service *Service) Reset(_ context.Context, token string) (View, error) {
	return service.apply(token, func(state *Quiz) error {
		state.Reset()
		return nil
	})
}

// # Internals

func (service *Service) apply(token string, action func(*Quiz) error) (View, error) {
	var state Quiz
	if err := service.sealer.Decode(token, constants.SessionKindQuiz, &state); err != nil {
		return View{}, err
	}
	if len(state.Questions) == 0 {
		return View{}, apperr.InvalidSession(errors.New("quiz has no questions"))
	}

	if err := action(&state); err != nil {
		return View{}, translate(err)
	}
	return service.render(state)
}

func (service *Service) render(state Quiz) (View, error) {
	token, err := service.sealer.Encode(constants.SessionKindQuiz, state)
	if err != nil {
		return View{}, apperr.Internal(err)
	}

	view := View{
		Token:      token,
		StoryID:    state.StoryID,
		StoryTitle: state.StoryTitle,
		Total:      state.Total(),
		Score:      state.Score,
		Completed:  state.Completed,
	}

	if state.Completed {
		view.Percent = grade.Percent(state.Score, state.Total())
		view.Message = state.Message()
		return view, nil
	}

	current := state.Current()
	question := &QuestionView{
		Number:   state.Index + 1,
		Prompt:   current.Prompt,
		Options:  current.Options,
		Selected: state.Selected,
	}
	if state.Revealed {
		correct := state.AnsweredCorrectly()
		question.Correct = &current.Correct
		question.IsCorrect = &correct
		question.Explanation = current.Explanation
		question.Result = "Not quite right!"
		if correct {
			question.Result = "Correct!"
		}
	}
	view.Question = question

	return view, nil
}

// translate maps engine errors onto HTTP-facing application errors.
func translate(err error) error {
	switch {
	case errors.Is(err, ErrOptionOutOfRange):
		return apperr.ValidationError("Option is out of range", apperr.FieldError{Field: "option", Message: "must be one of the listed options"})
	case errors.Is(err, ErrNotRevealed):
		return apperr.Conflict("Choose an answer first")
	case errors.Is(err, ErrCompleted):
		return apperr.Conflict("Quiz is already completed")
	}
	return err
}
