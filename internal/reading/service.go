// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
	"github.com/taibuivan/storytime/internal/platform/session"
)

// Content is the part of the catalogue a reading session needs.
type Content interface {
	GetStory(ctx context.Context, id string) (*content.Story, error)
	GetChapter(ctx context.Context, seriesID, chapterID string) (content.ChapterView, error)
}

// View is the response to every reading action: the new token plus what the
// page needs to render the current section.
type View struct {
	Token              string              `json:"token"`
	Title              string              `json:"title"`
	Target             Target              `json:"target"`
	Section            int                 `json:"section"`
	Sections           int                 `json:"sections"`
	Current            *content.Section    `json:"current,omitempty"`
	HasPrevious        bool                `json:"has_previous"`
	HasNext            bool                `json:"has_next"`
	Narration          NarrationState      `json:"narration"`
	NarrationAvailable bool                `json:"narration_available"`
	Handle             Handle              `json:"handle,omitempty"`
	AudioURL           string              `json:"audio_url,omitempty"`
	PreviousChapter    *content.ChapterRef `json:"previous_chapter,omitempty"`
	NextChapter        *content.ChapterRef `json:"next_chapter,omitempty"`
}

// document is the resolved content behind a [Target].
type document struct {
	title    string
	sections []content.Section
	text     string
	previous *content.ChapterRef
	next     *content.ChapterRef
}

// # Service Layer

// Service runs reading sessions for stories and published chapters.
type Service struct {
	content   Content
	narrator  Narrator
	sealer    session.Sealer
	audioBase string
	logger    *slog.Logger
}

/*
NewService constructs a reading [Service].

Parameters:
  - source: Content (Story and chapter lookups)
  - narrator: Narrator (nil disables read-aloud)
  - sealer: session.Sealer (Token codec)
  - audioBase: string (URL prefix the narration clips are served under)
  - logger: *slog.Logger
*/
func NewService(source Content, narrator Narrator, sealer session.Sealer, audioBase string, logger *slog.Logger) *Service {
	return &Service{
		content:   source,
		narrator:  narrator,
		sealer:    sealer,
		audioBase: audioBase,
		logger:    logger,
	}
}

// NarrationAvailable reports whether a narrator is configured.
func (service *Service) NarrationAvailable() bool {
	return service.narrator != nil
}

// StartStory opens a session on the first section of a story.
func (service *Service) StartStory(ctx context.Context, storyID string) (View, error) {
	return service.start(ctx, Target{StoryID: storyID})
}

// StartChapter opens a session on a published chapter. Unpublished
// chapters cannot be read and yield a conflict.
func (service *Service) StartChapter(ctx context.Context, seriesID, chapterID string) (View, error) {
	return service.start(ctx, Target{SeriesID: seriesID, ChapterID: chapterID})
}

func (service *Service) start(ctx context.Context, target Target) (View, error) {
	doc, err := service.resolve(ctx, target)
	if err != nil {
		return View{}, err
	}

	state := NewSession(target, len(doc.sections))
	return service.render(state, doc)
}

// GoTo jumps to section index (clamped).
func (service *Service) GoTo(ctx context.Context, token string, index int) (View, error) {
	return service.apply(ctx, token, func(state *Session, _ document) error {
		state.GoTo(index)
		return nil
	})
}

// Next moves one section forward.
func (service *Service) Next(ctx context.Context, token string) (View, error) {
	return service.apply(ctx, token, func(state *Session, _ document) error {
		state.Next()
		return nil
	})
}

// Previous moves one section back.
func (service *Service) Previous(ctx context.Context, token string) (View, error) {
	return service.apply(ctx, token, func(state *Session, _ document) error {
		state.Previous()
		return nil
	})
}

/*
ToggleNarration starts or stops read-aloud for the whole text.

Description: A failed cancel is logged and the session still ends idle. A
failed start leaves the session idle and reports the narrator as unavailable.
*/
func (service *Service) ToggleNarration(ctx context.Context, token string) (View, error) {
	return service.apply(ctx, token, func(state *Session, doc document) error {
		wasSpeaking := state.Speaking()
		handle := state.Handle

		err := state.ToggleNarration(ctx, service.narrator, doc.text)
		switch {
		case err == nil:
		case errors.Is(err, ErrNarrationUnavailable):
			ctxutil.GetLogger(ctx).Warn("narration_start_failed", slog.Any("error", err))
			return apperr.ServiceUnavailable("Narration is unavailable right now")
		case wasSpeaking:
			ctxutil.GetLogger(ctx).Warn("narration_cancel_failed",
				slog.String("handle", string(handle)),
				slog.Any("error", err),
			)
		}
		return nil
	})
}

// Complete handles the client's report that the narration for handle ended.
func (service *Service) Complete(ctx context.Context, token string, handle Handle) (View, error) {
	return service.apply(ctx, token, func(state *Session, _ document) error {
		if !state.Finished(handle) {
			ctxutil.GetLogger(ctx).Debug("narration_completion_ignored", slog.String("handle", string(handle)))
		}
		return nil
	})
}

// # Internals

// apply decodes token, refreshes the section count from the current
// content, runs action and re-seals the result.
func (service *Service) apply(ctx context.Context, token string, action func(*Session, document) error) (View, error) {
	var state Session
	if err := service.sealer.Decode(token, constants.SessionKindReading, &state); err != nil {
		return View{}, err
	}

	doc, err := service.resolve(ctx, state.Target)
	if err != nil {
		return View{}, err
	}

	state.Sections = len(doc.sections)
	state.Section = state.clamp(state.Section)

	if err := action(&state, doc); err != nil {
		return View{}, err
	}

	return service.render(state, doc)
}

func (service *Service) resolve(ctx context.Context, target Target) (document, error) {
	if !target.IsChapter() {
		story, err := service.content.GetStory(ctx, target.StoryID)
		if err != nil {
			return document{}, err
		}
		return document{title: story.Title, sections: story.Sections, text: story.Text()}, nil
	}

	view, err := service.content.GetChapter(ctx, target.SeriesID, target.ChapterID)
	if err != nil {
		return document{}, err
	}
	if view.ComingSoon {
		return document{}, apperr.Conflict("Chapter is coming soon")
	}

	return document{
		title:    view.Chapter.Title,
		sections: view.Chapter.Sections,
		text:     view.Chapter.Text(),
		previous: view.Previous,
		next:     view.Next,
	}, nil
}

func (service *Service) render(state Session, doc document) (View, error) {
	token, err := service.sealer.Encode(constants.SessionKindReading, state)
	if err != nil {
		return View{}, apperr.Internal(err)
	}

	view := View{
		Token:              token,
		Title:              doc.title,
		Target:             state.Target,
		Section:            state.Section,
		Sections:           state.Sections,
		HasPrevious:        state.HasPrevious(),
		HasNext:            state.HasNext(),
		Narration:          state.Narration,
		NarrationAvailable: service.NarrationAvailable(),
		Handle:             state.Handle,
		PreviousChapter:    doc.previous,
		NextChapter:        doc.next,
	}

	if state.Section < len(doc.sections) {
		current := doc.sections[state.Section]
		view.Current = &current
	}
	if state.Handle != "" {
		view.AudioURL = service.audioBase + string(state.Handle)
	}

	return view, nil
}
