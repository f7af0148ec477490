// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reading tracks a reader's position in a story or chapter and the
read-aloud narration that accompanies it.

A [Session] is a small value: the current section index, the number of
sections, and whether narration is running. It holds no content. The
service re-resolves the story or chapter on every request and carries the
session between requests as a signed token.

Narration Rules:

  - Toggling while idle narrates the whole text, not only the visible section.
  - Toggling while speaking cancels and returns to idle even if the cancel fails.
  - A completion is honoured only for the current handle, so a late completion
    from an earlier narration never disturbs the state.
  - Navigating between sections leaves narration alone.
*/
package reading

import (
	"context"
	"errors"
)

// NarrationState is the read-aloud status of a session.
type NarrationState string

const (
	NarrationIdle     NarrationState = "idle"
	NarrationSpeaking NarrationState = "speaking"
)

// ErrNarrationUnavailable is returned by ToggleNarration when the narrator
// refused to start.
var ErrNarrationUnavailable = errors.New("reading: narration unavailable")

// Target names the content a session reads. Exactly one of StoryID or the
// SeriesID/ChapterID pair is set.
type Target struct {
	StoryID   string `json:"story_id,omitempty"`
	SeriesID  string `json:"series_id,omitempty"`
	ChapterID string `json:"chapter_id,omitempty"`
}

// IsChapter reports whether the target is a series chapter.
func (t Target) IsChapter() bool {
	return t.ChapterID != ""
}

// Session is the reading state of one page view.
type Session struct {
	Target    Target         `json:"target"`
	Section   int            `json:"section"`
	Sections  int            `json:"sections"`
	Narration NarrationState `json:"narration"`
	Handle    Handle         `json:"handle,omitempty"`
}

// NewSession starts at the first section with narration idle.
func NewSession(target Target, sections int) Session {
	if sections < 0 {
		sections = 0
	}
	return Session{Target: target, Sections: sections, Narration: NarrationIdle}
}

// # Navigation

// GoTo moves to section i, clamped to the valid range. It reports whether
// the position changed.
func (s *Session) GoTo(i int) bool {
	target := s.clamp(i)
	if target == s.Section {
		return false
	}
	s.Section = target
	return true
}

// Next moves one section forward. There is no wraparound.
func (s *Session) Next() bool {
	return s.GoTo(s.Section + 1)
}

// Previous moves one section back. There is no wraparound.
func (s *Session) Previous() bool {
	return s.GoTo(s.Section - 1)
}

// HasNext reports whether a later section exists.
func (s *Session) HasNext() bool {
	return s.Section+1 < s.Sections
}

// HasPrevious reports whether an earlier section exists.
func (s *Session) HasPrevious() bool {
	return s.Section > 0
}

func (s *Session) clamp(i int) int {
	if i >= s.Sections {
		i = s.Sections - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// # Narration

// Speaking reports whether narration is running.
func (s *Session) Speaking() bool {
	return s.Narration == NarrationSpeaking
}

/*
ToggleNarration starts or stops read-aloud.

Description: Starting speaks text with [StoryVoice] and records the returned
handle; with a nil narrator it does nothing. Stopping cancels the current
handle when a narrator is present and always ends idle. A cancel error is
returned only so the caller can log it.

Parameters:
  - ctx: context.Context
  - narrator: Narrator (nil when the capability is unavailable)
  - text: string (All section texts joined by a single space)

Returns:
  - error: ErrNarrationUnavailable if Speak failed (state unchanged), or the Cancel error
*/
func (s *Session) ToggleNarration(ctx context.Context, narrator Narrator, text string) error {
	if s.Speaking() {
		handle := s.Handle
		s.Narration = NarrationIdle
		s.Handle = ""
		if narrator == nil {
			return nil
		}
		return narrator.Cancel(ctx, handle)
	}

	if narrator == nil {
		return nil
	}

	handle, err := narrator.Speak(ctx, text, StoryVoice)
	if err != nil {
		return errors.Join(ErrNarrationUnavailable, err)
	}

	s.Narration = NarrationSpeaking
	s.Handle = handle
	return nil
}

// Finished records that the narration identified by handle ended on its own.
// Completions for any other handle are ignored. It reports whether the state changed.
func (s *Session) Finished(handle Handle) bool {
	if !s.Speaking() || handle == "" || handle != s.Handle {
		return false
	}
	s.Narration = NarrationIdle
	s.Handle = ""
	return true
}
