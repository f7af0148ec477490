// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import "context"

// Voice tunes the speech of a narration.
type Voice struct {
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// StoryVoice is slightly slower and higher than a neutral voice, which suits
// young listeners.
var StoryVoice = Voice{Rate: 0.8, Pitch: 1.1}

// Handle identifies one narration started by [Narrator.Speak].
type Handle string

// Narrator is the read-aloud capability.
//
// Speak starts narrating text and returns immediately. Cancel stops a
// narration; cancelling a finished or unknown handle is not an error.
// Completion is reported back to the session through [Session.Finished]
// with the same handle.
type Narrator interface {
	Speak(ctx context.Context, text string, voice Voice) (Handle, error)
	Cancel(ctx context.Context, handle Handle) error
}
