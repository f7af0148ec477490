// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narration

import (
	"context"
	"fmt"
	"unicode/utf8"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/taibuivan/storytime/internal/reading"
)

// chunkLimit keeps every request under the 5000 byte input limit of the API.
const chunkLimit = 4800

// pitchSemitones maps a relative pitch of 1.0 ± 1 onto the API's ±20 semitones.
const pitchSemitones = 20

// GoogleSynthesizer renders speech with Google Cloud Text-to-Speech.
type GoogleSynthesizer struct {
	client   *texttospeech.Client
	voice    string
	language string
}

/*
NewGoogleSynthesizer dials the Text-to-Speech API with application default
credentials.

Parameters:
  - ctx: context.Context
  - voice: string (e.g. "en-US-Standard-C")
  - language: string (BCP-47 code, e.g. "en-US")

Returns:
  - *GoogleSynthesizer: Ready synthesizer, to be closed on shutdown
  - error: Client creation failure
*/
func NewGoogleSynthesizer(ctx context.Context, voice, language string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("narration: failed to create TTS client: %w", err)
	}
	return &GoogleSynthesizer{client: client, voice: voice, language: language}, nil
}

// Synthesize renders text as one MP3 clip. Long texts are synthesized in
// chunks whose MP3 frames are concatenated.
func (synthesizer *GoogleSynthesizer) Synthesize(ctx context.Context, text string, voice reading.Voice) ([]byte, error) {
	var clip []byte

	for index, chunk := range splitIntoChunks(text, chunkLimit) {
		response, err := synthesizer.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: synthesizer.language,
				Name:         synthesizer.voice,
			},
			AudioConfig: &texttospeechpb.AudioConfig{
				AudioEncoding: texttospeechpb.AudioEncoding_MP3,
				SpeakingRate:  voice.Rate,
				Pitch:         pitch(voice.Pitch),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("narration: failed to synthesize chunk %d: %w", index, err)
		}
		clip = append(clip, response.AudioContent...)
	}

	return clip, nil
}

// Close releases the underlying gRPC connection.
func (synthesizer *GoogleSynthesizer) Close() error {
	return synthesizer.client.Close()
}

func pitch(relative float64) float64 {
	semitones := (relative - 1) * pitchSemitones
	return max(-pitchSemitones, min(pitchSemitones, semitones))
}

// splitIntoChunks cuts text into pieces of at most limit bytes on rune
// boundaries, preferring the last space past the halfway mark so words are
// not cut in half.
func splitIntoChunks(text string, limit int) []string {
	var chunks []string

	for len(text) > limit {
		end, space := 0, 0
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if end+size > limit {
				break
			}
			if r == ' ' && end > limit/2 {
				space = end
			}
			end += size
		}
		if space > 0 {
			end = space
		}
		if end == 0 {
			_, end = utf8.DecodeRuneInString(text)
		}
		chunks = append(chunks, text[:end])
		text = text[end:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}

	return chunks
}
