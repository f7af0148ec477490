// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content defines the story and series catalogue and the adapters that load it.

Content is read-only at runtime. It originates from one of three sources:

  - Static: YAML files embedded in the binary (the default, no infrastructure needed).
  - CMS: a hosted headless CMS queried over HTTP on every cache miss.
  - Postgres: a mirror of the catalogue imported with contentctl.

Any source can be wrapped by a Redis read-through cache. Every adapter hands out
records that are already normalized: slugs derived, chapters sorted by number.
*/
package content

import (
	"strings"

	"github.com/taibuivan/storytime/internal/catalog"
)

// # Building Blocks

// Section is one paragraph group of a story or chapter, optionally illustrated.
type Section struct {
	Text     string `json:"text"                yaml:"text"`
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// VocabularyHelper explains a difficult word used in a story.
type VocabularyHelper struct {
	Word          string `json:"word"                    yaml:"word"`
	Definition    string `json:"definition"              yaml:"definition"`
	Pronunciation string `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
}

// # Story

// Story is a standalone illustrated tale with a moral lesson.
type Story struct {
	ID          string             `json:"id"                  yaml:"id"`
	Title       string             `json:"title"               yaml:"title"`
	Summary     string             `json:"summary"             yaml:"summary"`
	Sections    []Section          `json:"sections"            yaml:"sections"`
	MoralLesson string             `json:"moral_lesson"        yaml:"moral_lesson"`
	AgeGroup    string             `json:"age_group"           yaml:"age_group"`
	ReadingTime string             `json:"reading_time"        yaml:"reading_time"`
	Category    string             `json:"category"            yaml:"category"`
	ImageURL    string             `json:"image_url"           yaml:"image_url"`
	VideoURL    string             `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	Vocabulary  []VocabularyHelper `json:"vocabulary"          yaml:"vocabulary,omitempty"`
}

// Valid reports whether the story can be listed and opened.
func (s *Story) Valid() bool {
	return s != nil && s.ID != "" && strings.TrimSpace(s.Title) != ""
}

// SearchText returns the fields matched by catalog search.
func (s *Story) SearchText() []string {
	return []string{s.Title, s.Summary, s.MoralLesson}
}

// Facet exposes category and age group. Stories have no status.
func (s *Story) Facet(f catalog.Facet) (string, bool) {
	switch f {
	case catalog.FacetCategory:
		return s.Category, true
	case catalog.FacetAgeGroup:
		return s.AgeGroup, true
	}
	return "", false
}

// Text is the narration script: every section's text joined by a single space.
func (s *Story) Text() string {
	return joinSections(s.Sections)
}

// EmbedURL returns the player URL for the story's video, or "" if it has none.
func (s *Story) EmbedURL() string {
	return YouTubeEmbedURL(s.VideoURL)
}

// Summarize returns a copy without sections and vocabulary, for listings.
func (s *Story) Summarize() *Story {
	summary := *s
	summary.Sections = nil
	summary.Vocabulary = nil
	return &summary
}

func joinSections(sections []Section) string {
	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.Text
	}
	return strings.Join(texts, " ")
}
