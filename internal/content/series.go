// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"strings"

	"github.com/taibuivan/storytime/internal/catalog"
)

// # Series Status

// Status represents the publication status of a series.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Label is the badge text shown on series pages.
func (s Status) Label() string {
	switch s {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Complete"
	case StatusOnHold:
		return "On Break"
	}
	return "Unknown"
}

// # Chapter

// Chapter is one instalment of a series.
//
// An unpublished chapter is listed as "coming soon" but its sections are
// never handed to a reader.
type Chapter struct {
	ID            string    `json:"id"                 yaml:"id"`
	Title         string    `json:"title"              yaml:"title"`
	ChapterNumber int       `json:"chapter_number"     yaml:"chapter_number"`
	Summary       string    `json:"summary"            yaml:"summary"`
	Sections      []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
	IsPublished   bool      `json:"is_published"       yaml:"is_published"`
	PublishDate   string    `json:"publish_date"       yaml:"publish_date"`
	ReadingTime   string    `json:"reading_time"       yaml:"reading_time"`
	ImageURL      string    `json:"image_url"          yaml:"image_url"`
}

// Text is the narration script of the chapter.
func (c *Chapter) Text() string {
	return joinSections(c.Sections)
}

// Outline returns a copy of the chapter without its sections.
func (c Chapter) Outline() Chapter {
	c.Sections = nil
	return c
}

// ChapterRef points at a neighbouring chapter for previous/next navigation.
type ChapterRef struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ChapterNumber int    `json:"chapter_number"`
	IsPublished   bool   `json:"is_published"`
}

func refOf(c Chapter) *ChapterRef {
	return &ChapterRef{ID: c.ID, Title: c.Title, ChapterNumber: c.ChapterNumber, IsPublished: c.IsPublished}
}

// # Series

// Series is a multi-chapter story published over time.
// Chapters are kept sorted by ChapterNumber.
type Series struct {
	ID              string    `json:"id"               yaml:"id"`
	Title           string    `json:"title"            yaml:"title"`
	Description     string    `json:"description"      yaml:"description"`
	Category        string    `json:"category"         yaml:"category"`
	AgeGroup        string    `json:"age_group"        yaml:"age_group"`
	Status          Status    `json:"status"           yaml:"status"`
	PublishSchedule string    `json:"publish_schedule" yaml:"publish_schedule"`
	CoverImageURL   string    `json:"cover_image_url"  yaml:"cover_image_url"`
	Tags            []string  `json:"tags"             yaml:"tags"`
	TotalChapters   int       `json:"total_chapters"   yaml:"total_chapters"`
	Rating          float64   `json:"rating"           yaml:"rating"`
	Subscribers     int       `json:"subscribers"      yaml:"subscribers"`
	Chapters        []Chapter `json:"chapters"         yaml:"chapters"`
}

// Valid reports whether the series can be listed and opened.
func (s *Series) Valid() bool {
	return s != nil && s.ID != "" && strings.TrimSpace(s.Title) != ""
}

// SearchText returns the fields matched by catalog search.
func (s *Series) SearchText() []string {
	fields := make([]string, 0, 2+len(s.Tags))
	fields = append(fields, s.Title, s.Description)
	return append(fields, s.Tags...)
}

// Facet exposes category, age group and status.
func (s *Series) Facet(f catalog.Facet) (string, bool) {
	switch f {
	case catalog.FacetCategory:
		return s.Category, true
	case catalog.FacetAgeGroup:
		return s.AgeGroup, true
	case catalog.FacetStatus:
		return string(s.Status), true
	}
	return "", false
}

// PublishedChapters counts the chapters readers can open.
func (s *Series) PublishedChapters() int {
	count := 0
	for _, chapter := range s.Chapters {
		if chapter.IsPublished {
			count++
		}
	}
	return count
}

// Progress returns the published share of the planned chapters as a percentage.
func (s *Series) Progress() int {
	if s.TotalChapters <= 0 {
		return 0
	}
	progress := s.PublishedChapters() * 100 / s.TotalChapters
	if progress > 100 {
		return 100
	}
	return progress
}

// Chapter looks up a chapter by id. Lookups are case-sensitive.
func (s *Series) Chapter(id string) (Chapter, bool) {
	for _, chapter := range s.Chapters {
		if chapter.ID == id {
			return chapter, true
		}
	}
	return Chapter{}, false
}

// Neighbours returns the chapters before and after id in number order,
// published or not. Either may be nil.
func (s *Series) Neighbours(id string) (previous, next *ChapterRef) {
	for i, chapter := range s.Chapters {
		if chapter.ID != id {
			continue
		}
		if i > 0 {
			previous = refOf(s.Chapters[i-1])
		}
		if i+1 < len(s.Chapters) {
			next = refOf(s.Chapters[i+1])
		}
		return previous, next
	}
	return nil, nil
}

// Outline returns a copy whose chapters carry no sections. It is what every
// series listing and detail view exposes.
func (s *Series) Outline() *Series {
	outline := *s
	outline.Chapters = make([]Chapter, len(s.Chapters))
	for i, chapter := range s.Chapters {
		outline.Chapters[i] = chapter.Outline()
	}
	return &outline
}

// # Chapter View

// ChapterView is what a reader receives when opening a chapter.
// Sections is empty whenever ComingSoon is true.
type ChapterView struct {
	SeriesID    string      `json:"series_id"`
	SeriesTitle string      `json:"series_title"`
	Chapter     Chapter     `json:"chapter"`
	ComingSoon  bool        `json:"coming_soon"`
	Previous    *ChapterRef `json:"previous,omitempty"`
	Next        *ChapterRef `json:"next,omitempty"`
}

// ViewChapter builds the reader view of chapter id, hiding the content of
// unpublished chapters.
func (s *Series) ViewChapter(id string) (ChapterView, bool) {
	chapter, ok := s.Chapter(id)
	if !ok {
		return ChapterView{}, false
	}

	view := ChapterView{
		SeriesID:    s.ID,
		SeriesTitle: s.Title,
		Chapter:     chapter,
		ComingSoon:  !chapter.IsPublished,
	}
	if view.ComingSoon {
		view.Chapter = chapter.Outline()
	}
	view.Previous, view.Next = s.Neighbours(id)

	return view, true
}
