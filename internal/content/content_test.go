// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storytime/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSeries() *Series {
	return &Series{
		ID:            "magic-forest",
		Title:         "Magic Forest",
		Status:        StatusOngoing,
		TotalChapters: 8,
		Tags:          []string{"Magic", "Friendship"},
		Chapters: []Chapter{
			{ID: "c1", ChapterNumber: 1, Title: "One", IsPublished: true, Sections: []Section{{Text: "first"}}},
			{ID: "c2", ChapterNumber: 2, Title: "Two", IsPublished: true, Sections: []Section{{Text: "second"}}},
			{ID: "c3", ChapterNumber: 3, Title: "Three", IsPublished: false, Sections: []Section{{Text: "secret"}}},
		},
	}
}

func TestStory_Record(t *testing.T) {
	story := &Story{ID: "hare", Title: "The Tortoise and the Hare", Category: "Classic Fables", AgeGroup: "4-8 years"}

	assert.True(t, story.Valid())
	assert.False(t, (&Story{ID: "x", Title: "  "}).Valid())
	assert.False(t, (*Story)(nil).Valid())

	category, ok := story.Facet(catalog.FacetCategory)
	assert.True(t, ok)
	assert.Equal(t, "Classic Fables", category)

	_, ok = story.Facet(catalog.FacetStatus)
	assert.False(t, ok, "stories carry no status")
}

func TestStory_Text(t *testing.T) {
	story := &Story{Sections: []Section{{Text: "Once upon a time."}, {Text: "The end."}}}
	assert.Equal(t, "Once upon a time. The end.", story.Text())
}

func TestStory_Summarize(t *testing.T) {
	story := &Story{ID: "a", Title: "A", Sections: []Section{{Text: "x"}}, Vocabulary: []VocabularyHelper{{Word: "w"}}}

	summary := story.Summarize()

	assert.Nil(t, summary.Sections)
	assert.Nil(t, summary.Vocabulary)
	assert.Len(t, story.Sections, 1, "original untouched")
}

func TestSeries_SearchAndFacets(t *testing.T) {
	series := sampleSeries()

	assert.Contains(t, series.SearchText(), "Friendship")

	status, ok := series.Facet(catalog.FacetStatus)
	assert.True(t, ok)
	assert.Equal(t, "ongoing", status)
}

func TestSeries_Stats(t *testing.T) {
	series := sampleSeries()

	assert.Equal(t, 2, series.PublishedChapters())
	assert.Equal(t, 25, series.Progress())
	assert.Equal(t, 0, (&Series{}).Progress())
}

func TestSeries_Neighbours(t *testing.T) {
	series := sampleSeries()

	tests := []struct {
		name         string
		id           string
		wantPrevious string
		wantNext     string
	}{
		{"first", "c1", "", "c2"},
		{"middle", "c2", "c1", "c3"},
		{"last_unpublished", "c3", "c2", ""},
		{"unknown", "nope", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous, next := series.Neighbours(tt.id)
			if tt.wantPrevious == "" {
				assert.Nil(t, previous)
			} else {
				require.NotNil(t, previous)
				assert.Equal(t, tt.wantPrevious, previous.ID)
			}
			if tt.wantNext == "" {
				assert.Nil(t, next)
			} else {
				require.NotNil(t, next)
				assert.Equal(t, tt.wantNext, next.ID)
			}
		})
	}
}

// An unpublished chapter never exposes its sections, whatever view is built.
func TestSeries_ChapterVisibility(t *testing.T) {
	series := sampleSeries()

	view, ok := series.ViewChapter("c3")
	require.True(t, ok)
	assert.True(t, view.ComingSoon)
	assert.Empty(t, view.Chapter.Sections)
	assert.Equal(t, "Three", view.Chapter.Title)

	published, ok := series.ViewChapter("c1")
	require.True(t, ok)
	assert.False(t, published.ComingSoon)
	assert.Equal(t, "first", published.Chapter.Text())

	for _, chapter := range series.Outline().Chapters {
		assert.Empty(t, chapter.Sections)
	}
	assert.NotEmpty(t, series.Chapters[2].Sections, "outline copies, never strips the original")

	_, ok = series.ViewChapter("missing")
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusOnHold.IsValid())
	assert.False(t, Status("hiatus").IsValid())
	assert.Equal(t, "On Break", StatusOnHold.Label())
	assert.Equal(t, "Unknown", Status("").Label())
}

func TestYouTubeEmbedURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://youtu.be/abc123", "https://www.youtube.com/embed/abc123"},
		{"https://www.youtube.com/watch?v=abc123&t=10", "https://www.youtube.com/embed/abc123"},
		{"https://youtube.com/embed/abc123", "https://www.youtube.com/embed/abc123"},
		{"https://m.youtube.com/shorts/abc123", "https://www.youtube.com/embed/abc123"},
		{"https://vimeo.com/123", ""},
		{"not a url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, YouTubeEmbedURL(tt.raw))
		})
	}
}

func TestNormalizeSeries(t *testing.T) {
	input := []*Series{{
		Title: "Little Space Explorers",
		Chapters: []Chapter{
			{ID: "c3", ChapterNumber: 3},
			{ID: "c1", ChapterNumber: 1},
			{ID: "c2a", ChapterNumber: 2},
			{ID: "c2b", ChapterNumber: 2},
		},
	}, nil}

	normalized := normalizeSeries(discardLogger(), input)

	require.Len(t, normalized, 1)
	assert.Equal(t, "little-space-explorers", normalized[0].ID)

	var ids []string
	for _, chapter := range normalized[0].Chapters {
		ids = append(ids, chapter.ID)
	}
	assert.Equal(t, []string{"c1", "c2a", "c3"}, ids, "sorted, first duplicate kept")

	assert.Equal(t, "", input[0].ID, "input not modified")
	assert.Equal(t, "c3", input[0].Chapters[0].ID, "input chapters not reordered")
}

func TestNormalizeStories(t *testing.T) {
	input := []*Story{{Title: "The Three Little Pigs"}, {ID: "kept", Title: "Kept"}}

	normalized := normalizeStories(input)

	assert.Equal(t, "the-three-little-pigs", normalized[0].ID)
	assert.Equal(t, "kept", normalized[1].ID)
	assert.Equal(t, "", input[0].ID)
}

func TestAudit(t *testing.T) {
	stories := []*Story{
		{ID: "ok", Title: "Ok", Sections: []Section{{Text: "x"}}},
		{ID: "ok", Title: "Dup", Sections: []Section{{Text: "x"}}},
		{ID: "", Title: ""},
		{ID: "empty", Title: "Empty"},
	}
	series := []*Series{{
		ID: "s", Title: "S", Status: "paused",
		Chapters: []Chapter{{ID: "c", ChapterNumber: 1, IsPublished: true}},
	}}

	issues := Audit(stories, series)

	var problems []string
	for _, issue := range issues {
		problems = append(problems, issue.String())
	}
	assert.ElementsMatch(t, []string{
		`story "ok": duplicate id`,
		`story "#2": missing id or title`,
		`story "empty": has no sections`,
		`series "s": unknown status "paused"`,
		`series "s": published chapter "c" has no sections`,
	}, problems)
}
