// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"log/slog"
	"sort"

	"github.com/taibuivan/storytime/pkg/slug"
)

// # Normalization
//
// Every adapter passes freshly loaded records through these helpers so that
// the rest of the application can rely on slugs being present and chapters
// being ordered.

// normalizeStories derives missing slugs. Records are copied, never modified in place.
func normalizeStories(stories []*Story) []*Story {
	normalized := make([]*Story, 0, len(stories))
	for _, story := range stories {
		if story == nil {
			continue
		}
		copied := *story
		if copied.ID == "" {
			copied.ID = slug.From(copied.Title)
		}
		normalized = append(normalized, &copied)
	}
	return normalized
}

// normalizeSeries derives missing slugs and orders chapters by number.
func normalizeSeries(logger *slog.Logger, series []*Series) []*Series {
	normalized := make([]*Series, 0, len(series))
	for _, item := range series {
		if item == nil {
			continue
		}
		copied := *item
		if copied.ID == "" {
			copied.ID = slug.From(copied.Title)
		}
		copied.Chapters = sortChapters(logger, copied.ID, item.Chapters)
		normalized = append(normalized, &copied)
	}
	return normalized
}

// sortChapters returns a new slice ordered by chapter number. When two
// chapters share a number the first one wins and the other is dropped.
func sortChapters(logger *slog.Logger, seriesID string, chapters []Chapter) []Chapter {
	sorted := make([]Chapter, len(chapters))
	copy(sorted, chapters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChapterNumber < sorted[j].ChapterNumber
	})

	unique := sorted[:0]
	for i, chapter := range sorted {
		if i > 0 && chapter.ChapterNumber == unique[len(unique)-1].ChapterNumber {
			logger.Warn("duplicate_chapter_number",
				slog.String("series_id", seriesID),
				slog.Int("chapter_number", chapter.ChapterNumber),
				slog.String("dropped_chapter_id", chapter.ID),
			)
			continue
		}
		unique = append(unique, chapter)
	}

	return unique
}
