// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"fmt"
	"strings"
)

// Issue describes one problem found in a loaded catalogue.
type Issue struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Problem string `json:"problem"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %q: %s", i.Kind, i.ID, i.Problem)
}

// Audit reports records that would be hidden from readers or render poorly.
// It never changes the records.
func Audit(stories []*Story, series []*Series) []Issue {
	var issues []Issue
	report := func(kind, id, format string, args ...any) {
		issues = append(issues, Issue{Kind: kind, ID: id, Problem: fmt.Sprintf(format, args...)})
	}

	seenStories := make(map[string]bool)
	for i, story := range stories {
		if !story.Valid() {
			report("story", fmt.Sprintf("#%d", i), "missing id or title")
			continue
		}
		if seenStories[story.ID] {
			report("story", story.ID, "duplicate id")
		}
		seenStories[story.ID] = true

		if len(story.Sections) == 0 {
			report("story", story.ID, "has no sections")
		}
		for n, helper := range story.Vocabulary {
			if strings.TrimSpace(helper.Word) == "" {
				report("story", story.ID, "vocabulary entry %d has no word", n+1)
			}
		}
	}

	seenSeries := make(map[string]bool)
	for i, item := range series {
		if !item.Valid() {
			report("series", fmt.Sprintf("#%d", i), "missing id or title")
			continue
		}
		if seenSeries[item.ID] {
			report("series", item.ID, "duplicate id")
		}
		seenSeries[item.ID] = true

		if !item.Status.IsValid() {
			report("series", item.ID, "unknown status %q", item.Status)
		}

		seenChapters := make(map[string]bool)
		for _, chapter := range item.Chapters {
			if chapter.ID == "" {
				report("series", item.ID, "chapter %d has no id", chapter.ChapterNumber)
				continue
			}
			if seenChapters[chapter.ID] {
				report("series", item.ID, "duplicate chapter id %q", chapter.ID)
			}
			seenChapters[chapter.ID] = true

			if chapter.IsPublished && len(chapter.Sections) == 0 {
				report("series", item.ID, "published chapter %q has no sections", chapter.ID)
			}
		}
	}

	return issues
}
