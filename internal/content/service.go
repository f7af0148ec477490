// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"log/slog"

	"github.com/taibuivan/storytime/internal/catalog"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
)

// # Service Layer

// Service answers catalogue questions on top of a [Repository]: filtered
// listings, detail lookups and the chapter reader view.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Listing is one filtered page source together with its dropdown values.
// Facets are computed over the unfiltered catalogue so that narrowing one
// dropdown never empties the others.
type Listing[T catalog.Record] struct {
	Items  []T
	Facets catalog.FacetValues
	Total  int
}

// # Stories

/*
ListStories returns the stories matching query in catalog order.

Parameters:
  - ctx: context.Context
  - query: catalog.Query (Search term and facet selections)

Returns:
  - Listing[*Story]: Matching stories and facet values
  - error: apperr.ContentUnavailable when the source cannot be read
*/
func (service *Service) ListStories(ctx context.Context, query catalog.Query) (Listing[*Story], error) {
	stories, err := service.repo.ListStories(ctx)
	if err != nil {
		return Listing[*Story]{}, err
	}

	warnMalformed(ctx, "story", stories)

	items := catalog.Filter(stories, query)
	return Listing[*Story]{
		Items:  items,
		Facets: catalog.AllFacets(stories),
		Total:  len(items),
	}, nil
}

// GetStory returns the full story, sections and vocabulary included.
func (service *Service) GetStory(ctx context.Context, id string) (*Story, error) {
	story, err := service.repo.FindStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !story.Valid() {
		return nil, apperr.NotFound("Story")
	}
	return story, nil
}

// LatestStories returns the first n valid stories in catalog order. A
// negative n returns all of them.
func (service *Service) LatestStories(ctx context.Context, n int) ([]*Story, error) {
	stories, err := service.repo.ListStories(ctx)
	if err != nil {
		return nil, err
	}
	return head(catalog.Filter(stories, catalog.Query{}), n), nil
}

// # Series

// ListSeries returns series matching query in catalog order, as outlines.
func (service *Service) ListSeries(ctx context.Context, query catalog.Query) (Listing[*Series], error) {
	series, err := service.repo.ListSeries(ctx)
	if err != nil {
		return Listing[*Series]{}, err
	}

	warnMalformed(ctx, "series", series)

	matching := catalog.Filter(series, query)
	items := make([]*Series, len(matching))
	for i, item := range matching {
		items[i] = item.Outline()
	}

	return Listing[*Series]{
		Items:  items,
		Facets: catalog.AllFacets(series),
		Total:  len(items),
	}, nil
}

// GetSeries returns a series outline: chapters are listed without content.
func (service *Service) GetSeries(ctx context.Context, id string) (*Series, error) {
	series, err := service.repo.FindSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	if !series.Valid() {
		return nil, apperr.NotFound("Series")
	}
	return series.Outline(), nil
}

// LatestSeries returns the first n valid series outlines in catalog order.
func (service *Service) LatestSeries(ctx context.Context, n int) ([]*Series, error) {
	series, err := service.repo.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	latest := head(catalog.Filter(series, catalog.Query{}), n)
	outlines := make([]*Series, len(latest))
	for i, item := range latest {
		outlines[i] = item.Outline()
	}
	return outlines, nil
}

/*
GetChapter resolves the reader view of one chapter.

Description: Unpublished chapters are not an error. The view comes back
with ComingSoon set and no sections, whichever surface asked for it.

Parameters:
  - ctx: context.Context
  - seriesID: string
  - chapterID: string

Returns:
  - ChapterView: Chapter with neighbours
  - error: apperr.NotFound for an unknown series or chapter
*/
func (service *Service) GetChapter(ctx context.Context, seriesID, chapterID string) (ChapterView, error) {
	series, err := service.repo.FindSeries(ctx, seriesID)
	if err != nil {
		return ChapterView{}, err
	}

	view, ok := series.ViewChapter(chapterID)
	if !ok {
		return ChapterView{}, apperr.NotFound("Chapter")
	}
	return view, nil
}

// # Helpers

func head[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// warnMalformed logs records that the catalog filter will hide.
func warnMalformed[T catalog.Record](ctx context.Context, kind string, records []T) {
	for i, record := range records {
		if !record.Valid() {
			ctxutil.GetLogger(ctx).Warn("malformed_record_skipped",
				slog.String("kind", kind),
				slog.Int("index", i),
			)
		}
	}
}
