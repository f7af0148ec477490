// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
)

// section is one independently loaded block of the home page.
type section[T any] struct {
	Items  []T
	Failed bool
}

type homePage struct {
	Stories section[*content.Story]
	Series  section[*content.Series]
}

/*
home renders the landing page with the latest stories and series.

Description: Both sections load concurrently in a group without a shared
context, so a failure in one never cancels the other. A failed section
renders a "Try again" link in that section only and the page itself is
always served with 200.
*/
func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	var page homePage
	var group errgroup.Group

	group.Go(func() error {
		items, err := handler.content.LatestStories(ctx, homeSectionSize)
		page.Stories = newSection(items, err)
		return sectionError("stories", err)
	})
	group.Go(func() error {
		items, err := handler.content.LatestSeries(ctx, homeSectionSize)
		page.Series = newSection(items, err)
		return sectionError("series", err)
	})

	if err := group.Wait(); err != nil {
		ctxutil.GetLogger(ctx).Warn("home_section_failed",
			slog.Bool("stories_failed", page.Stories.Failed),
			slog.Bool("series_failed", page.Series.Failed),
			slog.Any("error", err),
		)
	}

	handler.render(writer, request, http.StatusOK, "home", Page{
		Meta: Meta{StructuredData: jsonLD(WebsiteSchema(handler.baseURL))},
		Data: page,
	})
}

// newSection turns a failed fetch into a flagged empty section.
func newSection[T any](items []T, err error) section[T] {
	if err != nil {
		return section[T]{Failed: true}
	}
	return section[T]{Items: items}
}

func sectionError(name string, err error) error {
	if err != nil {
		return fmt.Errorf("site: home %s section: %w", name, err)
	}
	return nil
}
