// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import "context"

// Repository is the read-only content source.
//
// Listings are returned in catalog order (newest first for the CMS). Find
// methods return an [apperr.NotFound] error for unknown ids; ids are matched
// exactly and case-sensitively. Upstream failures surface as
// [apperr.ContentUnavailable].
type Repository interface {
	ListStories(ctx context.Context) ([]*Story, error)
	FindStory(ctx context.Context, id string) (*Story, error)
	ListSeries(ctx context.Context) ([]*Series, error)
	FindSeries(ctx context.Context, id string) (*Series, error)
}

// Pinger is implemented by repositories that depend on a remote system.
type Pinger interface {
	Ping(ctx context.Context) error
}

// findByID is the linear lookup shared by in-memory sources.
func findByID[R any](records []R, id string, key func(R) string) (R, bool) {
	for _, record := range records {
		if key(record) == id {
			return record, true
		}
	}
	var zero R
	return zero, false
}
