// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination windows the story and series listings.
//
// Listings are filtered in memory, so a page is a slice window over the
// filtered records rather than a database OFFSET. Both the JSON API and the
// HTML listings read the same "page" and "limit" query parameters.
package pagination

import (
	"net/http"

	"github.com/taibuivan/storytime/pkg/convert"
)

const (
	// DefaultLimit applies when "limit" is absent or unusable.
	DefaultLimit = 20
	// MaxLimit caps "limit"; larger requests are clamped to it.
	MaxLimit = 100
)

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// FromRequest reads "page" and "limit" from the query string.
//
// Pages below 1 become 1, a missing or non-positive limit becomes
// [DefaultLimit], and limits above [MaxLimit] are clamped.
func FromRequest(request *http.Request) Params {
	values := request.URL.Query()
	params := Params{
		Page:  convert.IntOr(values.Get("page"), 1),
		Limit: convert.IntOr(values.Get("limit"), DefaultLimit),
	}

	params.Page = max(params.Page, 1)
	switch {
	case params.Limit < 1:
		params.Limit = DefaultLimit
	case params.Limit > MaxLimit:
		params.Limit = MaxLimit
	}
	return params
}

// Window returns the [start, end) bounds of the page within length records.
// A page past the end yields start == end == length.
func (p Params) Window(length int) (start, end int) {
	start = min(max(p.Page-1, 0)*p.Limit, length)
	end = min(start+p.Limit, length)
	return start, end
}

// Meta describes a page in list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta describes page of total records split limit at a time.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// HasPrevious reports whether a page precedes this one.
func (m Meta) HasPrevious() bool { return m.Page > 1 }

// HasNext reports whether more records follow this page.
func (m Meta) HasNext() bool { return m.Page < m.TotalPages }
