// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/taibuivan/storytime/pkg/pagination"
)

// QueryFromRequest reads the search term and facet selections from the URL.
//
// Recognised parameters: q, category, age_group, status.
func QueryFromRequest(request *http.Request) Query {
	values := request.URL.Query()
	return Query{
		SearchTerm: values.Get("q"),
		Category:   values.Get(string(FacetCategory)),
		AgeGroup:   values.Get(string(FacetAgeGroup)),
		Status:     values.Get(string(FacetStatus)),
	}
}

// Page returns the window of items selected by params. Out-of-range pages
// yield an empty, non-nil slice.
func Page[T any](items []T, params pagination.Params) []T {
	start, end := params.Window(len(items))
	if start == end {
		return []T{}
	}
	return items[start:end]
}
