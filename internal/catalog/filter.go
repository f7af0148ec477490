// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog narrows story and series listings by free-text search and facets.

It is deliberately ignorant of the content model. Anything that implements
[Record] can be filtered, so the same code serves the story list, the series
list, the home page and the JSON API.

Semantics:

  - Search: case-insensitive substring over the record's searchable fields; any field may match.
  - Facets: the value "all" (or empty) imposes no constraint, anything else must match exactly.
  - Predicates are combined with AND.
  - Records that report themselves invalid are dropped, never rendered.
  - Order is stable and the input slice is never modified.
*/
package catalog

import (
	"strings"

	"github.com/taibuivan/storytime/pkg/slice"
)

// # Facets

// Facet names a single-valued attribute that listings can be narrowed by.
type Facet string

const (
	FacetCategory Facet = "category"
	FacetAgeGroup Facet = "age_group"
	FacetStatus   Facet = "status"
)

// All is the facet value that disables a constraint.
const All = "all"

// # Record Contract

// Record is the view of a content item that the filter needs.
//
// Implementations with pointer receivers must tolerate a nil receiver in
// Valid, since listings loaded from external sources may contain holes.
type Record interface {
	// Valid reports whether the record carries every required field.
	Valid() bool

	// SearchText returns the fields that free-text search looks at.
	SearchText() []string

	// Facet returns the record's value for f, or false when the record
	// has no such attribute (stories have no status, for example).
	Facet(f Facet) (string, bool)
}

// # Query

// Query holds the user's current search box and dropdown selections.
type Query struct {
	SearchTerm string `json:"q,omitempty"`
	Category   string `json:"category,omitempty"`
	AgeGroup   string `json:"age_group,omitempty"`
	Status     string `json:"status,omitempty"`
}

type constraint struct {
	facet Facet
	value string
}

// constraints pairs each facet with the selected value.
func (q Query) constraints() []constraint {
	return []constraint{
		{FacetCategory, q.Category},
		{FacetAgeGroup, q.AgeGroup},
		{FacetStatus, q.Status},
	}
}

// IsZero reports whether the query matches every valid record.
func (q Query) IsZero() bool {
	if normalizeTerm(q.SearchTerm) != "" {
		return false
	}
	for _, selected := range q.constraints() {
		if !unconstrained(selected.value) {
			return false
		}
	}
	return true
}

// # Filtering

/*
Filter returns the records that satisfy every predicate of query.

Parameters:
  - records: []T (Listing in catalog order, left untouched)
  - query: Query (Search term and facet selections)

Returns:
  - []T: A new, never nil slice with matching records in their original order
*/
func Filter[T Record](records []T, query Query) []T {
	term := normalizeTerm(query.SearchTerm)

	return slice.Filter(records, func(record T) bool {
		return matches(record, term, query)
	})
}

// Matches reports whether a single record satisfies query.
func Matches[T Record](record T, query Query) bool {
	return matches(record, normalizeTerm(query.SearchTerm), query)
}

func matches[T Record](record T, term string, query Query) bool {
	if !record.Valid() {
		return false
	}

	if term != "" && !containsTerm(record.SearchText(), term) {
		return false
	}

	for _, selected := range query.constraints() {
		if unconstrained(selected.value) {
			continue
		}
		value, ok := record.Facet(selected.facet)
		if !ok || value != selected.value {
			return false
		}
	}

	return true
}

func containsTerm(fields []string, term string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func unconstrained(value string) bool {
	return value == "" || value == All
}
