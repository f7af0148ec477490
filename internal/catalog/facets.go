// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

// Facets returns the distinct non-empty values of facet across valid records,
// in the order they first appear. Listing pages use it to fill their dropdowns.
func Facets[T Record](records []T, facet Facet) []string {
	seen := make(map[string]struct{})
	values := []string{}

	for _, record := range records {
		if !record.Valid() {
			continue
		}
		value, ok := record.Facet(facet)
		if !ok || value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}

	return values
}

// FacetValues groups the dropdown options of a listing.
type FacetValues struct {
	Categories []string `json:"categories"`
	AgeGroups  []string `json:"age_groups"`
	Statuses   []string `json:"statuses,omitempty"`
}

// AllFacets collects category, age group and status values in one pass per facet.
func AllFacets[T Record](records []T) FacetValues {
	return FacetValues{
		Categories: Facets(records, FacetCategory),
		AgeGroups:  Facets(records, FacetAgeGroup),
		Statuses:   Facets(records, FacetStatus),
	}
}
