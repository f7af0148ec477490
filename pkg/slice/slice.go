// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic helpers the catalog uses to shape listings.
package slice

// Map returns transform applied to every element, in order.
func Map[T, U any](input []T, transform func(T) U) []U {
	out := make([]U, 0, len(input))
	for _, item := range input {
		out = append(out, transform(item))
	}
	return out
}

// Filter returns the elements that satisfy keep, in order. The result is
// never nil so it always encodes as a JSON array.
func Filter[T any](input []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range input {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
