// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// CacheControl lets shared caches keep GET and HEAD responses for maxAge.
// Content only changes on publish, so a minute of staleness is acceptable.
func CacheControl(maxAge time.Duration) func(http.Handler) http.Handler {
	value := "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Method == http.MethodGet || request.Method == http.MethodHead {
				writer.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(writer, request)
		})
	}
}
