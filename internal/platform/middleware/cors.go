// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/storytime/internal/platform/constants"
)

// AppConfig is the part of the configuration CORS reads.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

const corsMaxAge = 5 * time.Minute

var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")
	corsHeaders = strings.Join([]string{"Accept", "Content-Type", constants.HeaderXRequestID}, ", ")
)

// CORS lets the site origin and EXTRA_ORIGINS call the API from a browser.
// Development accepts any origin. Preflights end here with 204.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	allowed := cfg.AllowedOrigins()
	anyOrigin := cfg.IsDevelopment()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)
			if anyOrigin || slices.Contains(allowed, origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", corsMethods)
				header.Set("Access-Control-Allow-Headers", corsHeaders)
				header.Set("Access-Control-Expose-Headers", constants.HeaderXRequestID)
				header.Set("Access-Control-Max-Age", strconv.Itoa(int(corsMaxAge.Seconds())))
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
