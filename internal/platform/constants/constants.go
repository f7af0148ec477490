// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across packages: server
timing, rate limits, session token kinds, header names and Redis key
prefixes.

Values an operator may want to change belong in config, not here.
*/
package constants

import "time"

const (
	AppName    = "storytime"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// GlobalRequestTimeout bounds a whole request, and every SQL statement.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests.
	ShutdownTimeout = 30 * time.Second

	// ContentMaxAge is the shared-cache lifetime of read-only API responses.
	ContentMaxAge = 60 * time.Second

	// ReadinessTimeout bounds each dependency check of /ready.
	ReadinessTimeout = 3 * time.Second
)

// # Rate Limiting

const (
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100

	// A client idle for RateLimitClientTTL loses its bucket at the next sweep.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Sessions

const (
	// SessionIssuer is the "iss" claim of every session token.
	SessionIssuer = "storytime"

	// Token kinds. A token of one kind is rejected by the others.
	SessionKindQuiz     = "quiz"
	SessionKindSpelling = "spelling"
	SessionKindReading  = "reading"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Health Payload Fields

const (
	FieldData    = "data"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Redis Key Prefixes

const (
	RedisPrefixContent   = "content:"
	RedisPrefixNarration = "narration:clip:"
)
