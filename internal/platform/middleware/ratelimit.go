// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/respond"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors is the token bucket of every client seen recently.
type visitors struct {
	mu      sync.Mutex
	byIP    map[string]*visitor
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
}

func (v *visitors) allow(ip string, now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, found := v.byIP[ip]
	if !found {
		entry = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.byIP[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (v *visitors) sweep(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for ip, entry := range v.byIP {
		if now.Sub(entry.lastSeen) > v.idleTTL {
			delete(v.byIP, ip)
		}
	}
}

// RateLimit allows each client IP DefaultRateLimitRPS requests per second
// with bursts of DefaultRateLimitBurst. Rejected requests get 429 with a
// Retry-After header.
//
// Idle clients are forgotten by a sweeper goroutine that runs until ctx is
// cancelled.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	set := &visitors{
		byIP:    make(map[string]*visitor),
		limit:   rate.Limit(constants.DefaultRateLimitRPS),
		burst:   constants.DefaultRateLimitBurst,
		idleTTL: constants.RateLimitClientTTL,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				set.sweep(now)
			case <-ctx.Done():
				return
			}
		}
	}()

	const retryAfter = 1
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !set.allow(RealIP(request), time.Now()) {
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
