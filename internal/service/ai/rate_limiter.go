package ai

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// DefaultRateLimit is the request rate, per second, used when none is configured.
const DefaultRateLimit = 1.0

// RateLimiter spaces calls to a remote provider. The limit can be changed while in use.
type RateLimiter struct {
	mu      sync.RWMutex
	limiter *rate.Limiter
	limit   float64
}

func NewRateLimiter(perSecond float64) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRateLimit
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		limit:   perSecond,
	}
}

func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.RLock()
	limiter := r.limiter
	r.mu.RUnlock()
	return limiter.Wait(ctx)
}

func (r *RateLimiter) SetLimit(perSecond float64) {
	if perSecond <= 0 {
		perSecond = DefaultRateLimit
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limit = perSecond
	r.limiter.SetLimit(rate.Limit(perSecond))
}

func (r *RateLimiter) Limit() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.limit
}
