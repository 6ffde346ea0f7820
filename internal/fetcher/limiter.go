package fetcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostIntervals supplies the operator-configured minimum spacing between requests to a host.
type HostIntervals interface {
	GetIntervalDuration(ctx context.Context, host string) time.Duration
}

// hostLimiter spaces requests per host with a token bucket plus the configured host interval.
type hostLimiter struct {
	mu          sync.Mutex
	perSecond   float64
	limiters    map[string]*rate.Limiter
	nextAllowed map[string]time.Time
	intervals   HostIntervals
}

func newHostLimiter(perSecond float64, intervals HostIntervals) *hostLimiter {
	return &hostLimiter{
		perSecond:   perSecond,
		limiters:    make(map[string]*rate.Limiter),
		nextAllowed: make(map[string]time.Time),
		intervals:   intervals,
	}
}

// wait blocks until a request to host may be sent.
func (h *hostLimiter) wait(ctx context.Context, host string) error {
	if host == "" {
		return nil
	}

	if lim := h.limiter(host); lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return err
		}
	}

	var interval time.Duration
	if h.intervals != nil {
		interval = h.intervals.GetIntervalDuration(ctx, host)
	}
	if interval <= 0 {
		return nil
	}

	// Reserve the next slot under the lock so concurrent callers queue behind each other.
	h.mu.Lock()
	now := time.Now()
	slot := h.nextAllowed[host]
	if slot.Before(now) {
		slot = now
	}
	h.nextAllowed[host] = slot.Add(interval)
	h.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (h *hostLimiter) limiter(host string) *rate.Limiter {
	if h.perSecond <= 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	lim, ok := h.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(h.perSecond), 1)
		h.limiters[host] = lim
	}
	return lim
}
