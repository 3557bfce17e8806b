package ratelimiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound WhatsApp sends with a token bucket.
// Burst is 1 so sends are evenly spaced instead of clustering at the start
// of a run; the gateway throttles aggressively on bursts.
type Limiter struct {
	l *rate.Limiter
}

// New creates a Limiter allowing perMinute sends per minute.
func New(perMinute int) *Limiter {
	return &Limiter{
		l: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// Wait blocks until the limiter grants a token.
// Called by the dispatch loop immediately before each send.
// Returns a non-nil error only if ctx is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}
