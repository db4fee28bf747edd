// Package ratelimit enforces a minimum interval between outgoing calls made
// through one client instance. The service tolerates one request per second
// per account by default; the limiter gates every call unconditionally,
// before it leaves the client.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Prometheus metrics for request throttling.
var (
	throttleWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "apa_throttle_waits_total",
		Help: "Total number of calls delayed by the client-side rate limit",
	})

	throttleWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "apa_throttle_wait_seconds",
		Help:    "Time spent waiting on the client-side rate limit",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5},
	})
)

// Limiter spaces out calls to at least 1/requestsPerSecond apart. State is
// owned by one client instance and never shared across instances; concurrent
// callers through the same instance are serialized by an internal mutex.
type Limiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastCall time.Time
	logger   zerolog.Logger
}

// New creates a limiter allowing requestsPerSecond calls per second.
// Non-positive rates fall back to one call per second.
func New(requestsPerSecond float64, logger zerolog.Logger) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}
}

// Throttle blocks until at least the minimum interval has elapsed since the
// previous call through this limiter, then records the new call time. It is
// called immediately before every outgoing request. Context cancellation
// aborts the wait.
func (l *Limiter) Throttle(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("throttle wait: %w", err)
	}
	if wait := time.Since(start); wait > time.Millisecond {
		throttleWaitsTotal.Inc()
		throttleWaitSeconds.Observe(wait.Seconds())
		l.logger.Debug().
			Dur("wait", wait).
			Msg("Call delayed by rate limit")
	}
	l.lastCall = time.Now()
	return nil
}

// LastCall returns the timestamp of the most recent throttled call, or the
// zero time if none has been made.
func (l *Limiter) LastCall() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastCall
}
