package authapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// loginRateLimiter throttles login attempts per identifier (normalized
// email) over a sliding window. Only failures count; a successful login
// clears the identifier.
//
// State is in-process. Behind multiple replicas each instance enforces its
// own window, so the effective limit is max*replicas; acceptable for a
// brute-force brake, not a billing-grade quota.
type loginRateLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	failures map[string][]time.Time
}

func newLoginRateLimiter(max int, window time.Duration) *loginRateLimiter {
	return &loginRateLimiter{
		max:      max,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// allow reports whether the identifier may attempt a login, and the
// remaining wait when it may not.
func (l *loginRateLimiter) allow(id string, now time.Time) (bool, time.Duration) {
	if l == nil || l.max <= 0 || id == "" {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.prune(id, now)
	if len(recent) < l.max {
		return true, 0
	}
	return false, recent[0].Add(l.window).Sub(now)
}

// recordFailure registers a failed attempt for the identifier.
func (l *loginRateLimiter) recordFailure(id string, now time.Time) {
	if l == nil || l.max <= 0 || id == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures[id] = append(l.prune(id, now), now)
}

// reset clears the identifier after a successful login.
func (l *loginRateLimiter) reset(id string) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.failures, id)
}

// prune drops attempts older than the window. Caller holds the lock.
func (l *loginRateLimiter) prune(id string, now time.Time) []time.Time {
	cut := now.Add(-l.window)
	kept := l.failures[id][:0]
	for _, t := range l.failures[id] {
		if t.After(cut) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, id)
		return nil
	}
	l.failures[id] = kept
	return kept
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.FormatInt(int64(retryAfter.Seconds()), 10))
	}
	writeError(w, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "too many attempts")
}
