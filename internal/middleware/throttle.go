package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle applies a per-user token-bucket limit in front of the DB-backed
// daily quota. It smooths bursts within a single process; the daily limit is
// the authoritative cap.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*userLimiter
	rps      rate.Limit
	burst    int
}

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewThrottle creates a throttle allowing rps requests per second with the
// given burst per user.
func NewThrottle(rps float64, burst int) *Throttle {
	t := &Throttle{
		limiters: make(map[string]*userLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go t.cleanup()
	return t
}

// Allow reports whether the user may proceed, consuming one token if so.
func (t *Throttle) Allow(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ul, ok := t.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(t.rps, t.burst)}
		t.limiters[userID] = ul
	}
	ul.lastSeen = time.Now()
	return ul.limiter.Allow()
}

// Handler wraps next, rejecting over-rate requests with 429. It must run
// after AuthMiddleware so the user ID is in context.
func (t *Throttle) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r.Context())
		if ok && !t.Allow(userID) {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cleanup drops limiters idle for more than an hour.
func (t *Throttle) cleanup() {
	for range time.Tick(5 * time.Minute) {
		t.mu.Lock()
		for id, ul := range t.limiters {
			if time.Since(ul.lastSeen) > time.Hour {
				delete(t.limiters, id)
			}
		}
		t.mu.Unlock()
	}
}
