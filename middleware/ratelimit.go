package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"ledgerapi/logging"

	"github.com/gin-gonic/gin"
)

// attemptWindow sliding-window counter of attempts per key
type attemptWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func newAttemptWindow(max int, window time.Duration) *attemptWindow {
	return &attemptWindow{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// allow records an attempt for key. When the key is over its budget the attempt
// is not recorded and the wait until the oldest attempt expires is returned.
func (w *attemptWindow) allow(key string) (bool, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	recent := prune(w.hits[key], now.Add(-w.window))
	if len(recent) >= w.max {
		w.hits[key] = recent
		return false, recent[0].Add(w.window).Sub(now)
	}
	w.hits[key] = append(recent, now)
	return true, 0
}

// sweep drops keys with no attempts inside the window
func (w *attemptWindow) sweep() {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.window)
	for key, ts := range w.hits {
		if recent := prune(ts, cutoff); len(recent) == 0 {
			delete(w.hits, key)
		} else {
			w.hits[key] = recent
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit allows at most maxAttempts requests per client IP within window; the rest get 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := newAttemptWindow(maxAttempts, window)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			limiter.sweep()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		ok, wait := limiter.allow(ip)
		if !ok {
			logging.Component("ratelimit").
				WithField(logging.FieldClientIP, ip).
				WithField(logging.FieldPath, c.FullPath()).
				Warn("login attempts exceeded")

			seconds := int(wait.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many login attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
