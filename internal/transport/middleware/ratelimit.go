package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleTTL is how long a client's limiter survives without requests.
const idleTTL = 10 * time.Minute

// RateLimiter hands out per-client token buckets. Buckets are keyed by
// client host, so reconnects from a new source port share one.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	scopes  int
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter starts a limiter whose idle clients are swept every
// cleanupInterval. Call Stop on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		stop:    make(chan struct{}),
	}
	go rl.sweep(cleanupInterval)
	return rl
}

// Stop terminates the sweeper. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit allows each client a burst of perMinute requests refilled evenly
// over a minute. Each call owns its own buckets, so routes wrapped by
// different Limit middlewares never drain each other. A non-positive
// perMinute disables the limit.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	rl.mu.Lock()
	rl.scopes++
	scope := strconv.Itoa(rl.scopes) + "|"
	rl.mu.Unlock()

	return func(next http.Handler) http.Handler {
		if perMinute <= 0 {
			return next
		}
		every := rate.Every(time.Minute / time.Duration(perMinute))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			lim := rl.limiter(scope+clientIP(r), every, perMinute, now)

			res := lim.ReserveN(now, 1)
			if delay := res.DelayFrom(now); delay > 0 {
				res.CancelAt(now)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(key string, every rate.Limit, burst int, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(every, burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.lim
}

func (rl *RateLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > idleTTL {
			delete(rl.clients, key)
		}
	}
}
