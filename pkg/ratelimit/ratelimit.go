package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter is a fixed-window request counter keyed by client IP.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int           // requests per window
	per     time.Duration // window size
}

type window struct {
	start time.Time
	left  int // remaining requests
}

// New creates an IP-based limiter allowing max requests per window
func New(max int, per time.Duration) *Limiter {
	return &Limiter{windows: map[string]*window{}, max: max, per: per}
}

// Allow reports whether one more request from ip fits the current
// window, consuming a slot if it does. Stale windows are replaced in
// place, so the map stays bounded by the set of recent client IPs.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[ip]
	if w == nil || time.Since(w.start) > l.per {
		w = &window{start: time.Now(), left: l.max}
		l.windows[ip] = w
	}
	if w.left <= 0 {
		return false
	}
	w.left--
	return true
}

// Middleware enforces the rate limit before calling the next handler
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}
		if !l.Allow(ip) {
			http.Error(w, "rate limit", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, req)
	})
}
