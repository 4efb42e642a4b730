package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// ClientLimiter rate-limits per client address.
type ClientLimiter struct {
	mu  sync.Mutex
	m   map[string]*clientEntry
	r   rate.Limit
	b   int
	now func() time.Time
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		m:   make(map[string]*clientEntry),
		r:   rate.Limit(reqPerSec),
		b:   burst,
		now: time.Now,
	}
}

func (cl *ClientLimiter) limiterFor(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	e, ok := cl.m[client]
	if !ok {
		e = &clientEntry{lim: rate.NewLimiter(cl.r, cl.b)}
		cl.m[client] = e
	}
	e.seen = cl.now()
	return e.lim
}

// SetLimit changes the rate for existing and future clients.
func (cl *ClientLimiter) SetLimit(reqPerSec float64, burst int) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.r = rate.Limit(reqPerSec)
	cl.b = burst
	for _, e := range cl.m {
		e.lim.SetLimit(cl.r)
		e.lim.SetBurst(burst)
	}
}

// Prune forgets clients not seen for idle and returns how many were dropped.
func (cl *ClientLimiter) Prune(idle time.Duration) int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cutoff := cl.now().Add(-idle)
	n := 0
	for k, e := range cl.m {
		if e.seen.Before(cutoff) {
			delete(cl.m, k)
			n++
		}
	}
	return n
}

// Clients is the number of tracked client addresses.
func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}

func (cl *ClientLimiter) Allow(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return cl.limiterFor(host).Allow()
}

// Limit wraps h so that clients over their rate get 429.
func (cl *ClientLimiter) Limit(h http.HandlerFunc) http.HandlerFunc {
	if cl == nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !cl.Allow(r) {
			w.Header().Set("Retry-After", "1")
			WriteError(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests; slow down")
			return
		}
		h(w, r)
	}
}
