package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/itsatony/airsense/internal/errors"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client address
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// GetLimiter returns the limiter of client, creating it on first use.
func (rl *RateLimiter) GetLimiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[client]
	if !ok {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[client] = limiter
	}
	return limiter
}

// Limit rejects requests beyond the client's budget with 429
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		if !rl.GetLimiter(client).Allow() {
			nuts.L.Warnf("[RateLimiter] Rate limit exceeded for %s", client)
			handleError(w, errors.NewRateLimitError("rate limit exceeded", nil).WithRequestID(nuts.NID("req", 12)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func handleError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
}
