package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/fedblog/blog-server/internal/logger"
)

// RateLimit throttles credential endpoints per client address. Limiters for
// idle clients are dropped by a background cleanup loop.
type RateLimit struct {
	perMinute int
	burst     int
	logger    *logger.Logger

	mu       sync.Mutex
	limiters map[string]*clientLimiter
	stopCh   chan struct{}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

const cleanupInterval = 5 * time.Minute

// NewRateLimit creates a new RateLimit middleware and starts its cleanup
// loop.
func NewRateLimit(perMinute int, burst int, logger *logger.Logger) *RateLimit {
	rl := &RateLimit{
		perMinute: perMinute,
		burst:     burst,
		logger:    logger,
		limiters:  make(map[string]*clientLimiter),
		stopCh:    make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimit) Stop() {
	close(rl.stopCh)
}

// Handle rejects requests over the per-client budget with 429.
func (rl *RateLimit) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r)

		if !rl.limiterFor(client).Allow() {
			rl.logger.Info("Rate limit middleware: request rejected",
				"client", client,
				"path", r.URL.Path)

			w.Header().Set("Retry-After", "60")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "RATE_LIMIT_EXCEEDED",
				"message": "Too many requests. Please try again later.",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimit) limiterFor(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, ok := rl.limiters[client]; ok {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), rl.burst)
	rl.limiters[client] = &clientLimiter{limiter: limiter, lastAccess: time.Now()}

	return limiter
}

func (rl *RateLimit) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimit) cleanup() {
	ttl := cleanupInterval * 2
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for client, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, client)
		}
	}
}
