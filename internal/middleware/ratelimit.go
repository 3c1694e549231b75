package middleware

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/DeliveryPulse/DP-Backend/internal/utils"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the two request budgets the service enforces:
// a per-user budget for the API at large and a tighter per-IP budget for
// session creation, which runs before any user identity exists.
type RateLimiterConfig struct {
	GeneralRate     rate.Limit
	GeneralBurst    int
	LoginRate       rate.Limit
	LoginBurst      int
	CleanupInterval time.Duration
	IdleTTL         time.Duration
}

func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(120.0 / 60.0),
		GeneralBurst:    120,
		LoginRate:       rate.Limit(10.0 / 60.0),
		LoginBurst:      10,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         15 * time.Minute,
	}
}

type keyedLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter manages token buckets keyed by user id (general API) and by
// client IP (session creation).
type RateLimiter struct {
	config RateLimiterConfig

	mu       sync.Mutex
	general  map[string]*keyedLimiter
	login    map[string]*keyedLimiter
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a RateLimiter and starts its cleanup loop.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:  config,
		general: make(map[string]*keyedLimiter),
		login:   make(map[string]*keyedLimiter),
		stopCh:  make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// GeneralMiddleware limits authenticated traffic per user. It must run after
// SessionMiddleware so the user id is in the request context.
func (rl *RateLimiter) GeneralMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			if !rl.allow(rl.general, userID, rl.config.GeneralRate, rl.config.GeneralBurst) {
				writeRateLimited(w, rl.config.GeneralRate)
				log.Printf("[ratelimit] user %s over general budget", userID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoginMiddleware limits session creation per client IP.
func (rl *RateLimiter) LoginMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !rl.allow(rl.login, ip, rl.config.LoginRate, rl.config.LoginBurst) {
				writeRateLimited(w, rl.config.LoginRate)
				log.Printf("[ratelimit] ip %s over login budget", ip)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(m map[string]*keyedLimiter, key string, limit rate.Limit, burst int) bool {
	rl.mu.Lock()
	kl, exists := m[key]
	if !exists {
		kl = &keyedLimiter{limiter: rate.NewLimiter(limit, burst)}
		m[key] = kl
	}
	kl.lastAccess = time.Now()
	rl.mu.Unlock()

	return kl.limiter.Allow()
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.config.IdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for _, m := range []map[string]*keyedLimiter{rl.general, rl.login} {
		for key, kl := range m {
			if kl.lastAccess.Before(cutoff) {
				delete(m, key)
			}
		}
	}
}

// LimiterCount returns the number of tracked keys across both maps, for tests.
func (rl *RateLimiter) LimiterCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.general) + len(rl.login)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// The header carries the whole proxy chain; the first hop is the
		// original client.
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeRateLimited(w http.ResponseWriter, limit rate.Limit) {
	// Conservative hint: a full second per token at the configured rate.
	retryAfter := 1
	if limit > 0 && limit < 1 {
		retryAfter = int(1.0/float64(limit)) + 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	http.Error(w, "Too many requests", http.StatusTooManyRequests)
}
