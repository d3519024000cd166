package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	// IdleTTL is how long an unused per-client limiter is kept.
	IdleTTL time.Duration
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 50,
		BurstSize:         100,
		IdleTTL:           3 * time.Minute,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters keeps one token bucket per client IP. Idle entries are swept
// during lookups at most once per IdleTTL.
type ipLimiters struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(cfg RateLimitConfig) *ipLimiters {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 3 * time.Minute
	}
	return &ipLimiters{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     cfg.BurstSize,
		ttl:       cfg.IdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.ttl {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimit rejects requests beyond the per-IP budget with 429.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	limiters := newIPLimiters(cfg)
	limitHeader := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lim := limiters.get(c.RealIP())
			c.Response().Header().Set("X-RateLimit-Limit", limitHeader)

			if !lim.Allow() {
				retry := 1
				if cfg.RequestsPerSecond > 0 {
					retry = int(1/cfg.RequestsPerSecond) + 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
