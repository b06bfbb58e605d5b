package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Fineboy94449/smoke/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fixed-window per-IP rate limiting. Each middleware owns its own
// counters and drops idle IPs in the background so the maps cannot grow
// forever.

type ipWindow struct {
	count   int
	resetAt time.Time
}

type limiter struct {
	mu     sync.Mutex
	seen   map[string]*ipWindow
	limit  int
	period time.Duration
}

func newLimiter(limit int, period time.Duration) *limiter {
	l := &limiter{
		seen:   make(map[string]*ipWindow),
		limit:  limit,
		period: period,
	}
	go l.purge()
	return l
}

func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.seen[ip]
	if !ok || now.After(w.resetAt) {
		w = &ipWindow{resetAt: now.Add(l.period)}
		l.seen[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.resetAt
}

const purgeInterval = 5 * time.Minute

func (l *limiter) purge() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		purged := 0
		for ip, w := range l.seen {
			if now.After(w.resetAt) {
				delete(l.seen, ip)
				purged++
			}
		}
		l.mu.Unlock()
		if purged > 0 {
			log.Debug().Int("purged", purged).Msg("rate limiter: idle IPs dropped")
		}
	}
}

// LoginRateLimiter caps credential attempts at 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	l := newLimiter(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := l.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("too many login attempts, try again in a minute"))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter applied to the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimiter(limit, window)
	return func(c *gin.Context) {
		ok, resetAt := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", resetAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("too many requests, slow down"))
			return
		}
		c.Next()
	}
}
