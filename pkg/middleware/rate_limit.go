package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menuhub/dish-service/pkg/metrics"
	"golang.org/x/time/rate"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c *gin.Context) string

// ClientIPKey buckets by client IP.
func ClientIPKey(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// limiters is a per-key token-bucket store, one per middleware instance. Keys idle for
// longer than idle are dropped on a periodic sweep; by then their bucket has refilled, so
// a fresh limiter behaves the same.
type limiters struct {
	mu        sync.Mutex
	m         map[string]*limiterEntry
	rps       float64
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

const minLimiterIdle = time.Minute

func newLimiters(rps float64, burst int) *limiters {
	idle := 10 * time.Minute
	if rps > 0 {
		idle = time.Duration(float64(burst) / rps * float64(time.Second))
		if idle < minLimiterIdle {
			idle = minLimiterIdle
		}
	}
	return &limiters{
		m:         make(map[string]*limiterEntry),
		rps:       rps,
		burst:     burst,
		idle:      idle,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *limiters) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	e, ok := l.m[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.m[key] = e
	}
	e.lastSeen = now
	return e.lim
}

func (l *limiters) sweep(now time.Time) {
	for k, e := range l.m {
		if now.Sub(e.lastSeen) >= l.idle {
			delete(l.m, k)
		}
	}
	l.lastSweep = now
}

func (l *limiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

// RateLimitMiddleware enforces an in-memory token bucket per key (client IP by default).
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimitMiddleware(rps float64, burst int, key KeyFunc) gin.HandlerFunc {
	if key == nil {
		key = ClientIPKey
	}
	store := newLimiters(rps, burst)
	return func(c *gin.Context) {
		if !store.get(key(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
