package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiter hands out one token bucket per client key.
type ClientLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	buckets map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// idleBucketTTL bounds how long an untouched bucket is kept.
const idleBucketTTL = 10 * time.Minute

// NewClientLimiter allows burst events at once and refills at one event per
// interval. A non-positive interval disables limiting.
func NewClientLimiter(interval time.Duration, burst int) *ClientLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limit:   limit,
		burst:   burst,
		now:     time.Now,
		buckets: make(map[string]*clientBucket),
	}
}

// Allow reports whether key may proceed now.
func (l *ClientLimiter) Allow(key string) bool {
	if l == nil || l.limit == rate.Inf {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.evictIdleLocked(now)
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

func (l *ClientLimiter) evictIdleLocked(now time.Time) {
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > idleBucketTTL {
			delete(l.buckets, key)
		}
	}
}

// RateLimit rejects requests whose client key is over budget. Only methods
// listed are counted; an empty list counts every request.
func RateLimit(limiter *ClientLimiter, onLimited http.Handler, methods ...string) Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		if onLimited == nil {
			onLimited = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			})
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if counts(methods, r.Method) && !limiter.Allow(ClientKey(r)) {
				onLimited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func counts(methods []string, method string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// ClientKey identifies the caller by remote address without the port.
func ClientKey(r *http.Request) string {
	if r == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
