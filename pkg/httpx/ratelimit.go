package httpx

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/blog/pkg/slogx"
	"golang.org/x/time/rate"
)

// CodeRateLimited is the error code of a 429 response.
const CodeRateLimited = "rate_limit_exceeded"

// RateLimit allows Requests per Window for one key, with up to Burst of
// them at once.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Validate rejects limits that would block every request.
func (l RateLimit) Validate() error {
	switch {
	case l.Requests <= 0:
		return fmt.Errorf("requests must be positive, got %d", l.Requests)
	case l.Window <= 0:
		return fmt.Errorf("window must be positive, got %s", l.Window)
	case l.Burst <= 0:
		return fmt.Errorf("burst must be positive, got %d", l.Burst)
	}
	return nil
}

func (l RateLimit) every() rate.Limit {
	return rate.Limit(float64(l.Requests) / l.Window.Seconds())
}

// RateLimits groups the profiles applied by the router.
type RateLimits struct {
	Strict   RateLimit // token and register, per IP
	Moderate RateLimit // refresh per IP, post mutations per user
	Lenient  RateLimit // current user and health checks
	Public   RateLimit // anonymous post reads and JWKS
}

// DefaultRateLimits returns the production profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   RateLimit{Requests: 5, Window: time.Minute, Burst: 5},
		Moderate: RateLimit{Requests: 20, Window: time.Minute, Burst: 20},
		Lenient:  RateLimit{Requests: 100, Window: time.Minute, Burst: 100},
		Public:   RateLimit{Requests: 1000, Window: time.Minute, Burst: 1000},
	}
}

// KeyFunc groups requests that share a budget. An empty key is not limited.
type KeyFunc func(*http.Request) string

// ClientIP is the first X-Forwarded-For hop, then X-Real-IP, then the
// remote address.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// KeyByIP keys on the client address.
func KeyByIP(r *http.Request) string {
	if ip := ClientIP(r); ip != "" {
		return "ip:" + ip
	}
	return ""
}

// KeyByUser keys on the authenticated user, falling back to the client
// address for anonymous requests.
func KeyByUser(r *http.Request) string {
	if id, ok := UserIDFromContext(r.Context()); ok {
		return "user:" + id
	}
	return KeyByIP(r)
}

// idleAfter is how long an untouched bucket is kept.
const idleAfter = 10 * time.Minute

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// buckets holds one token bucket per key and evicts idle ones.
type buckets struct {
	limit RateLimit

	mu        sync.Mutex
	byKey     map[string]*bucket
	lastSweep time.Time
}

func newBuckets(limit RateLimit) *buckets {
	return &buckets{limit: limit, byKey: make(map[string]*bucket), lastSweep: time.Now()}
}

func (b *buckets) get(key string, now time.Time) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) >= idleAfter {
		for k, v := range b.byKey {
			if now.Sub(v.lastSeen) >= idleAfter {
				delete(b.byKey, k)
			}
		}
		b.lastSweep = now
	}

	bk, ok := b.byKey[key]
	if !ok {
		bk = &bucket{lim: rate.NewLimiter(b.limit.every(), b.limit.Burst)}
		b.byKey[key] = bk
	}
	bk.lastSeen = now
	return bk.lim
}

func (b *buckets) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byKey)
}

// RateLimitMiddleware rejects requests over limit with 429 and a
// Retry-After header. Each call gets its own set of buckets.
func RateLimitMiddleware(limit RateLimit, key KeyFunc) Middleware {
	return rateLimit(newBuckets(limit), key)
}

func rateLimit(b *buckets, key KeyFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			lim := b.get(k, now)
			if lim.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			res := lim.ReserveN(now, 1)
			wait := res.DelayFrom(now)
			res.CancelAt(now)
			retryAfter := max(int(math.Ceil(wait.Seconds())), 1)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(b.limit.Requests))
			w.Header().Set("X-RateLimit-Window", b.limit.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteError(w, http.StatusTooManyRequests, CodeRateLimited,
				"Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits per client address.
func RateLimitByIP(limit RateLimit) Middleware {
	return RateLimitMiddleware(limit, KeyByIP)
}

// RateLimitByUser limits per authenticated user. Place it after the authn
// middleware.
func RateLimitByUser(limit RateLimit) Middleware {
	return RateLimitMiddleware(limit, KeyByUser)
}
