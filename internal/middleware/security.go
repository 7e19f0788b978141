package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AnshRaj112/dhrms-backend/pkg/clientip"
)

const (
	headerXContentTypeOptions     = "X-Content-Type-Options"
	headerXFrameOptions           = "X-Frame-Options"
	headerReferrerPolicy          = "Referrer-Policy"
	headerContentSecurityPolicy   = "Content-Security-Policy"
	headerStrictTransportSecurity = "Strict-Transport-Security"
)

// SecurityHeaders sets security-related response headers. HSTS is only sent
// in production, where the site is served over TLS.
func SecurityHeaders(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(headerXContentTypeOptions, "nosniff")
			w.Header().Set(headerXFrameOptions, "DENY")
			w.Header().Set(headerReferrerPolicy, "same-origin")
			w.Header().Set(headerContentSecurityPolicy,
				"default-src 'self'; style-src 'self'; script-src 'self'; connect-src 'self' ws: wss:; frame-ancestors 'none'")
			if production {
				w.Header().Set(headerStrictTransportSecurity, "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

const (
	limiterSweepInterval = 5 * time.Minute
	limiterTTL           = 30 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// ipLimiters hands out one token bucket per client IP. Idle buckets are
// swept on access instead of by a background goroutine.
type ipLimiters struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	every     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiters(every time.Duration, burst int) *ipLimiters {
	return &ipLimiters{
		entries: make(map[string]*limiterEntry),
		every:   rate.Every(every),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterSweepInterval {
		for k, e := range l.entries {
			if now.Sub(e.lastUse) > limiterTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[ip] = e
	}
	e.lastUse = now
	return e.limiter.AllowN(now, 1)
}

// LoginLimiter throttles credential submissions (sign in and sign up) per IP.
type LoginLimiter struct {
	limiters   *ipLimiters
	onReject   func(r *http.Request)
	trustProxy bool
}

func NewLoginLimiter(every time.Duration, burst int) *LoginLimiter {
	return &LoginLimiter{limiters: newIPLimiters(every, burst)}
}

// OnReject registers a hook run for every throttled request.
func (l *LoginLimiter) OnReject(fn func(r *http.Request)) {
	l.onReject = fn
}

// TrustProxy keys buckets on the forwarded client address. Only enable it
// behind a reverse proxy that overwrites X-Forwarded-For.
func (l *LoginLimiter) TrustProxy(trust bool) {
	l.trustProxy = trust
}

// Limit only applies to POST requests; pages can always be viewed.
func (l *LoginLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		if !l.limiters.allow(clientip.RealClientIP(r, l.trustProxy)) {
			if l.onReject != nil {
				l.onReject(r)
			}
			w.Header().Set("Retry-After", "5")
			http.Error(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
