package httpx

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 5 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware keeps one token bucket per client host. Health probes
// are never limited. Buckets idle for limiterIdleTTL are swept until the
// context passed to NewRateLimitMiddleware is done.
type RateLimitMiddleware struct {
	mu         sync.Mutex
	buckets    map[string]*clientBucket
	rate       rate.Limit
	burst      int
	retryAfter string
}

func NewRateLimitMiddleware(ctx context.Context, rps float64, burst int) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		buckets:    make(map[string]*clientBucket),
		rate:       rate.Limit(rps),
		burst:      burst,
		retryAfter: strconv.Itoa(int(math.Max(1, math.Ceil(1/rps)))),
	}

	go rl.sweep(ctx)
	return rl
}

func (rl *RateLimitMiddleware) sweep(ctx context.Context) {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for host, b := range rl.buckets {
				if now.Sub(b.lastSeen) > limiterIdleTTL {
					delete(rl.buckets, host)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimitMiddleware) allow(host string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[host]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.buckets[host] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

func (rl *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if surface(r.URL.Path) == "probe" || rl.allow(clientHost(r)) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", rl.retryAfter)
		JSONError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests")
	})
}
