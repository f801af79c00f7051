package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"aiptrack/backend/pkg/response"
)

const visitorIdleTimeout = 10 * time.Minute

type visitor struct {
	limiter *rate.Limiter
	last    time.Time
}

// RateLimit applies a token bucket per client IP. Idle buckets are dropped
// lazily on the next request after visitorIdleTimeout.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var (
		mu        sync.Mutex
		visitors  = map[string]*visitor{}
		lastSweep = time.Now()
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > visitorIdleTimeout {
			for k, v := range visitors {
				if now.Sub(v.last) > visitorIdleTimeout {
					delete(visitors, k)
				}
			}
			lastSweep = now
		}
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
			visitors[ip] = v
		}
		v.last = now
		allow := v.limiter.AllowN(now, 1)
		mu.Unlock()

		if !allow {
			response.Error(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

// BodyLimit caps request bodies at n bytes; decoding a larger body fails.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
