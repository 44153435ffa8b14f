package ratelimit

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Guard turns a Limiter into per-action gin middleware with fixed settings.
type Guard struct {
	limiter *Limiter
	limit   int
	window  time.Duration
	log     *logger.Logger
}

// NewGuard creates a guard applying limit attempts per window.
func NewGuard(limiter *Limiter, limit int, window time.Duration, log *logger.Logger) *Guard {
	return &Guard{limiter: limiter, limit: limit, window: window, log: log}
}

// Middleware limits the wrapped route under the given action name.
// Store failures let the request through.
func (g *Guard) Middleware(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		res, err := g.limiter.Consume(c.Request.Context(), ip, action, g.limit, g.window)
		if err != nil {
			g.log.WithContext(c.Request.Context()).Error("rate limit store failed", "action", action, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(g.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			wait := time.Until(res.ResetAt).Seconds()
			c.Header("Retry-After", strconv.Itoa(int(math.Max(1, math.Ceil(wait)))))
			g.log.RateLimitExceeded(ip, action)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpkit.ErrorResponse{Message: "Too many requests"})
			return
		}
		c.Next()
	}
}
