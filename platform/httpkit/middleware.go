// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"travelnest_backend/platform/config"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// ContextClaimsKey is the gin context key for the verified session claims.
	ContextClaimsKey = "sessionClaims"
	// HeaderRequestID carries the per-request correlation ID.
	HeaderRequestID = "X-Request-ID"
)

// RequestID assigns a correlation ID to every request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger logs HTTP requests with timing. Errors recorded through
// HandleError are logged with the server-side cause.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		reqLog := log.WithContext(c.Request.Context())

		if last := c.Errors.Last(); last != nil && status >= http.StatusInternalServerError {
			reqLog.HTTPError(c.Request.Method, path, status, last.Err, clientIP)
		}
		reqLog.HTTPRequest(c.Request.Method, path, status, float64(latency.Milliseconds()), clientIP)
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// IPRateLimiter is a coarse per-IP token bucket in front of every route.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	log      *logger.Logger
}

// NewIPRateLimiter creates a new IP-based rate limiter.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
		log:   log,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	limiter, _ := i.limiters.LoadOrStore(ip, rate.NewLimiter(i.rate, i.burst))
	return limiter.(*rate.Limiter)
}

// RateLimit returns a middleware that rate limits by IP.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !i.getLimiter(ip).Allow() {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, "burst")
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Message: "Too many requests"})
			return
		}
		c.Next()
	}
}

// SessionLoader verifies the session cookie (or bearer token) when present
// and stores the claims on the context. Invalid tokens are treated as absent.
// Tokens older than the renew window are re-signed with the same claims.
func SessionLoader(mgr *session.Manager, cookies config.CookieConfig, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, fromCookie := readToken(c, cookies.GetSessionCookieName())
		if raw == "" {
			c.Next()
			return
		}

		claims, err := mgr.Parse(raw)
		if err != nil {
			if fromCookie {
				ClearSessionCookie(c, cookies)
			}
			c.Next()
			return
		}

		if fromCookie && mgr.NeedsRenewal(claims) {
			if token, renewed, err := mgr.Renew(claims); err == nil {
				SetSessionCookie(c, cookies, token)
				claims = renewed
			} else if log != nil {
				log.Warn("session renewal failed", "error", err)
			}
		}

		c.Set(ContextClaimsKey, claims)
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects requests without a session with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetClaims(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: MsgUnauthorized})
			return
		}
		c.Next()
	}
}

// RequireRole returns middleware that checks the session role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: MsgUnauthorized})
			return
		}
		c.Next()
	}
}

// SetSessionCookie writes the HTTP-only session cookie.
func SetSessionCookie(c *gin.Context, cfg config.CookieConfig, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.GetSessionCookieName(),
		Value:    token,
		Path:     "/",
		Domain:   cfg.GetSessionCookieDomain(),
		MaxAge:   int(cfg.GetSessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.GetSessionCookieSecure(),
		SameSite: cfg.GetSessionCookieSameSite(),
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cfg config.CookieConfig) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		Domain:   cfg.GetSessionCookieDomain(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.GetSessionCookieSecure(),
		SameSite: cfg.GetSessionCookieSameSite(),
	})
}

func readToken(c *gin.Context, cookieName string) (string, bool) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}
	if raw, ok := extractBearerToken(c.GetHeader("Authorization")); ok {
		return raw, false
	}
	return "", false
}

func extractBearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	rawToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if rawToken == "" {
		return "", false
	}

	return rawToken, true
}
