// Package http defines what the router needs from the composition root and
// the contract every HTTP-facing module implements.
package http

import (
	"context"

	"travelnest_backend/internal/events"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"

	"github.com/gin-gonic/gin"
)

// RouterConfig is the slice of configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.CookieConfig
	config.WebConfig
}

// HealthChecker backs GET /api/health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Authorizer guards the /api group.
type Authorizer interface {
	Middleware() gin.HandlerFunc
}

// ActionLimiter builds attempt-limiting middleware per action name.
type ActionLimiter interface {
	Middleware(action string) gin.HandlerFunc
}

// App is assembled in cmd/api and handed to router.New. Policy, Limits and
// Health may be nil in tests.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Sessions *session.Manager
	Policy   Authorizer
	Limits   ActionLimiter
	Modules  []Module
}
