// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"travelnest_backend/platform/config"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// API is the /api route group. The role policy already applies to it.
	API *gin.RouterGroup
	// Admin is the /api/admin route group.
	Admin *gin.RouterGroup
	// Cookies configures the session cookie for modules that set it.
	Cookies config.CookieConfig
	// RateLimit returns attempt-limiting middleware for an action name.
	RateLimit func(action string) gin.HandlerFunc
}
