// Package router assembles the gin engine from the application's modules.
package router

import (
	"context"
	"net/http"
	"time"

	"travelnest_backend/internal/gate"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New builds the engine: global middleware, the /api group guarded by the
// role policy, every module's routes, and the page gate for all other paths.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = false

	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	if app.Config.GetCORSAllowAll() || len(app.Config.GetCORSOrigins()) > 0 {
		engine.Use(cors.New(corsConfig(app.Config)))
	}
	engine.Use(httpkit.NewIPRateLimiter(rate.Limit(20), 40, app.Logger).RateLimit())
	engine.Use(httpkit.SessionLoader(app.Sessions, app.Config, app.Logger))

	api := engine.Group("/api")
	if app.Policy != nil {
		api.Use(app.Policy.Middleware())
	}

	api.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if app.Health != nil {
			if err := app.Health.Ping(ctx); err != nil {
				app.Logger.Error("health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rateLimit := func(string) gin.HandlerFunc { return func(c *gin.Context) { c.Next() } }
	if app.Limits != nil {
		rateLimit = app.Limits.Middleware
	}

	routerCtx := &apphttp.RouterContext{
		Engine:    engine,
		API:       api,
		Admin:     api.Group("/admin", httpkit.RequireRole(session.RoleAdmin)),
		Cookies:   app.Config,
		RateLimit: rateLimit,
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(routerCtx)
		app.Logger.Debug("module routes registered", "module", module.Name())
	}

	engine.NoRoute(gate.PageHandler(app.Config.GetWebDistDir()))

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID, "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.GetCORSOrigins()
	}
	return c
}
