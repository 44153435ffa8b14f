// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"travelnest_backend/internal/auth/handler"
	"travelnest_backend/internal/auth/repository"
	"travelnest_backend/internal/auth/service"
	"travelnest_backend/internal/events"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/internal/ratelimit"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"
	"travelnest_backend/platform/validator"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.AuthRepository
}

// NewModule creates and initializes the auth module with all its dependencies.
// verifier may be nil when Google sign-in is not configured.
func NewModule(database *mongo.Database, sessions *session.Manager, verifier service.GoogleVerifier, cookies config.CookieConfig, val *validator.Validator, eventBus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(database)
	svc := service.New(repo, sessions, verifier, eventBus, log)
	h := handler.New(svc, cookies, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the user repository for adapters.UserDirectory.
func (m *Module) Repository() repository.AuthRepository {
	return m.repo
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.API.Group("/auth")
	authGroup.POST("/login", ctx.RateLimit(ratelimit.ActionLogin), m.handler.Login)
	authGroup.POST("/google", ctx.RateLimit(ratelimit.ActionGoogle), m.handler.Google)
	authGroup.POST("/logout", m.handler.Logout)
	authGroup.GET("/session", m.handler.Session)

	ctx.API.POST("/register", ctx.RateLimit(ratelimit.ActionRegister), m.handler.Register)
	ctx.API.PATCH("/users/me", m.handler.UpdateMe)

	ctx.Admin.GET("/users", m.handler.ListUsers)
	ctx.Admin.PATCH("/users/:id", m.handler.UpdateUser)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
