// Package bookings provides the booking workflow bounded context.
package bookings

import (
	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/bookings/handler"
	"travelnest_backend/internal/bookings/ports"
	"travelnest_backend/internal/bookings/repository"
	"travelnest_backend/internal/bookings/service"
	"travelnest_backend/internal/events"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/internal/ratelimit"
	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"
	"travelnest_backend/platform/validator"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module is the bookings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the booking repository, service and handler.
func NewModule(database *mongo.Database, packages ports.PackageReader, users auth.Directory, phones phone.Normalizer, val *validator.Validator, eventBus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(database)
	svc := service.New(repo, packages, users, phones, eventBus, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "bookings"
}

// Service returns the booking service for the admin dashboard.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts booking routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.API.Group("/bookings", httpkit.RequireAuth())
	g.POST("", ctx.RateLimit(ratelimit.ActionBooking), m.handler.Create)
	g.GET("", m.handler.ListMine)
	g.GET("/summary", m.handler.Summary)
	g.GET("/:id", m.handler.Get)
	g.GET("/:id/invoice", m.handler.Invoice)
	g.PATCH("/:id", m.handler.Update)

	ctx.Admin.GET("/bookings", m.handler.ListAll)
}

var _ apphttp.Module = (*Module)(nil)
