// Package admin provides the admin dashboard module.
package admin

import (
	"travelnest_backend/internal/admin/handler"
	"travelnest_backend/internal/admin/ports"
	"travelnest_backend/internal/admin/service"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/platform/logger"
)

type Module struct {
	handler *handler.Handler
}

func NewModule(bookings ports.BookingStats, users ports.UserCounter, packages ports.PackageCounter, log *logger.Logger) *Module {
	return &Module{handler: handler.New(service.New(bookings, users, packages, log))}
}

func (m *Module) Name() string {
	return "admin"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/stats", m.handler.Stats)
}

var _ apphttp.Module = (*Module)(nil)
