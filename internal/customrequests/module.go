// Package customrequests provides the tailored trip request bounded context.
package customrequests

import (
	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/customrequests/handler"
	"travelnest_backend/internal/customrequests/repository"
	"travelnest_backend/internal/customrequests/service"
	"travelnest_backend/internal/events"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/internal/ratelimit"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"
	"travelnest_backend/platform/validator"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module is the custom requests module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

func NewModule(database *mongo.Database, users auth.Directory, phones phone.Normalizer, val *validator.Validator, eventBus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repository.New(database), users, phones, eventBus, log)
	return &Module{handler: handler.New(svc, val)}
}

func (m *Module) Name() string {
	return "customrequests"
}

// RegisterRoutes mounts custom request routes. Admin-only routes are
// enforced by the API policy.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.API.Group("/custom-requests")
	g.POST("", ctx.RateLimit(ratelimit.ActionCustomRequest), m.handler.Create)
	g.GET("", m.handler.ListAll)
	g.GET("/mine", m.handler.ListMine)
	g.PATCH("/:id", m.handler.Update)
}

var _ apphttp.Module = (*Module)(nil)
