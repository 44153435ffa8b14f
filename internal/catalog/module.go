// Package catalog provides the catalog bounded context module: packages,
// destinations, blog posts and image uploads.
package catalog

import (
	"travelnest_backend/internal/catalog/handler"
	"travelnest_backend/internal/catalog/repository"
	"travelnest_backend/internal/catalog/service"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/validator"

	"go.mongodb.org/mongo-driver/mongo"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module. images may be nil.
func NewModule(database *mongo.Database, images service.ImageStore, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(database)
	svc := service.New(repo, images, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapters and seeding.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.API.GET("/packages", m.handler.ListPackages)
	ctx.API.GET("/packages/:slug", m.handler.GetPackage)
	ctx.API.POST("/packages", m.handler.CreatePackage)
	ctx.API.PUT("/packages/:id", m.handler.UpdatePackage)
	ctx.API.DELETE("/packages/:id", m.handler.DeletePackage)

	ctx.API.GET("/destinations", m.handler.ListDestinations)
	ctx.API.POST("/destinations", m.handler.CreateDestination)
	ctx.API.PUT("/destinations/:id", m.handler.UpdateDestination)
	ctx.API.DELETE("/destinations/:id", m.handler.DeleteDestination)

	ctx.API.GET("/blog", m.handler.ListBlogPosts)
	ctx.API.GET("/blog/:slug", m.handler.GetBlogPost)
	ctx.API.POST("/blog", m.handler.CreateBlogPost)

	ctx.Admin.POST("/uploads/presign", m.handler.PresignUpload)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
