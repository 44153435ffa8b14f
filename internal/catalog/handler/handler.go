package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelnest_backend/internal/catalog/service"
	"travelnest_backend/internal/catalog/transport"
	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/validator"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListPackages retrieves packages.
// GET /api/packages
func (h *Handler) ListPackages(c *gin.Context) {
	var req transport.ListPackagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.ListPackages(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetPackage retrieves a package by slug.
// GET /api/packages/:slug
func (h *Handler) GetPackage(c *gin.Context) {
	result, err := h.svc.GetPackageBySlug(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreatePackage creates a package.
// POST /api/packages
func (h *Handler) CreatePackage(c *gin.Context) {
	var req transport.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.CreatePackage(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdatePackage updates a package.
// PUT /api/packages/:id
func (h *Handler) UpdatePackage(c *gin.Context) {
	var req transport.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.UpdatePackage(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeletePackage deletes a package.
// DELETE /api/packages/:id
func (h *Handler) DeletePackage(c *gin.Context) {
	if err := h.svc.DeletePackage(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MessageResponse{Message: "Package deleted"})
}

// ListDestinations retrieves destinations.
// GET /api/destinations
func (h *Handler) ListDestinations(c *gin.Context) {
	result, err := h.svc.ListDestinations(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateDestination creates a destination.
// POST /api/destinations
func (h *Handler) CreateDestination(c *gin.Context) {
	var req transport.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.CreateDestination(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateDestination updates a destination.
// PUT /api/destinations/:id
func (h *Handler) UpdateDestination(c *gin.Context) {
	var req transport.UpdateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.UpdateDestination(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteDestination deletes a destination.
// DELETE /api/destinations/:id
func (h *Handler) DeleteDestination(c *gin.Context) {
	if err := h.svc.DeleteDestination(c.Request.Context(), c.Param("id")); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MessageResponse{Message: "Destination deleted"})
}

// ListBlogPosts retrieves blog posts.
// GET /api/blog
func (h *Handler) ListBlogPosts(c *gin.Context) {
	result, err := h.svc.ListBlogPosts(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetBlogPost retrieves a blog post by slug.
// GET /api/blog/:slug
func (h *Handler) GetBlogPost(c *gin.Context) {
	result, err := h.svc.GetBlogPost(c.Request.Context(), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateBlogPost publishes a blog post.
// POST /api/blog
func (h *Handler) CreateBlogPost(c *gin.Context) {
	var req transport.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.CreateBlogPost(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// PresignUpload returns a presigned image upload URL.
// POST /api/admin/uploads/presign
func (h *Handler) PresignUpload(c *gin.Context) {
	var req transport.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.PresignUpload(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
