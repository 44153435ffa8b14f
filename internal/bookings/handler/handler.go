package handler

import (
	"net/http"

	"travelnest_backend/internal/bookings/service"
	"travelnest_backend/internal/bookings/transport"
	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create books a package for the caller.
// POST /api/bookings
func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), id.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, res)
}

// ListMine lists the caller's bookings.
// GET /api/bookings
func (h *Handler) ListMine(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	res, err := h.svc.ListMine(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// Summary returns the caller's dashboard figures.
// GET /api/bookings/summary
func (h *Handler) Summary(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	res, err := h.svc.Summary(c.Request.Context(), id.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// Get returns one booking.
// GET /api/bookings/:id
func (h *Handler) Get(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id.UserID(), id.IsAdmin(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// Invoice returns the invoice for a booking.
// GET /api/bookings/:id/invoice
func (h *Handler) Invoice(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}
	res, err := h.svc.Invoice(c.Request.Context(), id.UserID(), id.IsAdmin(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// Update changes a booking's status or payment fields.
// PATCH /api/bookings/:id
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	res, err := h.svc.AdminUpdate(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// ListAll lists every booking.
// GET /api/admin/bookings
func (h *Handler) ListAll(c *gin.Context) {
	res, err := h.svc.ListAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}
