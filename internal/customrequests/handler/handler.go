package handler

import (
	"net/http"

	"travelnest_backend/internal/customrequests/service"
	"travelnest_backend/internal/customrequests/transport"
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

// Create submits a tailored trip request.
// POST /api/custom-requests
func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateRequest
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

// ListAll lists every request for the admin panel.
// GET /api/custom-requests
func (h *Handler) ListAll(c *gin.Context) {
	res, err := h.svc.ListAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, res)
}

// ListMine lists the caller's requests.
// GET /api/custom-requests/mine
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

// Update changes status or admin note.
// PATCH /api/custom-requests/:id
func (h *Handler) Update(c *gin.Context) {
	var req transport.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), c.Param("id"), req); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.MessageResponse{Message: "Request updated"})
}
