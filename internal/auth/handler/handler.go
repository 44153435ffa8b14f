package handler

import (
	"net/http"

	"travelnest_backend/internal/auth/service"
	"travelnest_backend/internal/auth/transport"
	"travelnest_backend/platform/config"
	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc     *service.Service
	cookies config.CookieConfig
	val     *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

func New(svc *service.Service, cookies config.CookieConfig, val *validator.Validator) *Handler {
	return &Handler{svc: svc, cookies: cookies, val: val}
}

// Login verifies credentials and sets the session cookie.
// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	sess, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password, req.Role)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.SetSessionCookie(c, h.cookies, sess.Token)
	httpkit.OK(c, service.SessionResponse(sess.Token, sess.Claims))
}

// Google signs in with a Google ID token.
// POST /api/auth/google
func (h *Handler) Google(c *gin.Context) {
	var req transport.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	sess, err := h.svc.SignInGoogle(c.Request.Context(), req.IDToken)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.SetSessionCookie(c, h.cookies, sess.Token)
	httpkit.OK(c, service.SessionResponse(sess.Token, sess.Claims))
}

// Logout discards the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side.
// POST /api/auth/logout
func (h *Handler) Logout(c *gin.Context) {
	httpkit.ClearSessionCookie(c, h.cookies)
	httpkit.OK(c, gin.H{"message": "Signed out"})
}

// Session returns the caller's current session, or a null user.
// GET /api/auth/session
func (h *Handler) Session(c *gin.Context) {
	claims := httpkit.GetClaims(c)
	if claims == nil {
		httpkit.OK(c, transport.SessionResponse{})
		return
	}
	httpkit.OK(c, service.SessionResponse("", claims))
}

// Register creates a traveler account.
// POST /api/register
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, res)
}

// UpdateMe edits the caller's own name or password.
// PATCH /api/users/me
func (h *Handler) UpdateMe(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), id.UserID(), id.Role(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, user)
}

// ListUsers returns all users.
// GET /api/admin/users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, users)
}

// UpdateUser changes another user's name or role.
// PATCH /api/admin/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	var req transport.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	user, err := h.svc.AdminUpdateUser(c.Request.Context(), c.Param("id"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, user)
}
