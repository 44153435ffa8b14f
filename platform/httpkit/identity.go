// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"travelnest_backend/platform/session"

	"github.com/gin-gonic/gin"
)

// Identity represents the caller's session identity.
// Handlers read it without touching the token or cookie directly.
type Identity interface {
	// UserID returns the authenticated user's hex object ID.
	UserID() string
	// Role returns the role carried by the session.
	Role() string
	Email() string
	Name() string
	// IsAdmin reports whether the session role is admin.
	IsAdmin() bool
	// IsAuthenticated returns true if a valid session was presented.
	IsAuthenticated() bool
}

type identity struct {
	claims *session.Claims
}

func (i *identity) UserID() string {
	if i.claims == nil {
		return ""
	}
	return i.claims.Subject
}

func (i *identity) Role() string {
	if i.claims == nil {
		return session.RoleGuest
	}
	return i.claims.Role
}

func (i *identity) Email() string {
	if i.claims == nil {
		return ""
	}
	return i.claims.Email
}

func (i *identity) Name() string {
	if i.claims == nil {
		return ""
	}
	return i.claims.Name
}

func (i *identity) IsAdmin() bool {
	return i.claims.IsAdmin()
}

func (i *identity) IsAuthenticated() bool {
	return i.claims != nil
}

// NewIdentity wraps session claims; nil claims yield an anonymous identity.
func NewIdentity(claims *session.Claims) Identity {
	return &identity{claims: claims}
}

// GetClaims returns the session claims loaded for this request, if any.
func GetClaims(c *gin.Context) *session.Claims {
	value, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*session.Claims)
	return claims
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if no session was loaded.
func GetIdentity(c *gin.Context) Identity {
	return NewIdentity(GetClaims(c))
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the caller is not authenticated, it aborts with 401 and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: MsgUnauthorized})
		return nil
	}
	return id
}
