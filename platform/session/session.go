// Package session issues and verifies the signed session token carried by the
// session cookie or an Authorization bearer header.
package session

import (
	"errors"
	"time"

	"travelnest_backend/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenType = "session"

// Role values stored on users and carried in session claims.
const (
	RoleTraveler = "traveler"
	RoleAdmin    = "admin"
	RoleGuest    = "guest"
)

var (
	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid session token")
)

// Principal is the identity a session is issued for.
type Principal struct {
	UserID string
	Role   string
	Email  string
	Name   string
}

// Claims is the signed claim set.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// Principal returns the identity carried by the claims.
func (c *Claims) Principal() Principal {
	return Principal{UserID: c.Subject, Role: c.Role, Email: c.Email, Name: c.Name}
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// Manager signs and parses HS256 session tokens.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	renewAfter time.Duration
	now        func() time.Time
}

// NewManager creates a manager from session configuration.
func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.GetSessionSecret()),
		ttl:        cfg.GetSessionTTL(),
		renewAfter: cfg.GetSessionRenewAfter(),
		now:        time.Now,
	}
}

// TTL returns the lifetime of newly issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a fresh token for the principal.
func (m *Manager) Issue(p Principal) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		Role:  p.Role,
		Email: p.Email,
		Name:  p.Name,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse verifies signature, type and expiry.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenType || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NeedsRenewal reports whether the token is old enough to be re-signed.
func (m *Manager) NeedsRenewal(claims *Claims) bool {
	if claims == nil || claims.IssuedAt == nil || m.renewAfter <= 0 {
		return false
	}
	return m.now().Sub(claims.IssuedAt.Time) >= m.renewAfter
}

// Renew re-signs the same principal without consulting the database.
func (m *Manager) Renew(claims *Claims) (string, *Claims, error) {
	return m.Issue(claims.Principal())
}
