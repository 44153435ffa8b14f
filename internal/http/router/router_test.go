package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travelnest_backend/internal/gate"
	apphttp "travelnest_backend/internal/http"
	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"

	"github.com/gin-gonic/gin"
)

type testConfig struct{}

func (testConfig) GetHTTPAddr() string                     { return ":0" }
func (testConfig) GetCORSAllowAll() bool                   { return false }
func (testConfig) GetCORSOrigins() []string                { return nil }
func (testConfig) GetCORSAllowCreds() bool                 { return false }
func (testConfig) GetSessionCookieName() string            { return "travelnest_session" }
func (testConfig) GetSessionCookieDomain() string          { return "" }
func (testConfig) GetSessionCookieSecure() bool            { return false }
func (testConfig) GetSessionCookieSameSite() http.SameSite { return http.SameSiteLaxMode }
func (testConfig) GetSessionTTL() time.Duration            { return time.Hour }
func (testConfig) GetSessionRenewAfter() time.Duration     { return time.Hour }
func (testConfig) GetSessionSecret() string                { return "router-test-secret" }
func (testConfig) GetWebDistDir() string                   { return "" }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ok := func(c *gin.Context) { httpkit.OK(c, gin.H{"ok": true}) }
	ctx.API.GET("/bookings", ok)
	ctx.Admin.GET("/stats", ok)
}

func newTestEngine(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test", logger.WithOutput(io.Discard))
	policy, err := gate.NewPolicy(log)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	sessions := session.NewManager(testConfig{})

	engine := New(&apphttp.App{
		Config:   testConfig{},
		Logger:   log,
		Sessions: sessions,
		Policy:   policy,
		Modules:  []apphttp.Module{pingModule{}},
	})
	return engine, sessions
}

func bearer(t *testing.T, sessions *session.Manager, role string) string {
	t.Helper()
	token, _, err := sessions.Issue(session.Principal{UserID: "u-" + role, Role: role, Email: role + "@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return "Bearer " + token
}

func TestRouterAppliesPolicyAndAdminGuard(t *testing.T) {
	engine, sessions := newTestEngine(t)

	cases := []struct {
		name string
		path string
		role string
		want int
	}{
		{"health is public", "/api/health", "", http.StatusOK},
		{"bookings need a session", "/api/bookings", "", http.StatusUnauthorized},
		{"traveler lists bookings", "/api/bookings", session.RoleTraveler, http.StatusOK},
		{"anonymous admin api", "/api/admin/stats", "", http.StatusForbidden},
		{"traveler admin api", "/api/admin/stats", session.RoleTraveler, http.StatusForbidden},
		{"admin api", "/api/admin/stats", session.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.role != "" {
			req.Header.Set("Authorization", bearer(t, sessions, tc.role))
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d (%s)", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestRouterRedirectsPages(t *testing.T) {
	engine, sessions := newTestEngine(t)

	cases := []struct {
		path     string
		role     string
		location string
	}{
		{"/admin/packages", "", gate.HomePath},
		{"/admin/packages", session.RoleTraveler, gate.HomePath},
		{"/dashboard", "", gate.LoginPath},
		{"/login", session.RoleTraveler, gate.DashboardPath},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.role != "" {
			req.Header.Set("Authorization", bearer(t, sessions, tc.role))
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusFound || rec.Header().Get("Location") != tc.location {
			t.Fatalf("%s as %q: expected redirect to %s, got %d %q", tc.path, tc.role, tc.location, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestRouterSetsRequestID(t *testing.T) {
	engine, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(httpkit.HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Header().Get(httpkit.HeaderRequestID) != "req-42" {
		t.Fatalf("expected request id echoed, got %q", rec.Header().Get(httpkit.HeaderRequestID))
	}
}
