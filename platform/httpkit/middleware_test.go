package httpkit

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travelnest_backend/platform/apperr"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"

	"github.com/gin-gonic/gin"
)

type testSessionConfig struct{}

func (testSessionConfig) GetSessionSecret() string            { return "secret" }
func (testSessionConfig) GetSessionTTL() time.Duration        { return time.Hour }
func (testSessionConfig) GetSessionRenewAfter() time.Duration { return 0 }
func (testSessionConfig) GetSessionCookieName() string        { return "travelnest_session" }
func (testSessionConfig) GetSessionCookieDomain() string      { return "" }
func (testSessionConfig) GetSessionCookieSecure() bool        { return false }
func (testSessionConfig) GetSessionCookieSameSite() http.SameSite {
	return http.SameSiteLaxMode
}

func newTestEngine(mgr *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("development", logger.WithOutput(io.Discard))
	r := gin.New()
	r.Use(RequestID(), RequestLogger(log), SessionLoader(mgr, testSessionConfig{}, log))
	r.GET("/whoami", func(c *gin.Context) {
		id := GetIdentity(c)
		OK(c, gin.H{"user": id.UserID(), "role": id.Role(), "auth": id.IsAuthenticated()})
	})
	r.GET("/admin", RequireRole(session.RoleAdmin), func(c *gin.Context) { OK(c, gin.H{"ok": true}) })
	r.GET("/mine", RequireAuth(), func(c *gin.Context) { OK(c, gin.H{"ok": true}) })
	return r
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestSessionLoaderReadsCookieAndBearer(t *testing.T) {
	mgr := session.NewManager(testSessionConfig{})
	token, _, err := mgr.Issue(session.Principal{UserID: "abc", Role: session.RoleTraveler})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r := newTestEngine(mgr)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "travelnest_session", Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if body := decode(t, rec); body["user"] != "abc" || body["auth"] != true {
		t.Fatalf("cookie session not loaded: %v", body)
	}
	if rec.Header().Get(HeaderRequestID) == "" {
		t.Fatalf("expected request id header")
	}

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if body := decode(t, rec); body["user"] != "abc" {
		t.Fatalf("bearer session not loaded: %v", body)
	}
}

func TestSessionLoaderTreatsGarbageAsAnonymous(t *testing.T) {
	r := newTestEngine(session.NewManager(testSessionConfig{}))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "travelnest_session", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	body := decode(t, rec)
	if body["auth"] != false || body["role"] != session.RoleGuest {
		t.Fatalf("expected anonymous identity, got %v", body)
	}
}

func TestRequireRoleAndAuth(t *testing.T) {
	mgr := session.NewManager(testSessionConfig{})
	token, _, _ := mgr.Issue(session.Principal{UserID: "abc", Role: session.RoleTraveler})
	r := newTestEngine(mgr)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mine", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body := decode(t, rec); body["message"] != MsgUnauthorized {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestHandleErrorMapsKindsAndHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err     error
		status  int
		message string
		code    string
	}{
		{apperr.Conflict("Slug already exists"), http.StatusConflict, "Slug already exists", apperr.CodeConflict},
		{apperr.Unauthorized("Role mismatch").WithCode(apperr.CodeRoleMismatch), http.StatusUnauthorized, "Role mismatch", apperr.CodeRoleMismatch},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, MsgInternal, ""},
		{apperr.Wrap(apperr.KindInternal, "store failure", errors.New("socket")), http.StatusInternalServerError, MsgInternal, ""},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		if !HandleError(c, tc.err) {
			t.Fatalf("expected handled")
		}
		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		body := decode(t, rec)
		if body["message"] != tc.message {
			t.Fatalf("%v: unexpected message %v", tc.err, body["message"])
		}
		if tc.code != "" && body["code"] != tc.code {
			t.Fatalf("%v: unexpected code %v", tc.err, body["code"])
		}
	}
}
