package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"travelnest_backend/internal/auth"
	"travelnest_backend/internal/customrequests/repository"
	"travelnest_backend/internal/customrequests/service"
	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/phone"
	"travelnest_backend/platform/session"
	"travelnest_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createOnly struct {
	repository.Repository
	created int
}

func (r *createOnly) Create(ctx context.Context, p repository.CreateParams) (repository.CustomRequest, error) {
	r.created++
	return repository.CustomRequest{ID: primitive.NewObjectID(), Status: repository.StatusPending}, nil
}

type noUsers struct{}

func (noUsers) LookupUsers(ctx context.Context, ids []string) (map[string]auth.UserSummary, error) {
	return nil, nil
}

func (noUsers) CountUsers(ctx context.Context) (int64, error) { return 0, nil }

func newRouter(repo repository.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("development", logger.WithOutput(io.Discard))
	h := New(service.New(repo, noUsers{}, phone.NewNormalizer("US"), nil, log), validator.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextClaimsKey, &session.Claims{
			Role:             session.RoleTraveler,
			RegisteredClaims: jwt.RegisteredClaims{Subject: primitive.NewObjectID().Hex()},
		})
		c.Next()
	})
	r.POST("/api/custom-requests", h.Create)
	r.PATCH("/api/custom-requests/:id", h.Update)
	return r
}

func send(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateValidation(t *testing.T) {
	repo := &createOnly{}
	r := newRouter(repo)

	rec := send(r, http.MethodPost, "/api/custom-requests", map[string]interface{}{
		"destinations": []string{},
		"days":         0,
		"travelers":    2,
		"contactEmail": "alice@example.com",
		"contactPhone": "123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var invalid struct {
		Errors map[string][]string `json:"errors"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &invalid)
	for _, field := range []string{"destinations", "days", "contactPhone"} {
		if len(invalid.Errors[field]) == 0 {
			t.Fatalf("expected error for %s, got %v", field, invalid.Errors)
		}
	}

	rec = send(r, http.MethodPost, "/api/custom-requests", map[string]interface{}{
		"destinations": []string{"Lisbon"},
		"days":         5,
		"travelers":    2,
		"budget":       3000,
		"contactEmail": "alice@example.com",
		"contactPhone": "12345",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.created != 1 {
		t.Fatalf("expected one stored request, got %d", repo.created)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	r := newRouter(&createOnly{})
	rec := send(r, http.MethodPatch, "/api/custom-requests/"+primitive.NewObjectID().Hex(), map[string]string{"status": "archived"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
