package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"repairdesk/internal/adapter/http/dto/request"
	"repairdesk/internal/adapter/http/handlers"
	"repairdesk/internal/adapter/http/handlers/mocks"
	"repairdesk/internal/adapter/http/middleware"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/infrastructure/observability"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/mock/gomock"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if err := request.RegisterValidators(); err != nil {
		t.Fatalf("register validators: %v", err)
	}
	ctrl := gomock.NewController(t)
	jobs := mocks.NewMockIJobUseCase(ctrl)
	roles := mocks.NewMockIRoleAuthority(ctrl)
	secret := []byte("router-secret")
	metrics := observability.NewMetrics()

	router := NewRouter(Handlers{
		Jobs:   handlers.NewJobHandler(jobs, mocks.NewMockITransitionUseCase(ctrl), mocks.NewMockIAssignmentUseCase(ctrl)),
		Users:  handlers.NewUserHandler(roles, mocks.NewMockITechnicianUseCase(ctrl), mocks.NewMockIInviteUseCase(ctrl)),
		Events: handlers.NewEventsHandler(jobs, metrics),
	}, Options{JWTSecret: secret, Metrics: metrics})

	t.Run("health is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("v1 requires a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/jobs", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("static job routes win over :id", func(t *testing.T) {
		tok, _ := middleware.SignToken(secret, middleware.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"}})
		jobs.EXPECT().Export(gomock.Any(), "admin-1", gomock.Any()).Return([]entities.Job{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/jobs/export", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("me resolves through the role authority", func(t *testing.T) {
		tok, _ := middleware.SignToken(secret, middleware.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "viewer-1"}})
		roles.EXPECT().Identity(gomock.Any(), "viewer-1").Return(entities.User{ID: "viewer-1", Role: entities.RoleViewer}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"role":"viewer"`) {
			t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "repairdesk_http_requests_total") {
			t.Fatalf("unexpected metrics response %d", w.Code)
		}
	})
}
