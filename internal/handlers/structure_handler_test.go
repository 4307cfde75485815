package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/services"
	"github.com/sales-cockpit/assessment-service/internal/utils"
	"github.com/stretchr/testify/assert"
)

type stubStructureService struct {
	services.StructureService
	getActiveResp *services.StructureResponse
	getActiveErr  error
}

func (s *stubStructureService) GetActive(ctx context.Context, testType string) (*services.StructureResponse, error) {
	return s.getActiveResp, s.getActiveErr
}

func newStructureTestRouter(svc services.StructureService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	manager := NewHandlerManager(svc, nil, nil, nil, utils.NewDevelopmentLogger())
	manager.SetupRoutes(router, fakeAuth(userID))
	return router
}

func TestStructureHandler_GetActiveStructure(t *testing.T) {
	t.Run("unknown test type maps to 400", func(t *testing.T) {
		svc := &stubStructureService{getActiveErr: services.ErrStructureInvalidType}
		router := newStructureTestRouter(svc, "user-1")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/structures/active/astrology", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown test type")
	})

	t.Run("no active version maps to 404", func(t *testing.T) {
		svc := &stubStructureService{getActiveErr: services.ErrNoActiveStructure}
		router := newStructureTestRouter(svc, "user-1")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/structures/active/disc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns the active structure", func(t *testing.T) {
		svc := &stubStructureService{
			getActiveResp: &services.StructureResponse{ID: 9, TestType: "disc", Version: 2, IsActive: true},
		}
		router := newStructureTestRouter(svc, "user-1")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/structures/active/disc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"version":2`)
	})
}
