package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
	"github.com/sales-cockpit/assessment-service/internal/services"
	"github.com/sales-cockpit/assessment-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAssessmentService lets tests script service responses per call.
type stubAssessmentService struct {
	services.AssessmentService
	submitResp *services.AssessmentResponse
	submitErr  error
	getResp    *services.AssessmentResponse
	getErr     error
}

func (s *stubAssessmentService) Submit(ctx context.Context, id uint, req *services.SubmitAnswersRequest, userID string) (*services.AssessmentResponse, error) {
	return s.submitResp, s.submitErr
}

func (s *stubAssessmentService) GetByID(ctx context.Context, id uint, userID string) (*services.AssessmentResponse, error) {
	return s.getResp, s.getErr
}

func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func newTestRouter(svc services.AssessmentService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	manager := NewHandlerManager(nil, svc, nil, nil, utils.NewDevelopmentLogger())
	manager.SetupRoutes(router, fakeAuth(userID))
	return router
}

func TestAssessmentHandler_SubmitAnswers(t *testing.T) {
	t.Run("returns the scored assessment", func(t *testing.T) {
		svc := &stubAssessmentService{
			submitResp: &services.AssessmentResponse{
				ID:       42,
				TestType: "disc",
				Status:   models.AssessmentCompleted,
				Result:   &scoring.DISCResult{Profile: "DI"},
			},
		}
		router := newTestRouter(svc, "user-1")

		body, _ := json.Marshal(services.SubmitAnswersRequest{
			Answers: scoring.Answers{"q1_s1": 5},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/42/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"DI"`)
	})

	t.Run("already completed maps to 409", func(t *testing.T) {
		svc := &stubAssessmentService{submitErr: services.ErrAssessmentAlreadyCompleted}
		router := newTestRouter(svc, "user-1")

		body, _ := json.Marshal(services.SubmitAnswersRequest{
			Answers: scoring.Answers{"q1": 3},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/42/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("permission errors map to 403", func(t *testing.T) {
		svc := &stubAssessmentService{
			submitErr: services.NewPermissionError("user-1", 42, "assessment", "submit", "not respondent"),
		}
		router := newTestRouter(svc, "user-1")

		body, _ := json.Marshal(services.SubmitAnswersRequest{
			Answers: scoring.Answers{"q1": 3},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/42/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated requests are rejected", func(t *testing.T) {
		router := newTestRouter(&stubAssessmentService{}, "")

		body, _ := json.Marshal(services.SubmitAnswersRequest{
			Answers: scoring.Answers{"q1": 3},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/42/submit", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAssessmentHandler_GetAssessment(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		svc := &stubAssessmentService{getErr: services.ErrAssessmentNotFound}
		router := newTestRouter(svc, "user-1")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id maps to 400", func(t *testing.T) {
		router := newTestRouter(&stubAssessmentService{}, "user-1")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
