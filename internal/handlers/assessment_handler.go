package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/sales-cockpit/assessment-service/internal/services"
	"github.com/sales-cockpit/assessment-service/internal/utils"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
	exportService     services.ExportService
}

func NewAssessmentHandler(
	assessmentService services.AssessmentService,
	exportService services.ExportService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
		exportService:     exportService,
	}
}

// CreateAssessment creates a new assessment against the active structure
// @Summary Create assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param assessment body services.CreateAssessmentRequest true "Assessment data"
// @Success 201 {object} services.AssessmentResponse
// @Failure 400 {object} ErrorResponse
// @Router /assessments [post]
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assessment)
}

// GetAssessment retrieves an assessment by ID
// @Summary Get assessment
// @Tags assessments
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} services.AssessmentResponse
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ListAssessments lists workspace assessments with filters
// @Summary List assessments
// @Tags assessments
// @Produce json
// @Param workspace_id query string true "Workspace ID"
// @Success 200 {object} services.AssessmentListResponse
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	workspaceID, ok := requireWorkspaceID(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	assessments, err := h.assessmentService.List(c.Request.Context(), workspaceID, parseAssessmentFilters(c), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessments)
}

// GetAssessmentsByRespondent lists one respondent's assessments
// @Summary List assessments by respondent
// @Tags assessments
// @Produce json
// @Param respondent_id path string true "Respondent ID"
// @Param workspace_id query string true "Workspace ID"
// @Success 200 {object} services.AssessmentListResponse
// @Router /assessments/respondent/{respondent_id} [get]
func (h *AssessmentHandler) GetAssessmentsByRespondent(c *gin.Context) {
	respondentID := ParseStringIDParam(c, "respondent_id")
	if respondentID == "" {
		return
	}

	workspaceID, ok := requireWorkspaceID(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	assessments, err := h.assessmentService.GetByRespondent(c.Request.Context(), workspaceID, respondentID, parseAssessmentFilters(c), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessments)
}

// SubmitAnswers submits the respondent's answers and scores them
// @Summary Submit assessment answers
// @Tags assessments
// @Accept json
// @Produce json
// @Param id path uint true "Assessment ID"
// @Param answers body services.SubmitAnswersRequest true "Answers keyed by question id"
// @Success 200 {object} services.AssessmentResponse
// @Failure 409 {object} ErrorResponse
// @Router /assessments/{id}/submit [post]
func (h *AssessmentHandler) SubmitAnswers(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting assessment answers", "assessment_id", id, "answer_count", len(req.Answers))

	assessment, err := h.assessmentService.Submit(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// RescoreAssessment recomputes a stored result from the persisted answers
// @Summary Rescore assessment
// @Tags assessments
// @Produce json
// @Param id path uint true "Assessment ID"
// @Success 200 {object} services.AssessmentResponse
// @Router /assessments/{id}/rescore [post]
func (h *AssessmentHandler) RescoreAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	assessment, err := h.assessmentService.Rescore(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// DeleteAssessment soft-deletes an assessment
// @Summary Delete assessment
// @Tags assessments
// @Param id path uint true "Assessment ID"
// @Success 204
// @Router /assessments/{id} [delete]
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.assessmentService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAssessmentStats returns workspace-level assessment statistics
// @Summary Get assessment statistics
// @Tags assessments
// @Produce json
// @Param workspace_id query string true "Workspace ID"
// @Success 200 {object} repositories.AssessmentStats
// @Router /assessments/stats [get]
func (h *AssessmentHandler) GetAssessmentStats(c *gin.Context) {
	workspaceID, ok := requireWorkspaceID(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.assessmentService.GetStats(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportAssessments downloads workspace results as an Excel or CSV file
// @Summary Export assessments
// @Tags assessments
// @Produce application/octet-stream
// @Param workspace_id query string true "Workspace ID"
// @Param format query string false "Export format: xlsx (default) or csv"
// @Success 200 {file} binary
// @Router /assessments/export [get]
func (h *AssessmentHandler) ExportAssessments(c *gin.Context) {
	workspaceID, ok := requireWorkspaceID(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	filters := parseAssessmentFilters(c)
	format := c.DefaultQuery("format", "xlsx")

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case "xlsx":
		data, err = h.exportService.ExportAssessmentsToExcel(c.Request.Context(), workspaceID, filters, userID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, err = h.exportService.ExportAssessmentsToCSV(c.Request.Context(), workspaceID, filters, userID)
		contentType = "text/csv"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("assessments-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func requireWorkspaceID(c *gin.Context) (string, bool) {
	workspaceID := c.Query("workspace_id")
	if workspaceID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "workspace_id is required",
		})
		return "", false
	}
	return workspaceID, true
}

func parseAssessmentFilters(c *gin.Context) repositories.AssessmentFilters {
	filters := repositories.AssessmentFilters{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if status := c.Query("status"); status != "" {
		s := models.AssessmentStatus(status)
		filters.Status = &s
	}
	if testType := c.Query("test_type"); testType != "" {
		filters.TestType = &testType
	}
	if respondent := c.Query("respondent_id"); respondent != "" {
		filters.Respondent = &respondent
	}
	if from := c.Query("date_from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = &parsed
		}
	}
	if to := c.Query("date_to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = &parsed
		}
	}
	filters.Limit = parseIntQuery(c, "limit", 20)
	filters.Offset = parseIntQuery(c, "offset", 0)
	return filters
}
