package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/sales-cockpit/assessment-service/internal/services"
	"github.com/sales-cockpit/assessment-service/internal/utils"
)

type StructureHandler struct {
	BaseHandler
	structureService services.StructureService
}

func NewStructureHandler(structureService services.StructureService, logger utils.Logger) *StructureHandler {
	return &StructureHandler{
		BaseHandler:      NewBaseHandler(logger),
		structureService: structureService,
	}
}

// CreateStructure creates a new test structure version
// @Summary Create test structure
// @Tags structures
// @Accept json
// @Produce json
// @Param structure body services.CreateStructureRequest true "Structure data"
// @Success 201 {object} services.StructureResponse
// @Failure 400 {object} ErrorResponse
// @Router /structures [post]
func (h *StructureHandler) CreateStructure(c *gin.Context) {
	var req services.CreateStructureRequest
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

	structure, err := h.structureService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, structure)
}

// GetStructure retrieves a test structure by ID
// @Summary Get test structure
// @Tags structures
// @Produce json
// @Param id path uint true "Structure ID"
// @Success 200 {object} services.StructureResponse
// @Failure 404 {object} ErrorResponse
// @Router /structures/{id} [get]
func (h *StructureHandler) GetStructure(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	structure, err := h.structureService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, structure)
}

// GetActiveStructure retrieves the active structure for a test type
// @Summary Get active test structure
// @Tags structures
// @Produce json
// @Param test_type path string true "Test type"
// @Success 200 {object} services.StructureResponse
// @Failure 404 {object} ErrorResponse
// @Router /structures/active/{test_type} [get]
func (h *StructureHandler) GetActiveStructure(c *gin.Context) {
	testType := c.Param("test_type")

	structure, err := h.structureService.GetActive(c.Request.Context(), testType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, structure)
}

// ListStructures lists test structures with filters
// @Summary List test structures
// @Tags structures
// @Produce json
// @Success 200 {object} services.StructureListResponse
// @Router /structures [get]
func (h *StructureHandler) ListStructures(c *gin.Context) {
	filters := parseStructureFilters(c)

	structures, err := h.structureService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, structures)
}

// UpdateStructure updates a structure's name or definition
// @Summary Update test structure
// @Tags structures
// @Accept json
// @Produce json
// @Param id path uint true "Structure ID"
// @Param structure body services.UpdateStructureRequest true "Update data"
// @Success 200 {object} services.StructureResponse
// @Failure 404 {object} ErrorResponse
// @Router /structures/{id} [put]
func (h *StructureHandler) UpdateStructure(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateStructureRequest
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

	structure, err := h.structureService.Update(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, structure)
}

// DeleteStructure soft-deletes an inactive structure
// @Summary Delete test structure
// @Tags structures
// @Param id path uint true "Structure ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /structures/{id} [delete]
func (h *StructureHandler) DeleteStructure(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.structureService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ActivateStructure makes the structure the active version of its type
// @Summary Activate test structure
// @Tags structures
// @Param id path uint true "Structure ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /structures/{id}/activate [post]
func (h *StructureHandler) ActivateStructure(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.structureService.Activate(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Structure activated"})
}

// DeactivateStructure withdraws a structure from active use
// @Summary Deactivate test structure
// @Tags structures
// @Param id path uint true "Structure ID"
// @Success 200 {object} SuccessResponse
// @Router /structures/{id}/deactivate [post]
func (h *StructureHandler) DeactivateStructure(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.structureService.Deactivate(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Structure deactivated"})
}

func parseStructureFilters(c *gin.Context) repositories.StructureFilters {
	filters := repositories.StructureFilters{
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if testType := c.Query("test_type"); testType != "" {
		filters.TestType = &testType
	}
	if activeStr := c.Query("is_active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			filters.IsActive = &active
		}
	}
	filters.Limit = parseIntQuery(c, "limit", 20)
	filters.Offset = parseIntQuery(c, "offset", 0)
	return filters
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	if value := c.Query(name); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return fallback
}
