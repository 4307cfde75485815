package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/services"
	"github.com/sales-cockpit/assessment-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         NewBaseHandler(logger),
		notificationService: notificationService,
	}
}

// ListNotifications returns the caller's notification feed
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param workspace_id query string true "Workspace ID"
// @Success 200 {object} services.NotificationListResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	workspaceID, ok := requireWorkspaceID(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)

	notifications, err := h.notificationService.List(c.Request.Context(), workspaceID, userID, limit, offset)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks one of the caller's notifications as read
// @Summary Mark notification read
// @Tags notifications
// @Param id path uint true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Notification marked as read"})
}
