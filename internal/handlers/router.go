package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sales-cockpit/assessment-service/internal/services"
	"github.com/sales-cockpit/assessment-service/internal/utils"
)

type HandlerManager struct {
	structureHandler    *StructureHandler
	assessmentHandler   *AssessmentHandler
	notificationHandler *NotificationHandler
}

func NewHandlerManager(
	structureService services.StructureService,
	assessmentService services.AssessmentService,
	exportService services.ExportService,
	notificationService services.NotificationService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		structureHandler:    NewStructureHandler(structureService, logger),
		assessmentHandler:   NewAssessmentHandler(assessmentService, exportService, logger),
		notificationHandler: NewNotificationHandler(notificationService, logger),
	}
}

// SetupRoutes sets up all API routes. authMiddleware resolves the caller's
// identity and places "user_id" into the gin context.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "assessment-service",
		})
	})

	v1 := router.Group("/api/v1")
	if authMiddleware != nil {
		v1.Use(authMiddleware)
	}
	{
		structures := v1.Group("/structures")
		{
			structures.POST("", hm.structureHandler.CreateStructure)
			structures.GET("", hm.structureHandler.ListStructures)
			structures.GET("/active/:test_type", hm.structureHandler.GetActiveStructure)
			structures.GET("/:id", hm.structureHandler.GetStructure)
			structures.PUT("/:id", hm.structureHandler.UpdateStructure)
			structures.DELETE("/:id", hm.structureHandler.DeleteStructure)
			structures.POST("/:id/activate", hm.structureHandler.ActivateStructure)
			structures.POST("/:id/deactivate", hm.structureHandler.DeactivateStructure)
		}

		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/stats", hm.assessmentHandler.GetAssessmentStats)
			assessments.GET("/export", hm.assessmentHandler.ExportAssessments)
			assessments.GET("/respondent/:respondent_id", hm.assessmentHandler.GetAssessmentsByRespondent)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)
			assessments.POST("/:id/submit", hm.assessmentHandler.SubmitAnswers)
			assessments.POST("/:id/rescore", hm.assessmentHandler.RescoreAssessment)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkNotificationRead)
		}
	}
}
