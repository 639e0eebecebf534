package routes

import (
	"github.com/gin-gonic/gin"

	handler "revenue-reconciliation-backend/internal/handlers"
	service "revenue-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, reconService *service.ReconciliationService) {
	reconHandler := handler.NewReconciliationHandler(reconService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Audit routes
	audits := api.Group("/audits")
	audits.POST("", reconHandler.CreateAudit)
	audits.GET("/:auditId", reconHandler.GetAudit)
	audits.POST("/:auditId/process", reconHandler.ProcessAudit)
	audits.GET("/:auditId/anomalies", reconHandler.ListAnomalies)
	audits.POST("/:auditId/publish", reconHandler.PublishAudit)
	audits.DELETE("/:auditId", reconHandler.DeleteAudit)

	// Anomaly review
	api.PATCH("/anomalies/:id", reconHandler.UpdateAnomalyStatus)

	// Organization settings
	orgs := api.Group("/organizations")
	{
		orgs.GET("/:orgId/settings", reconHandler.GetOrganizationSettings)
		orgs.PUT("/:orgId/settings", reconHandler.SaveOrganizationSettings)
	}
}
