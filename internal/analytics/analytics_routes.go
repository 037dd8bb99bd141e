package analytics

import (
	"milkroute/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, logger *zap.Logger) {
	reports := r.Group("/analytics")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.ContextLogger(logger))
	reports.Use(middleware.RequireRole("admin"))
	{
		reports.GET("/dashboard", h.GetDashboard)
		reports.GET("/trends", h.GetTrends)
		reports.GET("/non-delivery-reasons", h.GetNonDeliveryReasons)
	}
}
