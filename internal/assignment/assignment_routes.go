package assignment

import (
	"milkroute/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, logger *zap.Logger) {
	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware())
	assignments.Use(middleware.ContextLogger(logger))
	assignments.Use(middleware.RequireRole("admin"))
	{
		assignments.POST("", middleware.RateLimitByUser(3, 10), h.Assign)
		assignments.DELETE("", middleware.RateLimitByUser(3, 10), h.Unassign)
		assignments.POST("/reconcile", middleware.RateLimitByUser(1, 3), h.Reconcile)
	}
}
