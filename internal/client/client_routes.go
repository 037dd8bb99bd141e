package client

import (
	"milkroute/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, logger *zap.Logger) {
	clients := r.Group("/clients")
	clients.Use(middleware.AuthMiddleware())
	clients.Use(middleware.ContextLogger(logger))
	{
		clients.GET("", h.GetAll)
		clients.GET("/:id", h.GetByID)
		clients.GET("/:id/history", h.GetHistory)

		admin := clients.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("", middleware.RateLimitByUser(3, 10), h.Create)
			admin.PUT("/:id", middleware.RateLimitByUser(3, 10), h.Update)
			admin.DELETE("/:id", middleware.RateLimitByUser(3, 10), h.Delete)
		}
	}
}
