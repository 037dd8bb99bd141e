package shiftsession

import (
	"milkroute/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, logger *zap.Logger) {
	sessions := r.Group("/shift-sessions")
	sessions.Use(middleware.AuthMiddleware())
	sessions.Use(middleware.ContextLogger(logger))
	sessions.Use(middleware.RequireRole("staff"))
	{
		sessions.POST("", h.SelectShift)
		sessions.GET("/today", h.GetSession)
		sessions.GET("/clients", h.ListClients)
	}
}
