package staff

import (
	"milkroute/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, logger *zap.Logger) {
	staff := r.Group("/staff")
	staff.Use(middleware.AuthMiddleware())
	staff.Use(middleware.ContextLogger(logger))
	{
		staff.POST("/resolve", h.Resolve)

		admin := staff.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.GET("", h.GetAll)
			admin.GET("/:id", h.GetByID)
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}
