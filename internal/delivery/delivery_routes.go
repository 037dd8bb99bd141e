package delivery

import (
	"milkroute/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client, logger *zap.Logger) {
	deliveries := r.Group("/deliveries")
	deliveries.Use(middleware.AuthMiddleware())
	deliveries.Use(middleware.ContextLogger(logger))
	deliveries.Use(middleware.RequireRole("staff"))
	{
		deliveries.GET("", h.ListByDay)
		deliveries.POST("/delivered", middleware.Idempotency(rdb), h.RecordDelivered)
		deliveries.POST("/not-delivered", middleware.Idempotency(rdb), h.RecordNotDelivered)
	}
}
