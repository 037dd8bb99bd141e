package app

import (
	"context"
	"database/sql"

	"milkroute/internal/analytics"
	"milkroute/internal/assignment"
	"milkroute/internal/client"
	"milkroute/internal/delivery"
	"milkroute/internal/messaging/kafka"
	"milkroute/internal/settings"
	"milkroute/internal/shared/counter"
	"milkroute/internal/shiftsession"
	"milkroute/internal/staff"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	settingsRepo := settings.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(db)
	sessionRepo := shiftsession.NewRepository(gormDB)
	deliveryRepo := delivery.NewRepository(db)
	analyticsRepo := analytics.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Settings collaborator ---
	settingsProvider := settings.NewProvider(settingsRepo, rdb, logger)

	// --- Services ---
	assignmentService := assignment.NewService(db, assignmentRepo, staffRepo, clientRepo, outboxRepo, logger)

	// Client deletion detaches through the assignment service so the staff
	// side and outbox stay consistent.
	detachClient := client.UnassignerFunc(func(ctx context.Context, staffID, clientID string) error {
		_, err := assignmentService.Unassign(ctx, assignment.UnassignRequest{StaffID: staffID, ClientID: clientID})
		return err
	})

	clientService := client.NewService(clientRepo, counterRepo, settingsProvider, detachClient, logger)
	staffService := staff.NewService(staffRepo, assignmentRepo, settingsProvider, logger)
	sessionService := shiftsession.NewService(sessionRepo, staffRepo, assignmentRepo, clientRepo, settingsProvider, logger)
	deliveryService := delivery.NewService(db, deliveryRepo, staffRepo, clientRepo, assignmentRepo, outboxRepo, settingsProvider, logger)
	analyticsService := analytics.NewService(analyticsRepo, logger)

	// --- Handlers ---
	clientHandler := client.NewHandler(clientService)
	staffHandler := staff.NewHandler(staffService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	sessionHandler := shiftsession.NewHandler(sessionService)
	deliveryHandler := delivery.NewHandlerWithRedis(deliveryService, rdb)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		client.RegisterRoutes(api, clientHandler, logger)
		staff.RegisterRoutes(api, staffHandler, logger)
		assignment.RegisterRoutes(api, assignmentHandler, logger)
		shiftsession.RegisterRoutes(api, sessionHandler, logger)
		delivery.RegisterRoutes(api, deliveryHandler, rdb, logger)
		analytics.RegisterRoutes(api, analyticsHandler, logger)
	}

	return nil
}
