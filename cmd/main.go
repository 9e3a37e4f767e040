package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/oguzkaan/campus-events-backend/config"
	"github.com/oguzkaan/campus-events-backend/database"
	"github.com/oguzkaan/campus-events-backend/internal/auditlog"
	"github.com/oguzkaan/campus-events-backend/internal/auth"
	"github.com/oguzkaan/campus-events-backend/internal/category"
	"github.com/oguzkaan/campus-events-backend/internal/event"
	"github.com/oguzkaan/campus-events-backend/internal/notification"
	"github.com/oguzkaan/campus-events-backend/internal/participation"
	"github.com/oguzkaan/campus-events-backend/routes"
	"github.com/oguzkaan/campus-events-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("Redis unavailable, continuing without cache and rate-limit store: %v", err)
	}

	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&category.Category{},
		&event.Event{},
		&participation.Participation{},
		&notification.Notification{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Activity consumer materializes in-app notifications.
	notificationSvc := notification.NewService(notification.NewRepository(db))
	notification.StartConsumer(ctx, cfg, notificationSvc)

	router := routes.SetupRouter(cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
