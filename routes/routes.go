package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/oguzkaan/campus-events-backend/config"
	"github.com/oguzkaan/campus-events-backend/database"
	"github.com/oguzkaan/campus-events-backend/internal/auditlog"
	"github.com/oguzkaan/campus-events-backend/internal/auth"
	"github.com/oguzkaan/campus-events-backend/internal/category"
	"github.com/oguzkaan/campus-events-backend/internal/event"
	"github.com/oguzkaan/campus-events-backend/internal/media"
	"github.com/oguzkaan/campus-events-backend/internal/notification"
	"github.com/oguzkaan/campus-events-backend/internal/participation"
	"github.com/oguzkaan/campus-events-backend/internal/reports"
	"github.com/oguzkaan/campus-events-backend/middleware"
)

// SetupRouter wires every module and returns the configured engine.
func SetupRouter(cfg *config.Config) *gin.Engine {
	db := database.DB

	// Repositories
	userRepo := auth.NewRepository(db)
	auditRepo := auditlog.NewRepository(db)
	categoryRepo := category.NewRepository(db)
	eventRepo := event.NewRepository(db)
	participationRepo := participation.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// Shared collaborators
	auditSvc := auditlog.NewService(auditRepo)
	publisher := notification.NewPublisher()

	posterStore, err := media.NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Services
	authSvc := auth.NewService(userRepo, cfg)
	categorySvc := category.NewService(categoryRepo)
	eventSvc := event.NewService(eventRepo, auditSvc, posterStore, publisher)
	eventQuerySvc := event.NewQueryService(eventRepo)
	participationSvc := participation.NewService(participationRepo, eventRepo, auditSvc, publisher)
	notificationSvc := notification.NewService(notificationRepo)
	reportsSvc := reports.NewService(eventRepo, participationRepo, auditSvc)

	// Handlers
	authHandler := auth.NewHandler(authSvc)
	auditHandler := auditlog.NewHandler(auditSvc)
	categoryHandler := category.NewHandler(categorySvc)
	eventHandler := event.NewHandler(eventSvc)
	eventQueryHandler := event.NewQueryHandler(eventQuerySvc)
	participationHandler := participation.NewHandler(participationSvc)
	notificationHandler := notification.NewHandler(notificationSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded posters
	r.Static("/media/uploads", cfg.UploadDir)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// Public
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/events", eventQueryHandler.ListEvents)
	api.GET("/events/search", eventQueryHandler.SearchEvents)
	api.GET("/events/featured", eventQueryHandler.FeaturedEvents)
	api.GET("/events/upcoming", eventQueryHandler.UpcomingEvents)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PUT("/auth/me", authHandler.UpdateMe)

		// Registered before /events/:id so gin does not treat them as ids.
		protected.GET("/events/mine", eventQueryHandler.MyEvents)
		protected.GET("/events/joined", eventQueryHandler.JoinedEvents)

		// Participation
		protected.POST("/events/:id/join", participationHandler.JoinEvent)
		protected.POST("/events/:id/leave", participationHandler.LeaveEvent)
		protected.GET("/events/:id/participants", participationHandler.ListParticipants)
		protected.GET("/events/:id/participants/export", reportsHandler.ExportParticipants)

		// Event mutations: restricted to organizer roles, ownership is
		// enforced inside the service.
		writeRoutes := protected.Group("/")
		writeRoutes.Use(middleware.RBACMiddleware(auth.RoleClubAdmin, auth.RoleAdmin))
		{
			writeRoutes.POST("/events", eventHandler.CreateEvent)
			writeRoutes.PUT("/events/:id", eventHandler.UpdateEvent)
			writeRoutes.DELETE("/events/:id", eventHandler.DeleteEvent)
			writeRoutes.PUT("/events/:id/categories", eventHandler.AssignCategories)
			writeRoutes.POST("/events/:id/poster", eventHandler.UploadPoster)
		}

		// Category administration
		adminRoutes := protected.Group("/")
		adminRoutes.Use(middleware.RBACMiddleware(auth.RoleAdmin))
		{
			adminRoutes.POST("/categories", categoryHandler.CreateCategory)
			adminRoutes.DELETE("/categories/:id", categoryHandler.DeleteCategory)

			auditRoutes := adminRoutes.Group("/auditlogs")
			auditRoutes.GET("", auditHandler.GetAuditLogs)
		}

		// Notifications
		protected.GET("/notifications", notificationHandler.ListNotifications)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	}

	// Single-event lookup; gin resolves the static siblings above first.
	api.GET("/events/:id", eventHandler.GetEvent)

	return r
}
