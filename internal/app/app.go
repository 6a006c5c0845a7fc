package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/alikamatu/artisan-app-sub000/database"
	"github.com/alikamatu/artisan-app-sub000/internal/config"
	"github.com/alikamatu/artisan-app-sub000/internal/handlers"
	"github.com/alikamatu/artisan-app-sub000/internal/logger"
	"github.com/alikamatu/artisan-app-sub000/internal/middleware"
	"github.com/alikamatu/artisan-app-sub000/internal/repositories"
	"github.com/alikamatu/artisan-app-sub000/internal/routes"
	"github.com/alikamatu/artisan-app-sub000/internal/services"
	"github.com/alikamatu/artisan-app-sub000/internal/store"
	"github.com/alikamatu/artisan-app-sub000/internal/validator"
)

func Run() {
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, and handlers onto a gin engine.
// Tests reuse it against an in-memory database.
func SetupRouter(gormDB *gorm.DB) *gin.Engine {
	gw := store.New(gormDB)

	userRepo := repositories.NewUserRepository(gw)
	jobRepo := repositories.NewJobRepository(gw)
	applicationRepo := repositories.NewApplicationRepository(gw)
	bookingRepo := repositories.NewBookingRepository(gw)
	reviewRepo := repositories.NewReviewRepository(gw)
	notificationRepo := repositories.NewNotificationRepository(gw)

	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo)
	jobService := services.NewJobService(jobRepo, userRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, userRepo, jobService, notificationService)
	bookingService := services.NewBookingService(bookingRepo, applicationRepo, jobRepo, notificationService)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, userRepo, notificationService)

	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, authService),
		JobHandler:          handlers.NewJobHandler(baseHandler, jobService),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, applicationService),
		BookingHandler:      handlers.NewBookingHandler(baseHandler, bookingService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, reviewService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, notificationService),
	}

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeGinRouter() *gin.Engine {
	if config.AppConfig != nil && config.AppConfig.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	return router
}
