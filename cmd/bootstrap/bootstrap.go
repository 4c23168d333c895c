package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-crm-service/config"
	deliveryHttp "clinic-crm-service/internal/delivery/http"
	"clinic-crm-service/internal/delivery/http/handler"
	"clinic-crm-service/internal/delivery/http/middleware"
	"clinic-crm-service/internal/gateway"
	"clinic-crm-service/internal/infrastructure/cache"
	"clinic-crm-service/internal/infrastructure/database"
	"clinic-crm-service/internal/repository"
	"clinic-crm-service/internal/service"
	"clinic-crm-service/internal/usecase"
	"clinic-crm-service/pkg/jwt"
	"clinic-crm-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Memo        *cache.Memo
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	app.Memo = cache.NewMemo(redisClient, logrus.StandardLogger())

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, app.Memo)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, memo *cache.Memo) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize gateway client
	crmClient := gateway.NewClient(cfg.Gateway, log)

	// Initialize repositories and services
	deliveryLogRepo := repository.NewDeliveryLogRepository()
	deliveryService := service.NewDeliveryService(db, log, deliveryLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, crmClient, jwtService, redisClient)
	patientUsecase := usecase.NewPatientUsecase(log, crmClient)
	teamUsecase := usecase.NewTeamUsecase(log, crmClient, memo)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, crmClient, teamUsecase)
	templateUsecase := usecase.NewTemplateUsecase(log, crmClient)
	campaignUsecase := usecase.NewCampaignUsecase(log, crmClient, deliveryService, memo, cfg.Campaign.MessageCost)
	dashboardUsecase := usecase.NewDashboardUsecase(log, crmClient, memo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	templateHandler := handler.NewTemplateHandler(templateUsecase, customValidator)
	campaignHandler := handler.NewCampaignHandler(campaignUsecase, customValidator)
	teamHandler := handler.NewTeamHandler(teamUsecase)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		appointmentHandler,
		templateHandler,
		campaignHandler,
		teamHandler,
		dashboardHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Stop the memo cleanup loop before dropping Redis
	if app.Memo != nil {
		app.Memo.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
