package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/mealmeet-team/mealmeet/pkg/validator"

	"github.com/mealmeet-team/mealmeet/internal/adapter/handler"
	"github.com/mealmeet-team/mealmeet/internal/adapter/repository"
	"github.com/mealmeet-team/mealmeet/internal/infrastructure/cache"
	"github.com/mealmeet-team/mealmeet/internal/infrastructure/chat"
	"github.com/mealmeet-team/mealmeet/internal/infrastructure/database"
	"github.com/mealmeet-team/mealmeet/internal/infrastructure/external/geolocation"
	httpmw "github.com/mealmeet-team/mealmeet/internal/infrastructure/http/middleware"
	"github.com/mealmeet-team/mealmeet/internal/infrastructure/notification"
	invitationUsecase "github.com/mealmeet-team/mealmeet/internal/usecase/invitation"
	penaltyUsecase "github.com/mealmeet-team/mealmeet/internal/usecase/penalty"
	"github.com/mealmeet-team/mealmeet/pkg/config"
	"github.com/mealmeet-team/mealmeet/pkg/jwt"
)

// @title           MealMeet API
// @version         1.0
// @description     Invitation lifecycle and trust engine for the MealMeet social dining app

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize NATS for notification dispatch
	log.Println("📨 Connecting to NATS...")
	natsConn, err := notification.NewNATSConn(&cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	invitationRepo := repository.NewInvitationRepository(db)
	cancellationRepo := repository.NewCancellationRepository(db)
	penaltyRepo := repository.NewPenaltyRepository(db)
	userRepo := repository.NewUserRepository(db)
	venueRepo := repository.NewVenueRepository(db)

	// Initialize notification dispatcher
	log.Println("📣 Initializing notification dispatcher...")
	dispatcher := notification.NewDispatcher(notification.NewNATSPublisher(natsConn), cfg, logger)

	// Initialize geolocation client
	log.Println("📍 Initializing geolocation client...")
	locator := geolocation.New(&cfg.Geolocation)

	// Initialize chat purger
	chatPurger := chat.NewPurger(redisClient)

	// Initialize penalty service
	log.Println("⚖️  Initializing penalty service...")
	penaltyCache := cache.NewRedisStore(redisClient)
	penaltyService := penaltyUsecase.NewService(
		cancellationRepo,
		penaltyRepo,
		penaltyCache,
		cfg.Penalty.CacheTTL,
		cfg.Penalty.GraceWindow,
		logger,
	)

	// Initialize invitation services
	log.Println("🍽️  Initializing invitation services...")
	dailyLimit := invitationUsecase.NewDailyLimitValidator(invitationRepo)
	invitationService := invitationUsecase.NewService(invitationRepo, dailyLimit, penaltyService, logger)
	joinService := invitationUsecase.NewJoinService(invitationRepo, userRepo, dispatcher, logger)
	editService := invitationUsecase.NewEditService(invitationRepo, dispatcher, logger)
	completionService := invitationUsecase.NewCompletionService(
		invitationRepo,
		locator,
		dispatcher,
		cfg.Completion.MaxDistanceMeters,
		cfg.Geolocation.Timeout,
		logger,
	)
	cancelService := invitationUsecase.NewCancelService(
		invitationRepo,
		venueRepo,
		penaltyService,
		dispatcher,
		chatPurger,
		logger,
	)

	// Initialize JWT manager and auth middleware
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	authMW := httpmw.NewAuthMiddleware(jwtManager)

	// Initialize handlers
	log.Println("🚪 Initializing handlers...")
	invitationHandler := handler.NewInvitationHandler(invitationService, joinService, editService, cancelService)
	journeyHandler := handler.NewJourneyHandler(completionService, invitationService)
	penaltyHandler := handler.NewPenaltyHandler(penaltyService)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, authMW, invitationHandler, journeyHandler, penaltyHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
