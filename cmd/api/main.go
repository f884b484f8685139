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

	"brvm-market-api/internal/api/config"
	delivery "brvm-market-api/internal/api/delivery/http"
	apimiddleware "brvm-market-api/internal/api/delivery/http/middleware"
	_ "brvm-market-api/internal/api/docs"
	"brvm-market-api/internal/api/repository"
	"brvm-market-api/internal/api/service"
	"brvm-market-api/pkg/logger"
	"brvm-market-api/pkg/postgres"
	"brvm-market-api/pkg/redis"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the market API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Market API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	marketRepo := repository.NewMarketRepository(db.DB)
	companyRepo := repository.NewCompanyRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)

	// Initialize services
	marketSvc := service.NewMarketService(marketRepo, appLogger)
	companySvc := service.NewCompanyService(companyRepo, appLogger)
	userSvc := service.NewUserService(userRepo, appLogger)
	authSvc, err := service.NewAuthService(userRepo, cfg.Auth, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize auth service", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	e.Use(apimiddleware.RequestLogger(appLogger))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.API.AllowedOrigins,
	}))
	e.Use(apimiddleware.RateLimiter(cfg.API.RateLimitPerMinute))

	// Initialize handlers and routes
	requireAuth := apimiddleware.RequireAuth(authSvc, appLogger)
	apiV1 := e.Group("/api/v1")

	authHandler := delivery.NewAuthHandler(authSvc, appLogger)
	authGroup := apiV1.Group("/auth")
	authHandler.RegisterRoutes(authGroup)
	authProtected := apiV1.Group("/auth", requireAuth)
	authHandler.RegisterProtectedRoutes(authProtected)

	marketHandler := delivery.NewMarketHandler(marketSvc, appLogger)
	marketGroup := apiV1.Group("/market", requireAuth)
	marketHandler.RegisterRoutes(marketGroup)

	companyHandler := delivery.NewCompanyHandler(companySvc, appLogger)
	companiesGroup := apiV1.Group("/companies", requireAuth)
	companyHandler.RegisterRoutes(companiesGroup)

	userHandler := delivery.NewUserHandler(userSvc, appLogger)
	usersGroup := apiV1.Group("/users", requireAuth)
	userHandler.RegisterRoutes(usersGroup)

	e.GET("/health", func(c echo.Context) error {
		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err == nil {
			err = redisClient.Ping(c.Request().Context()).Err()
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unhealthy"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title BRVM Market API
// @version 1.0
// @description Sector statistics and market data for the BRVM exchange.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "market-api"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing market-api CLI: %s\n", err)
		os.Exit(1)
	}
}
