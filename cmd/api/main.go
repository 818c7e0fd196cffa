// @title Image Judge API
// @version 1.0
// @description API for the AI-or-real image judgment study.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "image-judge/cmd/api/docs"
	"image-judge/internal/app"
	"image-judge/internal/config"
	"image-judge/internal/handler"
	"image-judge/internal/logger"
	"image-judge/internal/middleware"
	"image-judge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	images, err := app.LoadPool(cfg)
	if err != nil {
		appLogger.Fatal("Failed to load image pool", zap.Error(err))
	}
	appLogger.Info("Image pool loaded", zap.Int("images", len(images)))

	sessionRepo, cacheAdapter, closeSessions := app.NewSessionRepository(cfg)
	defer closeSessions()

	ctx := context.Background()
	resultStore, closeStores := app.NewResultStore(ctx, cfg, cacheAdapter)
	defer closeStores()

	authService := service.NewAuthService(cfg.JWT)
	sessionService := service.NewSessionService(sessionRepo, images, service.NewPersistenceGateway(resultStore), cfg.Persistence.Timeout)
	appLogger.Info("Services initialized", zap.String("wiring", app.Describe(cfg)), zap.Bool("identity", authService.Enabled()))

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	fiberApp.Use(middleware.RequestLogger())

	handler.RegisterRoutes(fiberApp, sessionService, authService)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := sessionService.Drain(shutdownCtx); err != nil {
		appLogger.Warn("Pending summary writes were abandoned", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
