package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"disaster-response/internal/api"
	"disaster-response/internal/config"
	"disaster-response/internal/logger"
	"disaster-response/internal/modules/chatbot"
	"disaster-response/internal/modules/delivery"
	"disaster-response/internal/modules/inventory"
	"disaster-response/internal/modules/predictapi"
	"disaster-response/internal/modules/sos"
	"disaster-response/internal/modules/users"
	"disaster-response/internal/notify"
	"disaster-response/internal/predict"
	"disaster-response/pkg/email"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger := logger.New(cfg.Environment)
	defer zapLogger.Sync()

	e := echo.New()
	e.HideBanner = true

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Database Connection ---
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("unable to parse database configuration", zap.Error(err))
	}
	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		zapLogger.Fatal("unable to create connection pool", zap.Error(err))
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		zapLogger.Fatal("unable to ping database", zap.Error(err))
	}
	zapLogger.Info("connected to the database")

	// 4. --- Shared Collaborators ---
	hub := notify.NewHub(zapLogger)
	defer hub.Close()

	predictor := predict.NewClassifier()

	// The high-risk alert mailer is optional; without a sender address the
	// SOS workflow simply skips it.
	var alertMailer sos.AlertSender
	if cfg.AlertsFromEmail != "" && cfg.AlertsToEmail != "" {
		sesSender, err := email.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.AlertsFromEmail)
		if err != nil {
			zapLogger.Warn("SES sender unavailable, high-risk email alerts disabled", zap.Error(err))
		} else {
			mailer, err := email.NewAlertMailer(sesSender, cfg.AlertsToEmail)
			if err != nil {
				zapLogger.Warn("alert mailer setup failed, high-risk email alerts disabled", zap.Error(err))
			} else {
				alertMailer = mailer
			}
		}
	}

	// 5. --- Dependency Injection (Wiring everything up) ---
	// --- Users Module ---
	userRepo := users.NewRepository(dbPool)
	userService := users.NewService(userRepo, cfg.JWTSecret)
	userHandler := users.NewHandler(userService)

	// --- Inventory Module ---
	inventoryRepo := inventory.NewRepository(dbPool)
	inventoryService := inventory.NewService(inventoryRepo)
	inventoryHandler := inventory.NewHandler(inventoryService)

	// --- Delivery Module ---
	deliveryRepo := delivery.NewRepository(dbPool)
	deliveryService := delivery.NewService(deliveryRepo, inventoryService, hub, zapLogger)
	deliveryHandler := delivery.NewHandler(deliveryService)

	// --- SOS Module ---
	sosRepo := sos.NewRepository(dbPool)
	sosService := sos.NewService(sosRepo, userRepo, predictor, hub, alertMailer, zapLogger)
	sosHandler := sos.NewHandler(sosService)

	// --- Chatbot Module ---
	chatbotRepo := chatbot.NewRepository(dbPool)
	chatbotService := chatbot.NewService(chatbotRepo, zapLogger)
	chatbotHandler := chatbot.NewHandler(chatbotService)

	// --- Prediction + Notifications ---
	predictHandler := predictapi.NewHandler(predictor)
	notifyHandler := notify.NewHandler(hub, zapLogger)

	// 6. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret,
		userHandler,
		sosHandler,
		inventoryHandler,
		deliveryHandler,
		predictHandler,
		chatbotHandler,
		notifyHandler,
	)

	// 7. --- Start Server with graceful shutdown ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("server exiting")
}
