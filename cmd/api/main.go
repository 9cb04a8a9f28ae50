package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ArowuTest/eventlottery-backend/api/routes"
	"github.com/ArowuTest/eventlottery-backend/internal/config"
	"github.com/ArowuTest/eventlottery-backend/internal/handlers"
	"github.com/ArowuTest/eventlottery-backend/internal/services"
	"github.com/ArowuTest/eventlottery-backend/internal/storage"
	"github.com/ArowuTest/eventlottery-backend/pkg/jwt"
)

func main() {
	// A missing .env is fine; the environment and config.yaml still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg)
	gin.SetMode(cfg.Server.Mode)

	tokens, err := jwt.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	if err != nil {
		slog.Error("Failed to initialize token service", "error", err)
		os.Exit(1)
	}

	repos, err := storage.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Store)
		defer cancel()
		if err := repos.Close(ctx); err != nil {
			slog.Error("Error closing storage", "error", err)
		}
	}()

	engine, err := services.NewLotteryEngine()
	if err != nil {
		slog.Error("Failed to seed lottery engine", "error", err)
		os.Exit(1)
	}

	// Initialize Services
	eventService := services.NewEventService(repos.Events, cfg.Timeouts.Store)
	waitlistService := services.NewWaitlistService(repos.Waitlists, cfg.Timeouts.Store)
	ledgerService := services.NewLedgerService(repos.Ledgers, cfg.Timeouts.Store)
	notificationService := services.NewNotificationService(repos.Notifications, cfg.Timeouts.Store)
	lotteryService := services.NewLotteryService(repos.Events, waitlistService, ledgerService,
		notificationService, engine, cfg.Lottery.DefaultDrawSize, cfg.Timeouts.Store)

	// Initialize Handlers
	handlerDeps := routes.HandlerDependencies{
		EventHandler:        handlers.NewEventHandler(eventService),
		WaitlistHandler:     handlers.NewWaitlistHandler(waitlistService),
		LotteryHandler:      handlers.NewLotteryHandler(lotteryService),
		LedgerHandler:       handlers.NewLedgerHandler(ledgerService),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
	}
	router := routes.SetupRouter(cfg, handlerDeps, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exiting")
}

// setupLogger installs a JSON handler in release mode and a text handler otherwise.
func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Server.Mode == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
