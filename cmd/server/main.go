package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recipebox/internal/config"
	"recipebox/internal/handlers"
	"recipebox/internal/repository"
	"recipebox/internal/services"
	"recipebox/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	utils.BcryptCost = cfg.BcryptCost

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// 4. Run Migrations
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, "", logger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else if err := repository.AutoMigrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// 5. Initialize Session Store
	sessionStore := newSessionStore(cfg, logger)
	defer func() {
		if err := sessionStore.Close(); err != nil {
			logger.Error("Failed to close session store", "error", err)
		}
	}()

	// 6. Initialize Services
	store := repository.NewStore(db)
	auditService := services.NewAuditService(db, logger)
	authService := services.NewAuthService(store, store, sessionStore, auditService)
	recipeService := services.NewRecipeService(store, auditService)

	// 7. Initialize Handler
	h := handlers.NewHandler(cfg, logger, store, sessionStore, authService, recipeService)

	// 8. Setup Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter()

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Background Context for workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	auditDone := make(chan struct{})
	go func() {
		auditService.Start(workerCtx)
		close(auditDone)
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	var runErr error
	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	<-auditDone

	logger.Info("Server exiting")
	return runErr
}

// newSessionStore uses Redis when REDIS_URL is set and reachable and falls
// back to process memory otherwise.
func newSessionStore(cfg config.Config, logger *slog.Logger) services.SessionStore {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, keeping sessions in memory")
		return services.NewMemorySessionStore()
	}

	rdb, err := repository.InitRedis(cfg.RedisURL, cfg.RedisPassword, 0)
	if err != nil {
		logger.Warn("Failed to connect to Redis, keeping sessions in memory", "error", err)
		return services.NewMemorySessionStore()
	}
	return services.NewRedisSessionStore(rdb, cfg.SessionTTL, logger)
}
