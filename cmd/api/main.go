package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BradenHooton/reviewhub/internal/auth"
	"github.com/BradenHooton/reviewhub/internal/background"
	"github.com/BradenHooton/reviewhub/internal/config"
	"github.com/BradenHooton/reviewhub/internal/database"
	"github.com/BradenHooton/reviewhub/internal/handlers"
	middlewareCustom "github.com/BradenHooton/reviewhub/internal/middleware"
	"github.com/BradenHooton/reviewhub/internal/query"
	"github.com/BradenHooton/reviewhub/internal/repositories"
	"github.com/BradenHooton/reviewhub/internal/routes"
	"github.com/BradenHooton/reviewhub/internal/services"
	pkgauth "github.com/BradenHooton/reviewhub/pkg/auth"
	pkglogger "github.com/BradenHooton/reviewhub/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger = pkglogger.New(os.Stdout, cfg.Server.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.NewConnection(ctx, &cfg.Database, logger)
	if err != nil {
		cancel()
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, cfg.Database.DSN()); err != nil {
			cancel()
			db.Close()
			logger.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}
	cancel()
	defer db.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository()

	collation, err := query.NewCollation(cfg.Query.Locale)
	if err != nil {
		logger.Error("failed to initialize collation", slog.Any("error", err))
		os.Exit(1)
	}

	hasher := pkgauth.NewHasher(cfg.Auth.BcryptCost)
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenExpiry)
	auditLogger := pkglogger.NewAuditLogger(logger)

	// Login throttle
	throttle := services.NewLoginThrottle(loginAttemptRepo, services.LoginThrottleConfig{
		MaxFailedAttempts: cfg.Auth.MaxFailedAttempts,
		CooldownWindow:    cfg.Auth.CooldownWindow,
	}, logger)

	// Lockout notices
	var notifier services.LockoutNotifier = services.NoopLockoutNotifier{}
	if cfg.Email.LockoutNoticeEnabled {
		sesNotifier, err := services.NewSESLockoutNotifier(context.Background(), cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = sesNotifier
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, throttle, hasher, tokenManager, notifier, logger, auditLogger)
	userService := services.NewUserService(userRepo, hasher, collation, cfg.Query.DefaultPageSize, logger, auditLogger)
	reviewService := services.NewReviewService(reviewRepo, collation, cfg.Query.DefaultPageSize, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Initialize cleanup manager
	cleanupManager := background.NewCleanupManager(throttle, logger, cfg.Auth.AttemptPruneInterval)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, authHandler, userHandler, reviewHandler, tokenManager,
		middlewareCustom.RateLimitConfig{RequestsPerMinute: cfg.Auth.LoginRequestsPerMinute})

	// Health check with database
	router.Get("/health", handlers.Health(db, logger))

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Let pending lockout notices finish
	authService.Wait()

	logger.Info("server stopped gracefully")
}
