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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/http"
	mw "github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/http/middleware"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/primary/stream"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/secondary/postgres"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/adapters/secondary/webhook"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/auth"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/config"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/mailbox"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/ports"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/core/services"
	"github.com/lucascardosonobody/roleta-raspadinha2/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Database Pool
	ctx := context.Background()
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	// Apply database configuration
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	// 4. Initialize Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	registry := stream.NewRegistry(logger)
	go registry.Run()
	commandMailbox := mailbox.New(cfg.Stream.MailboxTTL, logger)

	// 5. Initialize Rate Limiters
	var generalRateLimiter, authRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})

		authRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.AuthRPS,
			BurstSize:         cfg.RateLimit.AuthBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
	}

	// 6. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	participantRepo := postgres.NewParticipantRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	prizeRepo := postgres.NewPrizeRepository(pool)
	drawLedger := postgres.NewDrawLedger(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	scheduleRepo := postgres.NewScheduleRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	// Notifier (Secondary Adapter)
	notifier := webhook.NewNotifier(webhook.Config{
		PrizeWinURL: cfg.Webhook.PrizeWinURL,
		ReferralURL: cfg.Webhook.ReferralURL,
		Timeout:     cfg.Webhook.Timeout,
	}, logger)

	// Services (Core)
	authService := services.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, tokenManager, logger)
	dispatchService := services.NewDispatchService(participantRepo, drawLedger, commandMailbox, registry, logger)
	drawService := services.NewDrawService(participantRepo, drawLedger, logger)
	participantService := services.NewParticipantService(participantRepo, reviewRepo, txManager, notifier, logger)
	prizeService := services.NewPrizeService(prizeRepo, logger)
	historyService := services.NewHistoryService(historyRepo, notifier, logger)
	scheduleService := services.NewScheduleService(scheduleRepo, logger)
	settingsService := services.NewSettingsService(settingsRepo, logger)
	dashboardService := services.NewDashboardService(participantRepo, historyRepo, logger)

	// Handlers (Primary Adapters)
	authHandler := httpAdapter.NewAuthHandler(authService, errorHandler, logger)
	commandHandler := httpAdapter.NewCommandHandler(dispatchService, errorHandler, logger)
	drawHandler := httpAdapter.NewDrawHandler(drawService, errorHandler, logger)
	participantHandler := httpAdapter.NewParticipantHandler(participantService, errorHandler, logger)
	prizeHandler := httpAdapter.NewPrizeHandler(prizeService, errorHandler, logger)
	historyHandler := httpAdapter.NewHistoryHandler(historyService, errorHandler, logger)
	drawScheduleHandler := httpAdapter.NewScheduleHandler(scheduleService, ports.ScheduleKindDraw, errorHandler, logger)
	scratchScheduleHandler := httpAdapter.NewScheduleHandler(scheduleService, ports.ScheduleKindScratchOff, errorHandler, logger)
	settingsHandler := httpAdapter.NewSettingsHandler(settingsService, errorHandler, logger)
	dashboardHandler := httpAdapter.NewDashboardHandler(dashboardService, notifier, errorHandler, logger)
	streamHandler := httpAdapter.NewStreamHandler(registry, cfg.Stream.HeartbeatInterval, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(registry, httpAdapter.WebSocketConfig{
		AllowedOrigins:  cfg.Stream.AllowedOrigins,
		ReadBufferSize:  cfg.Stream.ReadBufferSize,
		WriteBufferSize: cfg.Stream.WriteBufferSize,
		PingPeriod:      cfg.Stream.HeartbeatInterval,
	}, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, registry.Size, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg.Stream.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Apply general rate limiting if enabled
	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes with stricter rate limiting
		r.Group(func(r chi.Router) {
			if authRateLimiter != nil {
				r.Use(authRateLimiter.Middleware)
			}
			r.Route("/auth", authHandler.RegisterRoutes)
		})

		// Live command feeds (overlay clients carry no credentials)
		r.Get("/commands/stream", streamHandler.HandleStream)
		r.Get("/commands/ws", wsHandler.HandleConnect)

		// Public campaign routes
		r.Group(func(r chi.Router) {
			commandHandler.RegisterPublicRoutes(r)
			participantHandler.RegisterPublicRoutes(r)
			prizeHandler.RegisterPublicRoutes(r)
			drawHandler.RegisterPublicRoutes(r)
			historyHandler.RegisterPublicRoutes(r)
			drawScheduleHandler.RegisterPublicRoutes(r)
			scratchScheduleHandler.RegisterPublicRoutes(r)
		})

		// Protected admin routes
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			commandHandler.RegisterAdminRoutes(r)
			participantHandler.RegisterAdminRoutes(r)
			prizeHandler.RegisterAdminRoutes(r)
			drawHandler.RegisterAdminRoutes(r)
			historyHandler.RegisterAdminRoutes(r)
			drawScheduleHandler.RegisterAdminRoutes(r)
			scratchScheduleHandler.RegisterAdminRoutes(r)
			r.Route("/settings", settingsHandler.RegisterRoutes)
			r.Route("/dashboard", dashboardHandler.RegisterRoutes)
		})
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

// allowedOrigins falls back to a permissive wildcard when no origins are
// configured, which config.Validate only permits outside production.
func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
