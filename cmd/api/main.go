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

	httpAdapter "github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/http"
	mw "github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/http/middleware"
	"github.com/ahmedX999/customer-support-tickets-api/internal/adapters/primary/websocket"
	"github.com/ahmedX999/customer-support-tickets-api/internal/adapters/secondary/email"
	"github.com/ahmedX999/customer-support-tickets-api/internal/adapters/secondary/postgres"
	"github.com/ahmedX999/customer-support-tickets-api/internal/auth"
	"github.com/ahmedX999/customer-support-tickets-api/internal/config"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
	"github.com/ahmedX999/customer-support-tickets-api/internal/core/services"
	"github.com/ahmedX999/customer-support-tickets-api/internal/infrastructure/logging"
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

	// 3. Apply Schema Migrations
	if err := postgres.RunMigrations(cfg.Database.URL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database schema is current")

	// 4. Initialize Database Pool
	ctx := context.Background()
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

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

	// 5. Initialize Security & Real-time Components
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	hub := websocket.NewHub(logger)
	go hub.Run()

	// 6. Initialize Rate Limiters
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

	// 7. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Repositories (Secondary Adapters)
	userRepo := postgres.NewUserRepository(pool)
	ticketRepo := postgres.NewTicketRepository(pool)

	// Notification channels (Secondary Adapters). Without an SMTP host the
	// async channel degrades to a log-only sender, useful for local runs.
	var emailSender ports.EmailSender
	if cfg.SMTP.Host != "" {
		emailSender = email.NewSMTPSender(
			cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From,
		)
	} else {
		logger.Warn("SMTP_HOST not set, emails will only be logged")
		emailSender = email.NewLogSender(logger)
	}

	dispatcher := services.NewNotificationDispatcher(emailSender, hub, logger)

	// Services (Core)
	authService := services.NewAuthService(userRepo)
	ticketService := services.NewTicketService(ticketRepo, userRepo, dispatcher)

	// Handlers (Primary Adapters)
	authHandler := httpAdapter.NewAuthHandler(authService, tokenManager, errorHandler, logger)
	userHandler := httpAdapter.NewUserHandler(authService, errorHandler, logger)
	ticketHandler := httpAdapter.NewTicketHandler(ticketService, errorHandler, logger)

	wsOrigins := cfg.WebSocket.AllowedOrigins
	if len(wsOrigins) == 0 {
		wsOrigins = cfg.Server.AllowedOrigins
	}
	wsHandler := httpAdapter.NewWebSocketHandler(hub, tokenManager, wsOrigins, logger)
	healthHandler := httpAdapter.NewHealthHandler(pool, logger)

	// 8. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleLiveness)
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

		// WebSocket route (authentication is handled inside the handler)
		r.Get("/ws", wsHandler.HandleConnect)

		// Protected REST routes
		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware(tokenManager))
			r.Route("/tickets", ticketHandler.RegisterRoutes)
			r.Route("/users", userHandler.RegisterRoutes)
		})
	})

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	// Drain in-flight notification deliveries before exiting.
	dispatcher.Shutdown()

	logger.Info("server shutdown complete")
}
