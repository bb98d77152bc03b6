package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-portal/config"
	httpHandler "payment-portal/internal/adapter/http/handler"
	"payment-portal/internal/adapter/http/middleware"
	pgStorage "payment-portal/internal/adapter/storage/postgres"
	redisStorage "payment-portal/internal/adapter/storage/redis"
	"payment-portal/internal/core/domain"
	"payment-portal/internal/core/ports"
	"payment-portal/internal/service"
	"payment-portal/internal/workflow"
	"payment-portal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("PTL_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Payment Portal")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set (PTL_JWT_SECRET)")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	accountRepo := pgStorage.NewAccountRepo(pool)
	qrRepo := pgStorage.NewQRCodeRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	qrCache := redisStorage.NewQRListingCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(userRepo, accountRepo, transactor, hashSvc, tokenSvc, logger.Component(log, "auth"))
	accountSvc := service.NewAccountService(accountRepo)
	qrSvc := service.NewQRCodeService(qrRepo, qrCache, cfg.QR.CacheTTL, logger.Component(log, "qr_codes"))

	directory, err := workflow.NewStaticDirectory(recipientsFromConfig(cfg.Portal.Recipients))
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid recipient directory")
	}

	portalSvc, err := service.NewPortalService(service.PortalOptions{
		Directory: directory,
		Gallery: workflow.GalleryConfig{
			BaseURL: cfg.Portal.APIBaseURL,
			Timeout: cfg.Portal.FetchTimeout,
		},
		ErrorTTL:    cfg.Portal.ErrorMessageTTL,
		SuccessTTL:  cfg.Portal.SuccessMessageTTL,
		MaxSessions: cfg.Portal.MaxSessions,
		SessionTTL:  cfg.Portal.SessionTTL,
	}, logger.Component(log, "portal"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize portal")
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		AccountSvc:     accountSvc,
		QRSvc:          qrSvc,
		PortalSvc:      portalSvc,
		TokenSvc:       tokenSvc,
		RateLimiter:    rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Mode:           cfg.Server.Mode,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MaxUploadBytes: cfg.QR.MaxUploadBytes,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.CORS(cfg.Server.CORSAllowedOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	portalSvc.Shutdown()

	log.Info().Msg("Server exited")
}

// recipientsFromConfig maps configured directory entries, falling back to the
// built-in seed list when none are configured.
func recipientsFromConfig(entries []config.RecipientConfig) []domain.Recipient {
	if len(entries) == 0 {
		return workflow.DefaultRecipients()
	}
	out := make([]domain.Recipient, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Recipient{
			ID:            domain.RecipientID(e.ID),
			Name:          e.Name,
			AccountNumber: e.AccountNumber,
			Bank:          e.Bank,
			IsRecent:      e.Recent,
		})
	}
	return out
}
