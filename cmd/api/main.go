package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merchant-pos/config"
	"merchant-pos/internal/adapter/gateway"
	httpHandler "merchant-pos/internal/adapter/http/handler"
	redisStorage "merchant-pos/internal/adapter/storage/redis"
	"merchant-pos/internal/core/ports"
	"merchant-pos/internal/service"
	"merchant-pos/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Merchant POS Gateway")

	ctx := context.Background()

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	secretStore := redisStorage.NewSecretStore(rdb)

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	passcodeSvc := service.NewArgon2PasscodeHasher()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	gatewayFactory := gateway.NewFactory(cfg.Gateway, logger.Component(log, "gateway"))
	sessionSvc := service.NewSessionService(
		gatewayFactory,
		secretStore,
		encSvc,
		passcodeSvc,
		tokenSvc,
		log,
	)
	saleSvc := service.NewSaleService(sessionSvc, log)
	historySvc := service.NewHistoryService(sessionSvc, log)
	vaultSvc := service.NewVaultService(sessionSvc, log)

	// Restore a persisted session, if any. Failure here is not fatal; the
	// merchant can always log in again.
	if restored, err := sessionSvc.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("Session restore failed")
	} else if restored {
		log.Info().Msg("Session restored from persisted credentials")
	}

	// Initialize health checkers
	redisHealth := redisStorage.NewHealthChecker(rdb)
	gatewayHealth := gateway.NewHealthChecker(cfg.Gateway)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SessionSvc:     sessionSvc,
		SaleSvc:        saleSvc,
		HistorySvc:     historySvc,
		VaultSvc:       vaultSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{redisHealth, gatewayHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	log.Info().Msg("Server exited")
}
