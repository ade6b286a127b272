package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailgenie/internal/config"
	"mailgenie/internal/gateway"
	"mailgenie/internal/handler"
	"mailgenie/internal/httpserver"
	"mailgenie/internal/service/email"
	"mailgenie/pkg/circuitbreaker"
	"mailgenie/pkg/logger"
	"mailgenie/pkg/otel"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := logger.NewLogger(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	gin.SetMode(gin.ReleaseMode)

	// Init tracing
	shutdownTracing, err := otel.Setup(otel.Config{
		Enabled:        cfg.Otel.Enabled,
		Endpoint:       cfg.Otel.Endpoint,
		ServiceName:    cfg.Otel.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Otel.Environment,
		SampleRatio:    cfg.Otel.SampleRatio,
	}, logger)
	if err != nil {
		logger.Fatal("Tracing setup failed", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("Tracer provider shutdown failed", zap.Error(err))
		}
	}()

	// Init upstream client
	var cb *circuitbreaker.CircuitBreaker
	if cbCfg := cfg.Upstream.CircuitBreaker; cbCfg.Enabled {
		cb = gateway.NewCircuitBreaker(circuitbreaker.Config{
			FailureThreshold:    cbCfg.FailureThreshold,
			SuccessThreshold:    cbCfg.SuccessThreshold,
			Timeout:             cbCfg.Timeout,
			HalfOpenMaxRequests: cbCfg.HalfOpenMaxRequests,
		})
	}
	aiGateway := gateway.NewClient(gateway.Options{
		URL:            cfg.Upstream.URL,
		Model:          cfg.Upstream.Model,
		APIKey:         cfg.Upstream.APIKey,
		Timeout:        cfg.Upstream.Timeout,
		CircuitBreaker: cb,
	}, logger)

	if cfg.Upstream.APIKey == "" {
		logger.Warn("AI_GATEWAY_API_KEY is not configured; generate requests will fail")
	}

	// Init service and handlers
	emailService := email.NewService(cfg.Upstream.APIKey, aiGateway, logger)
	generateHandler := handler.NewGenerateHandler(emailService, logger)

	router := httpserver.NewRouter(generateHandler, cfg.CORS, logger)
	srv := router.Server(cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("Starting MailGenie function server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		logger.Error("HTTP server failed", zap.Error(err))
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	<-errCh
	logger.Info("HTTP server stopped")
}
