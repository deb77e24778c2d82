package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"webhook-verifier/internal/common/logging"
	"webhook-verifier/internal/config"
	"webhook-verifier/internal/handlers"
	"webhook-verifier/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.NewZapLogger(logging.LogConfig{
		Level: logging.ParseLevel(cfg.LogLevel),
		Name:  "webhook-verifier",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logging.SetGlobalLogger(logger)

	h := handlers.New(cfg, logger)
	srv := server.New(h.Router(), cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("Webhook verifier started",
		logging.Field{Key: "addr", Value: srv.Addr()},
		logging.Field{Key: "signature_header", Value: cfg.SignatureHeader},
		logging.Field{Key: "tolerance", Value: cfg.Tolerance.String()},
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("Shutting down", logging.Field{Key: "signal", Value: sig.String()})
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", err)
	}

	if zl, ok := logger.(*logging.ZapAdapter); ok {
		_ = zl.Sync()
	}
}
