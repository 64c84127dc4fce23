package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"binance-order-ledger/internal/api"
	"binance-order-ledger/internal/binance"
	"binance-order-ledger/internal/config"
	"binance-order-ledger/internal/database"
	"binance-order-ledger/internal/ledger"
	"binance-order-ledger/internal/logger"
	"binance-order-ledger/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A .env file is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		// We can't use the logger here because it's not initialized yet.
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("Configuration loaded")

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.", zap.String("driver", db.Dialector.Name()))

	restClient := binance.NewRestClient(&cfg.Binance, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	serverTime, err := restClient.GetServerTime(checkCtx)
	cancel()
	if err != nil {
		log.Fatal("Failed to connect to Binance API", zap.Error(err))
	}
	log.Info("Successfully connected to Binance API.", zap.Int64("server_time", serverTime))

	service := ledger.NewService(log, store.New(db), restClient)
	server := api.NewServer(cfg.Server, service, log)
	server.Start()

	<-ctx.Done()
	log.Info("Shutdown signal received, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("API server shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Order ledger has been shut down.")
}
