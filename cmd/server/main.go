package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bikeshop/internal/config"
	"bikeshop/internal/customproduct"
	"bikeshop/internal/events"
	"bikeshop/internal/infrastructure/logger"
	"bikeshop/internal/infrastructure/mysql"
	"bikeshop/internal/part"
	"bikeshop/internal/product"
	"bikeshop/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	hub := events.NewHub(zapLogger)

	partsCtrl := part.NewModule(db, hub, zapLogger)
	productsCtrl := product.NewModule(db, hub, zapLogger)
	customProductsCtrl := customproduct.NewModule(db, hub, zapLogger)

	router := server.NewRouter(partsCtrl, productsCtrl, customProductsCtrl, hub, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
