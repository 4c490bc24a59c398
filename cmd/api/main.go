package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bulkgen/internal/api"
	"bulkgen/internal/config"
	"bulkgen/internal/database"
	"bulkgen/internal/logger"
	"bulkgen/internal/queue"
	"bulkgen/internal/sheet"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)
	defer logger.Sync()

	// Working directories
	if err := sheet.EnsureDirs(cfg.OutputDir, cfg.InputDir, cfg.TemplateDir); err != nil {
		logger.Fatal("Failed to create working directories: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Kafka producer for async jobs
	producer := queue.New(cfg, logger)

	// Initialize API server
	server := api.New(cfg, logger, db, producer)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error("Forced shutdown: %v", err)
	}

	producer.Close()
	db.Close()
}
