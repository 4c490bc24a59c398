package worker

import (
	"context"
	"encoding/json"
	"time"

	"bulkgen/internal/config"
	"bulkgen/internal/database"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
	"bulkgen/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor *processors.JobProcessor
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "bulkgen-worker",
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	processor := processors.NewJobProcessor(cfg, logger, db)

	return &Worker{
		config:    cfg,
		logger:    logger,
		reader:    reader,
		processor: processor,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for jobs...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		// Parse job message
		var msg models.JobMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			w.logger.Error("Failed to parse job message: %v", err)
			continue
		}

		// Process job
		if err := w.processor.Process(msg); err != nil {
			w.logger.Error("Failed to process job: %v", err)
			continue
		}

		w.logger.Debug("Job processed successfully")
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
