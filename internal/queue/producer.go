package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"bulkgen/internal/config"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
)

// Producer publishes generation jobs for the worker to pick up.
type Producer struct {
	config *config.Config
	logger *logger.Logger
	writer *kafka.Writer
}

// New creates a new job producer
func New(cfg *config.Config, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}

	return &Producer{
		config: cfg,
		logger: log,
		writer: writer,
	}
}

// Publish sends one job message, keyed by job id so retries for the same job
// land on the same partition.
func (p *Producer) Publish(ctx context.Context, msg models.JobMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal job message: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.JobID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish job message: %w", err)
	}

	p.logger.Debug("Published job %s to %s", msg.JobID, p.config.KafkaTopic)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
