package processors

import (
	"fmt"
	"time"

	"bulkgen/internal/config"
	"bulkgen/internal/database"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
	"bulkgen/internal/services/bulksheet"
)

type JobProcessor struct {
	config  *config.Config
	logger  *logger.Logger
	db      *database.Database
	service *bulksheet.Service
}

func NewJobProcessor(cfg *config.Config, logger *logger.Logger, db *database.Database) *JobProcessor {
	return &JobProcessor{
		config:  cfg,
		logger:  logger,
		db:      db,
		service: bulksheet.New(cfg, logger),
	}
}

// Process runs one queued generation job and records the outcome on its row.
// Validation failures end the job as failed but are not processing errors:
// the job reached a final state.
func (p *JobProcessor) Process(msg models.JobMessage) error {
	p.logger.Info("Processing job %s", msg.JobID)

	if err := p.db.DB.Model(&models.BulkJob{}).
		Where("id = ?", msg.JobID).
		Update("status", models.JobRunning).Error; err != nil {
		return fmt.Errorf("failed to mark job %s running: %w", msg.JobID, err)
	}

	req := msg.Request
	if err := p.resolveOverrides(&req); err != nil {
		p.failJob(msg.JobID, err.Error())
		return nil
	}

	result, check, err := p.service.Run(req)
	if err != nil {
		p.failJob(msg.JobID, err.Error())
		return nil
	}
	if check != nil {
		p.failJob(msg.JobID, check.Message)
		return nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.JobCompleted,
		"unit_count":   result.Units,
		"row_count":    result.Rows,
		"output_path":  result.Path,
		"completed_at": &now,
	}
	if err := p.db.DB.Model(&models.BulkJob{}).Where("id = ?", msg.JobID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update job %s: %w", msg.JobID, err)
	}

	p.logger.Info("Job %s completed: %d rows across %d units -> %s",
		msg.JobID, result.Rows, result.Units, result.Path)
	return nil
}

// resolveOverrides merges a stored bid override set into the request, same
// rules as the synchronous endpoint: inline keyword bids win.
func (p *JobProcessor) resolveOverrides(req *models.GenerateRequest) error {
	if req.OverrideSetID == "" {
		return nil
	}

	var set models.BidOverrideSet
	if err := p.db.DB.Preload("Overrides").First(&set, "id = ?", req.OverrideSetID).Error; err != nil {
		return fmt.Errorf("failed to load bid override set %s: %w", req.OverrideSetID, err)
	}

	merged := set.BidMap()
	if merged == nil {
		merged = make(map[string]float64)
	}
	for keyword, bid := range req.KeywordBids {
		merged[keyword] = bid
	}
	req.KeywordBids = merged
	return nil
}

func (p *JobProcessor) failJob(id, message string) {
	now := time.Now()
	err := p.db.DB.Model(&models.BulkJob{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       models.JobFailed,
		"error":        message,
		"completed_at": &now,
	}).Error
	if err != nil {
		p.logger.Error("Failed to mark job %s failed: %v", id, err)
	}
	p.logger.Error("Job %s failed: %s", id, message)
}
