package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bulkgen/internal/api/middleware"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
	"bulkgen/internal/queue"
	"bulkgen/internal/services/bulksheet"
)

type JobsHandler struct {
	db       *gorm.DB
	logger   *logger.Logger
	producer *queue.Producer
}

func NewJobsHandler(db *gorm.DB, logger *logger.Logger, producer *queue.Producer) *JobsHandler {
	return &JobsHandler{
		db:       db,
		logger:   logger,
		producer: producer,
	}
}

// Create persists a pending job and hands it to the worker through Kafka.
func (h *JobsHandler) Create(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := json.Marshal(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := req.Format
	if format == "" {
		format = bulksheet.DefaultFormat
	}

	job := models.BulkJob{
		Status:      models.JobPending,
		RequestedBy: c.GetString(middleware.ContextUserID),
		Payload:     string(payload),
		Format:      format,
	}
	if err := h.db.Create(&job).Error; err != nil {
		h.logger.Error("Failed to create job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	msg := models.JobMessage{JobID: job.ID, RequestedBy: job.RequestedBy, Request: req}
	if err := h.producer.Publish(c.Request.Context(), msg); err != nil {
		h.logger.Error("Failed to publish job %s: %v", job.ID, err)
		h.db.Model(&job).Updates(map[string]interface{}{
			"status": models.JobFailed,
			"error":  "failed to enqueue job",
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"data": job})
}

func (h *JobsHandler) List(c *gin.Context) {
	var jobs []models.BulkJob

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	status := c.Query("status")

	query := h.db.Model(&models.BulkJob{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": jobs,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *JobsHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var job models.BulkJob
	if err := h.db.First(&job, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job})
}

// Download streams the generated sheet of a completed job.
func (h *JobsHandler) Download(c *gin.Context) {
	id := c.Param("id")

	var job models.BulkJob
	if err := h.db.First(&job, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		return
	}

	if job.Status != models.JobCompleted || job.OutputPath == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Job has no output yet", "status": job.Status})
		return
	}

	c.FileAttachment(job.OutputPath, filepath.Base(job.OutputPath))
}
