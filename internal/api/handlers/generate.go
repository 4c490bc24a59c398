package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bulkgen/internal/generator"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
	"bulkgen/internal/services/bulksheet"
	"bulkgen/internal/sheet"
)

type GenerateHandler struct {
	db      *gorm.DB
	logger  *logger.Logger
	service *bulksheet.Service
}

func NewGenerateHandler(db *gorm.DB, logger *logger.Logger, service *bulksheet.Service) *GenerateHandler {
	return &GenerateHandler{
		db:      db,
		logger:  logger,
		service: service,
	}
}

// Generate runs a synchronous generation and returns counts, a preview and
// the written file path.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resolveOverrides(&req); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bid override set not found"})
			return
		}
		h.logger.Error("Failed to resolve bid overrides: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bid override set"})
		return
	}

	result, check, err := h.service.Run(req)
	if err != nil {
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) || errors.Is(err, sheet.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate bulk sheet"})
		return
	}
	if check != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": check.Message, "code": check.Code, "field": check.Field})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Validate runs the input checks without generating anything. Validation
// failures are a 200 with valid=false: the request itself was well formed.
func (h *GenerateHandler) Validate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := h.service.Validate(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if check != nil {
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"code":    check.Code,
			"field":   check.Field,
			"message": check.Message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// Example returns the demo request the form is pre-filled with.
func (h *GenerateHandler) Example(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": generator.ExampleRequest()})
}

// resolveOverrides merges a stored bid override set into the request.
// Keyword bids given inline on the request win over the stored set.
func (h *GenerateHandler) resolveOverrides(req *models.GenerateRequest) error {
	if req.OverrideSetID == "" {
		return nil
	}

	var set models.BidOverrideSet
	if err := h.db.Preload("Overrides").First(&set, "id = ?", req.OverrideSetID).Error; err != nil {
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
