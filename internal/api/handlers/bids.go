package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bulkgen/internal/api/middleware"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
	"bulkgen/internal/sheet"
)

type BidsHandler struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewBidsHandler(db *gorm.DB, logger *logger.Logger) *BidsHandler {
	return &BidsHandler{
		db:     db,
		logger: logger,
	}
}

// Create stores a named keyword-bid override set, from either a JSON body or
// an uploaded CSV with Keyword and Bid columns.
func (h *BidsHandler) Create(c *gin.Context) {
	var name string
	var bids map[string]float64

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()

		bids, err = sheet.ParseKeywordBids(f)
		if err != nil {
			if errors.Is(err, sheet.ErrMalformedOverrideFile) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse keyword bid file"})
			return
		}
		name = c.PostForm("name")
		if name == "" {
			name = file.Filename
		}
	} else {
		var req struct {
			Name      string             `json:"name"`
			Overrides map[string]float64 `json:"overrides"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		name = req.Name
		bids = req.Overrides
	}

	if len(bids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No keyword bids provided"})
		return
	}

	set := models.BidOverrideSet{
		Name:      name,
		CreatedBy: c.GetString(middleware.ContextUserID),
	}
	for keyword, bid := range bids {
		set.Overrides = append(set.Overrides, models.BidOverride{Keyword: keyword, Bid: bid})
	}

	if err := h.db.Create(&set).Error; err != nil {
		h.logger.Error("Failed to create bid override set: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bid overrides"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": set})
}

func (h *BidsHandler) List(c *gin.Context) {
	var sets []models.BidOverrideSet

	if err := h.db.Preload("Overrides").Order("created_at DESC").Find(&sets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bid overrides"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sets})
}

func (h *BidsHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	// sqlite does not enforce the cascade, so drop children explicitly.
	if err := h.db.Where("set_id = ?", id).Delete(&models.BidOverride{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bid overrides"})
		return
	}
	if err := h.db.Delete(&models.BidOverrideSet{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bid override set"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
