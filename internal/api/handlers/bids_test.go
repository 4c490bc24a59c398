package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bulkgen/internal/logger"
	"bulkgen/internal/models"
)

func bidsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	h := NewBidsHandler(db, logger.New("error"))

	router := gin.New()
	router.POST("/overrides", h.Create)
	router.GET("/overrides", h.List)
	router.DELETE("/overrides/:id", h.Delete)
	return router, db
}

func uploadCSV(t *testing.T, router *gin.Engine, name, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "bids.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	if name != "" {
		require.NoError(t, mw.WriteField("name", name))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/overrides", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBidsCreateJSON(t *testing.T) {
	router, db := bidsRouter(t)

	w := doJSON(t, router, http.MethodPost, "/overrides", gin.H{
		"name":      "holiday bids",
		"overrides": map[string]float64{"usb hub": 1.25, "hdmi cable": 0.90},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sets []models.BidOverrideSet
	require.NoError(t, db.Preload("Overrides").Find(&sets).Error)
	require.Len(t, sets, 1)
	assert.Equal(t, "holiday bids", sets[0].Name)
	assert.Len(t, sets[0].Overrides, 2)
}

func TestBidsCreateUpload(t *testing.T) {
	router, _ := bidsRouter(t)

	w := uploadCSV(t, router, "uploaded", "Keyword,Bid\nusb hub,1.25\n")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "uploaded")
	assert.Contains(t, w.Body.String(), "usb hub")
}

func TestBidsCreateUploadNameFromFilename(t *testing.T) {
	router, _ := bidsRouter(t)

	w := uploadCSV(t, router, "", "Keyword,Bid\nusb hub,1.25\n")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "bids.csv")
}

func TestBidsCreateUploadMalformed(t *testing.T) {
	router, _ := bidsRouter(t)

	w := uploadCSV(t, router, "broken", "Keyword\nusb hub\n")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Keyword")
}

func TestBidsCreateEmpty(t *testing.T) {
	router, _ := bidsRouter(t)

	w := doJSON(t, router, http.MethodPost, "/overrides", gin.H{"name": "empty"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No keyword bids")
}

func TestBidsList(t *testing.T) {
	router, db := bidsRouter(t)

	set := models.BidOverrideSet{
		Name:      "spring",
		Overrides: []models.BidOverride{{Keyword: "usb hub", Bid: 1.10}},
	}
	require.NoError(t, db.Create(&set).Error)

	w := doJSON(t, router, http.MethodGet, "/overrides", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "spring")
	assert.Contains(t, w.Body.String(), "usb hub")
}

func TestBidsDelete(t *testing.T) {
	router, db := bidsRouter(t)

	set := models.BidOverrideSet{
		Name:      "doomed",
		Overrides: []models.BidOverride{{Keyword: "usb hub", Bid: 1.00}},
	}
	require.NoError(t, db.Create(&set).Error)

	w := doJSON(t, router, http.MethodDelete, "/overrides/"+set.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var sets int64
	db.Model(&models.BidOverrideSet{}).Count(&sets)
	assert.Equal(t, int64(0), sets)

	var overrides int64
	db.Model(&models.BidOverride{}).Count(&overrides)
	assert.Equal(t, int64(0), overrides)
}
