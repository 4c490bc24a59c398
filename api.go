// Package handler is the Vercel entrypoint. It serves the synchronous
// subset of the API: generation, validation and template helpers, plus
// read-only job listing straight over database/sql. Async jobs need the
// Kafka worker and are not available in this deployment.
package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"bulkgen/internal/config"
	"bulkgen/internal/generator"
	"bulkgen/internal/logger"
	"bulkgen/internal/models"
	"bulkgen/internal/services/bulksheet"
	"bulkgen/internal/sheet"
)

var (
	initOnce sync.Once
	router   *gin.Engine
	db       *sql.DB
	service  *bulksheet.Service
	log      *logger.Logger
)

// initDB opens the shared Postgres pool for job listing
func initDB() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	var err error
	db, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return err
	}

	return db.Ping()
}

func setup() {
	gin.SetMode(gin.ReleaseMode)

	cfg, _ := config.Load()
	if os.Getenv("OUTPUT_DIR") == "" {
		// serverless functions may only write under /tmp
		cfg.OutputDir = "/tmp/output"
	}

	log = logger.New(cfg.LogLevel)
	service = bulksheet.New(cfg, log)

	if err := initDB(); err != nil {
		log.Error("Database unavailable, job routes disabled: %v", err)
		db = nil
	}

	router = gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CORS
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Bulkgen API is running",
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/generate", generate)
		api.POST("/validate", validate)
		api.GET("/example", example)
		api.GET("/templates/parts", templateParts)
		api.POST("/templates/preview", templatePreview)

		jobs := api.Group("/jobs")
		{
			jobs.GET("", listJobs)
			jobs.GET("/:id", getJob)
			jobs.POST("", func(c *gin.Context) {
				c.JSON(http.StatusNotImplemented, gin.H{
					"error": "Async jobs are not available in the serverless deployment, use POST /api/v1/generate",
				})
			})
		}
	}
}

// Handler is the main entry point for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	router.ServeHTTP(w, r)
}

func generate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := resolveOverrides(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, check, err := service.Run(req)
	if err != nil {
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) || errors.Is(err, sheet.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("Generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate bulk sheet"})
		return
	}
	if check != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": check.Message, "code": check.Code, "field": check.Field})
		return
	}

	// The output file is ephemeral here, so offer it inline
	if c.Query("download") == "1" {
		c.FileAttachment(result.Path, filepath.Base(result.Path))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func validate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check, err := service.Validate(req)
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

func example(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": generator.ExampleRequest()})
}

func templateParts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": generator.TemplateCatalogs()})
}

func templatePreview(c *gin.Context) {
	var req struct {
		Template string   `json:"template"`
		Labels   []string `json:"labels"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template := req.Template
	if template == "" && len(req.Labels) > 0 {
		template = generator.BuildTemplate(req.Labels)
	}

	resp := gin.H{
		"template": template,
		"preview":  generator.PreviewName(template),
		"valid":    true,
	}
	if check := generator.CheckNameTemplate(template, generator.TemplateCampaign); check != nil {
		resp["valid"] = false
		resp["code"] = check.Code
		resp["message"] = check.Message
	}

	c.JSON(http.StatusOK, resp)
}

// resolveOverrides loads a stored bid override set over database/sql.
// Inline keyword bids on the request win.
func resolveOverrides(req *models.GenerateRequest) error {
	if req.OverrideSetID == "" {
		return nil
	}
	if db == nil {
		return fmt.Errorf("bid override sets need a database connection")
	}

	rows, err := db.Query("SELECT keyword, bid FROM bid_overrides WHERE set_id = $1", req.OverrideSetID)
	if err != nil {
		return fmt.Errorf("failed to load bid override set: %v", err)
	}
	defer rows.Close()

	merged := make(map[string]float64)
	for rows.Next() {
		var keyword string
		var bid float64
		if err := rows.Scan(&keyword, &bid); err != nil {
			return fmt.Errorf("failed to scan bid override: %v", err)
		}
		merged[keyword] = bid
	}
	if len(merged) == 0 {
		return fmt.Errorf("bid override set %s not found", req.OverrideSetID)
	}

	for keyword, bid := range req.KeywordBids {
		merged[keyword] = bid
	}
	req.KeywordBids = merged
	return nil
}

func listJobs(c *gin.Context) {
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	status := c.Query("status")
	where := ""
	args := []interface{}{}
	argIndex := 1
	if status != "" {
		where = fmt.Sprintf("WHERE status = $%d", argIndex)
		args = append(args, status)
		argIndex++
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM bulk_jobs "+where, args...).Scan(&total); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count jobs"})
		return
	}

	query := fmt.Sprintf(`
		SELECT id, status, COALESCE(requested_by, ''), COALESCE(format, ''),
		       unit_count, row_count, COALESCE(output_path, ''), COALESCE(error, ''),
		       created_at, updated_at, completed_at
		FROM bulk_jobs %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := db.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query jobs"})
		return
	}
	defer rows.Close()

	var jobs []models.BulkJob
	for rows.Next() {
		job, err := scanJob(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan job"})
			return
		}
		jobs = append(jobs, job)
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

func getJob(c *gin.Context) {
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not configured"})
		return
	}

	row := db.QueryRow(`
		SELECT id, status, COALESCE(requested_by, ''), COALESCE(format, ''),
		       unit_count, row_count, COALESCE(output_path, ''), COALESCE(error, ''),
		       created_at, updated_at, completed_at
		FROM bulk_jobs
		WHERE id = $1
	`, c.Param("id"))

	job, err := scanJob(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": job})
}

func scanJob(scan func(dest ...interface{}) error) (models.BulkJob, error) {
	var job models.BulkJob
	var completedAt sql.NullTime
	err := scan(&job.ID, &job.Status, &job.RequestedBy, &job.Format,
		&job.UnitCount, &job.RowCount, &job.OutputPath, &job.Error,
		&job.CreatedAt, &job.UpdatedAt, &completedAt)
	if err != nil {
		return models.BulkJob{}, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}
	return job, nil
}
