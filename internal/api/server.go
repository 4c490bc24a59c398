package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bulkgen/internal/api/handlers"
	"bulkgen/internal/api/middleware"
	"bulkgen/internal/config"
	"bulkgen/internal/database"
	"bulkgen/internal/logger"
	"bulkgen/internal/queue"
	"bulkgen/internal/services/bulksheet"
	"bulkgen/internal/services/wordpress"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, producer *queue.Producer) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Services
	authService := wordpress.New(cfg, logger)
	sheetService := bulksheet.New(cfg, logger)

	// Initialize handlers
	generateHandler := handlers.NewGenerateHandler(db.DB, logger, sheetService)
	jobsHandler := handlers.NewJobsHandler(db.DB, logger, producer)
	bidsHandler := handlers.NewBidsHandler(db.DB, logger)
	templatesHandler := handlers.NewTemplatesHandler(cfg, logger)
	authHandler := handlers.NewAuthHandler(authService)

	router.GET("/health", handlers.Health)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Auth probes stay outside the session gate
		auth := v1.Group("/auth")
		{
			auth.GET("/login-url", authHandler.LoginURL)
			auth.GET("/check", authHandler.Check)
		}

		protected := v1.Group("")
		protected.Use(middleware.Auth(authService))
		{
			protected.POST("/validate", generateHandler.Validate)
			protected.POST("/generate", generateHandler.Generate)
			protected.GET("/example", generateHandler.Example)

			// Jobs
			jobs := protected.Group("/jobs")
			{
				jobs.POST("", jobsHandler.Create)
				jobs.GET("", jobsHandler.List)
				jobs.GET("/:id", jobsHandler.Get)
				jobs.GET("/:id/download", jobsHandler.Download)
			}

			// Name templates
			templates := protected.Group("/templates")
			{
				templates.GET("/parts", templatesHandler.Parts)
				templates.POST("/preview", templatesHandler.Preview)
				templates.GET("/saved/:kind", templatesHandler.Saved)
				templates.POST("/saved", templatesHandler.Save)
			}

			// Keyword bid overrides
			bids := protected.Group("/bids")
			{
				bids.POST("/overrides", bidsHandler.Create)
				bids.GET("/overrides", bidsHandler.List)
				bids.DELETE("/overrides/:id", bidsHandler.Delete)
			}
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router for tests and serverless wrappers
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
