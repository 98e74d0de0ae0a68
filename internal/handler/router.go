package handler

import (
	"context"
	"net/http"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/narteyr/flashcards/internal/config"
	"github.com/narteyr/flashcards/internal/generate"
	"github.com/narteyr/flashcards/internal/ingest"
	"github.com/narteyr/flashcards/internal/repository"
	"github.com/narteyr/flashcards/internal/service"
	"github.com/narteyr/flashcards/internal/status"
	"github.com/narteyr/flashcards/internal/storage"
)

func SetupRouter(ctx context.Context, cfg *config.Config, db *gorm.DB, backend storage.Backend, chatModel einomodel.BaseChatModel, store status.Store) (*gin.Engine, error) {
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// The upload contract distinguishes wrong-method from not-found
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	// Health check endpoints
	r.GET("/health", healthCheck)
	r.GET("/ready", readinessCheck)
	r.GET("/live", livenessCheck)

	// Root endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":      "StudyHub Flashcards Service",
			"version":      "1.0.0",
			"status":       "running",
			"health_check": "/health",
		})
	})

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db)
	fileRepo := repository.NewFileRepository(db)
	chunkRepo := repository.NewChunkRepository(db)
	cardRepo := repository.NewFlashcardRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	materialRepo := repository.NewMaterialRepository(db)

	// Initialize the ingestion pipeline
	loaders, err := ingest.NewLoaderRegistry(ctx)
	if err != nil {
		return nil, err
	}
	chunker, err := ingest.NewChunker(ctx, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	generator := generate.NewGenerator(chatModel)

	if store == nil {
		store = status.NewGormStore(jobRepo)
	}
	tracker := status.NewTracker(store)

	// Initialize services
	uploadSvc := service.NewUploadService(
		backend, loaders, chunker, generator, tracker,
		fileRepo, chunkRepo, cardRepo,
		service.UploadServiceConfig{
			AllowedTypes: cfg.AllowedTypeList(),
			MaxFileSize:  cfg.MaxUploadSize,
			MaxCards:     cfg.MaxCards,
			Temperature:  float32(cfg.Temperature),
			LLMTimeout:   time.Duration(cfg.LLMTimeoutSecs) * time.Second,
		},
	)
	materialSvc := service.NewMaterialService(materialRepo, courseRepo, fileRepo)

	// Initialize handlers
	uploadHandler := NewUploadHandler(uploadSvc)
	jobHandler := NewJobHandler(uploadSvc)
	materialHandler := NewMaterialHandler(materialSvc)

	// API v1
	v1 := r.Group("/v1")
	{
		v1.POST("/uploads", uploadHandler.Upload)

		jobs := v1.Group("/jobs")
		{
			jobs.GET("/:id", jobHandler.Get)
			jobs.GET("/:id/flashcards", jobHandler.Flashcards)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", materialHandler.ListCourses)
			courses.POST("", materialHandler.CreateCourse)
		}

		materials := v1.Group("/materials")
		{
			materials.GET("", materialHandler.List)
			materials.POST("", materialHandler.Submit)
			materials.POST("/:id/approve", materialHandler.Approve)
			materials.POST("/:id/reject", materialHandler.Reject)
		}
	}

	return r, nil
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "flashcards",
	})
}

func readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

func livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
