package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/narteyr/flashcards/internal/config"
	"github.com/narteyr/flashcards/internal/database"
	"github.com/narteyr/flashcards/internal/handler"
	"github.com/narteyr/flashcards/internal/llm"
	"github.com/narteyr/flashcards/internal/status"
	"github.com/narteyr/flashcards/internal/storage"
)

func main() {
	// Load .env file if exists
	godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage
	var backend storage.Backend
	switch cfg.StorageBackend {
	case "s3":
		backend, err = storage.NewS3Backend(ctx, &storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	default:
		backend = storage.NewLocalBackend(cfg.StoragePath)
	}

	// Resolve the LLM provider and build its chat model
	providerCfg, err := llm.ResolveProviderConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to resolve LLM provider: %v", err)
	}
	chatModel, err := llm.NewFactory().Create(ctx, providerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM provider %s: %v", providerCfg.Kind, err)
	}

	// Optional Redis-backed job status store
	var store status.Store
	if cfg.StatusStore == "redis" {
		store, err = status.NewRedisStoreFromURL(cfg.RedisURL, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	}

	// Setup router
	r, err := handler.SetupRouter(ctx, cfg, db, backend, chatModel, store)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	// Start server
	addr := cfg.Host + ":" + cfg.Port
	log.Printf("Flashcards service starting on %s (provider=%s)", addr, providerCfg.Kind)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
