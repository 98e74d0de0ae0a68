package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Host    string `mapstructure:"HOST"`
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	// Environment
	Environment string `mapstructure:"ENVIRONMENT"`

	// Database
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Job status store: "gorm", "redis" or "memory"
	StatusStore string `mapstructure:"STATUS_STORE"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	// File storage: "local" or "s3"
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	StoragePath    string `mapstructure:"STORAGE_PATH"`
	S3Bucket       string `mapstructure:"S3_BUCKET"`
	S3Region       string `mapstructure:"S3_REGION"`
	S3Endpoint     string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey    string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey    string `mapstructure:"S3_SECRET_KEY"`

	// Upload validation
	MaxUploadSize int64  `mapstructure:"MAX_UPLOAD_SIZE"`
	AllowedTypes  string `mapstructure:"ALLOWED_TYPES"` // comma-separated

	// Chunking
	ChunkSize    int `mapstructure:"CHUNK_SIZE"`
	ChunkOverlap int `mapstructure:"CHUNK_OVERLAP"`

	// Generation
	MaxCards       int     `mapstructure:"MAX_CARDS"`
	Temperature    float64 `mapstructure:"LLM_TEMPERATURE"`
	LLMTimeoutSecs int     `mapstructure:"LLM_TIMEOUT_SECONDS"`

	// LLM provider selection
	LLMProvider     string `mapstructure:"LLM_PROVIDER"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL   string `mapstructure:"OPENAI_BASE_URL"`
	AnthropicAPIKey string `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `mapstructure:"ANTHROPIC_MODEL"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string `mapstructure:"GEMINI_MODEL"`
	ArkAPIKey       string `mapstructure:"ARK_API_KEY"`
	ArkModel        string `mapstructure:"ARK_MODEL"`
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8090")
	viper.SetDefault("GIN_MODE", "release")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DATABASE_URL", "postgres://localhost:5432/flashcards?sslmode=disable")
	viper.SetDefault("STATUS_STORE", "gorm")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379")
	viper.SetDefault("STORAGE_BACKEND", "local")
	viper.SetDefault("STORAGE_PATH", "./storage")
	viper.SetDefault("MAX_UPLOAD_SIZE", 25*1024*1024) // 25 MiB
	viper.SetDefault("ALLOWED_TYPES", strings.Join(DefaultAllowedTypes, ","))
	viper.SetDefault("CHUNK_SIZE", 1000)
	viper.SetDefault("CHUNK_OVERLAP", 100)
	viper.SetDefault("MAX_CARDS", 20)
	viper.SetDefault("LLM_TEMPERATURE", 0.2)
	viper.SetDefault("LLM_TIMEOUT_SECONDS", 120)
	viper.SetDefault("LLM_PROVIDER", "openai")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")

	// Try to read .env file (optional)
	_ = viper.ReadInConfig()

	// Environment variables win over .env values
	for _, key := range []string{
		"HOST", "PORT", "GIN_MODE", "ENVIRONMENT", "DATABASE_URL",
		"STATUS_STORE", "REDIS_URL",
		"STORAGE_BACKEND", "STORAGE_PATH",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"MAX_UPLOAD_SIZE", "ALLOWED_TYPES", "CHUNK_SIZE", "CHUNK_OVERLAP",
		"MAX_CARDS", "LLM_TEMPERATURE", "LLM_TIMEOUT_SECONDS", "LLM_PROVIDER",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL",
		"GEMINI_API_KEY", "GEMINI_MODEL",
		"ARK_API_KEY", "ARK_MODEL",
	} {
		if val := os.Getenv(key); val != "" {
			viper.Set(key, val)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AllowedTypeList splits the comma-separated allow-list.
func (c *Config) AllowedTypeList() []string {
	parts := strings.Split(c.AllowedTypes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DefaultAllowedTypes is the upload media-type allow-list.
var DefaultAllowedTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
	"text/plain",
	"text/csv",
	"image/png",
	"image/jpeg",
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
