package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Backend selects the snapshot persistence implementation.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
	BackendS3       Backend = "s3"
)

// IsValid returns true if the backend type is valid
func (b Backend) IsValid() bool {
	switch b {
	case BackendFile, BackendSQLite, BackendPostgres, BackendMongo, BackendS3:
		return true
	default:
		return false
	}
}

// Config holds all configuration for the application
type Config struct {
	// Persistence
	Backend     Backend
	DataDir     string // file/sqlite backends
	DatabaseURL string // postgres backend
	Mongo       MongoConfig
	S3          S3Config

	// Auth (both optional; JWT wins when configured)
	Auth0Domain   string
	Auth0Audience string
	SessionToken  string

	// Server
	Port        string
	CORSOrigins []string
	Env         string
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Key             string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Backend:     Backend(getEnv("BACKEND", string(BackendFile))),
		DataDir:     getEnv("DATA_DIR", "data"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", ""),
			Database:   getEnv("MONGO_DATABASE", "moneta"),
			Collection: getEnv("MONGO_COLLECTION", "appstate"),
		},
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "moneta-snapshots"),
			Key:             getEnv("S3_KEY", "appstate.json"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		SessionToken:  getEnv("SESSION_TOKEN", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !c.Backend.IsValid() {
		return fmt.Errorf("invalid BACKEND %q", c.Backend)
	}
	switch c.Backend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	}
	if c.Auth0Domain != "" && c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required when AUTH0_DOMAIN is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
