package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// CORS
	CORSAllowedOrigins []string

	// Storage ("local" or "s3")
	StorageDriver string
	UploadDir     string

	// Storage - S3 (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Roamlog"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // Required: base URL for generated media links
		Port:    envString("PORT", "3000"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/roamlog.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// CORS
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"}),

		// Storage
		StorageDriver: envString("STORAGE_DRIVER", "local"),
		UploadDir:     envString("UPLOAD_DIR", "./data/uploads"),
		S3Region:      envString("S3_REGION", ""),
		S3Bucket:      envString("S3_BUCKET", ""),
		S3AccessKey:   envString("S3_ACCESS_KEY", ""),
		S3SecretKey:   envString("S3_SECRET_KEY", ""),
		S3Endpoint:    envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.StorageDriver == "s3" {
		validateS3(cfg)
	}

	return cfg
}

// validateS3 ensures the S3 backend has the settings it cannot run without.
func validateS3(cfg *Config) {
	if cfg.S3Region == "" || cfg.S3Bucket == "" {
		slog.Error("STORAGE_DRIVER=s3 requires S3_REGION and S3_BUCKET",
			"hint", "set STORAGE_DRIVER=local for disk-backed uploads")
		os.Exit(1)
	}
}

// PlaceholderImageURL is the fixed URL substituted when a story has no photo.
// It points at a bundled asset and is never stored or removed through the
// media storage backend.
func (c *Config) PlaceholderImageURL() string {
	return strings.TrimSuffix(c.AppURL, "/") + "/assets/placeholder.png"
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
