package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Blob store backend names accepted by BLOB_BACKEND.
const (
	BlobBackendLocal = "local"
	BlobBackendMinIO = "minio"
)

// MinIOConfig holds object storage settings for the S3-compatible blob backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port      string
	DataDir   string
	PublicDir string
	LogLevel  string

	// FlushDebounce is the quiet period the document store waits after a
	// mutation before writing the JSON document to disk.
	FlushDebounce time.Duration

	BlobBackend string
	MinIO       MinIOConfig
}

// StorePath returns the location of the persisted JSON document.
func (c *AppConfig) StorePath() string {
	return filepath.Join(c.DataDir, "store.json")
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:          getEnv("PORT", "3000"),
		DataDir:       getEnv("DATA_DIR", "data"),
		PublicDir:     getEnv("PUBLIC_DIR", "public"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		FlushDebounce: time.Duration(getEnvInt("FLUSH_DEBOUNCE_MS", 200)) * time.Millisecond,
		BlobBackend:   getEnv("BLOB_BACKEND", BlobBackendLocal),
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
