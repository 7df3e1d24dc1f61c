package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	AdminUser string
	AdminPass string

	StorageBackend string

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	UploadsDir    string
	PublicBaseURL string

	MaxFileMB int

	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "5050"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		AdminUser: getEnv("ADMIN_USER", ""),
		AdminPass: getEnv("ADMIN_PASS", ""),

		StorageBackend: getEnv("STORAGE_BACKEND", "minio"),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "photobooth-photos"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),

		UploadsDir:    getEnv("UPLOADS_DIR", "./uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5050/uploads"),

		MaxFileMB: getIntEnv("MAX_FILE_MB", 10),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// MaxFileBytes is the upload size cap derived from MAX_FILE_MB.
func (c *Config) MaxFileBytes() int64 {
	mb := c.MaxFileMB
	if mb <= 0 {
		mb = 10
	}
	return int64(mb) * 1024 * 1024
}

// AllowInsecureBlobURL reports whether http:// blob URLs are acceptable.
// True for the local backend and for MinIO deployments without public TLS.
func (c *Config) AllowInsecureBlobURL() bool {
	if c.StorageBackend == "local" {
		return true
	}
	return !c.MinIOPublicUseSSL
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
