package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// BlobConfig holds object storage settings. Backend selects the client:
// "minio" speaks the S3 protocol (MinIO, AWS S3, Supabase Storage S3 endpoint),
// "gcs" uses Google Cloud Storage.
type BlobConfig struct {
	Backend         string
	Endpoint        string
	AccessKey       string
	SecretKey       string
	Bucket          string
	Region          string
	UseSSL          bool
	CreateBucket    bool
	CredentialsFile string
	SignedURLExpiry time.Duration
	Timeout         time.Duration
}

// RedisConfig configures the optional options cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env            string
	Port           string
	RequestTimeout time.Duration
	// CORSAllowOrigins is a comma-separated origin list passed to the CORS middleware.
	CORSAllowOrigins string
	Database         DatabaseConfig
	Blob             BlobConfig
	Redis            RedisConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Env:              getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		RequestTimeout:   getEnvSeconds("REQUEST_TIMEOUT_SEC", 30),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Blob: BlobConfig{
			Backend:         getEnv("BLOB_BACKEND", "minio"),
			Endpoint:        getEnv("BLOB_ENDPOINT", ""),
			AccessKey:       getEnv("BLOB_ACCESS_KEY", ""),
			SecretKey:       getEnv("BLOB_SECRET_KEY", ""),
			Bucket:          getEnv("BLOB_BUCKET", "msds"),
			Region:          getEnv("BLOB_REGION", ""),
			UseSSL:          getEnvBool("BLOB_USE_SSL", false),
			CreateBucket:    getEnvBool("BLOB_CREATE_BUCKET", false),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
			SignedURLExpiry: getEnvSeconds("SIGNED_URL_EXPIRES_SEC", 300),
			Timeout:         getEnvSeconds("BLOB_TIMEOUT_SEC", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvSeconds("OPTIONS_CACHE_TTL_SEC", 60),
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

// getEnvSeconds reads a positive number of seconds; zero or negative values fall back to def.
func getEnvSeconds(key string, def int) time.Duration {
	n := getEnvInt(key, def)
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}
