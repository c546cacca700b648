package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string
	DBUrl    string

	JWTSecret         string
	AccessTokenExpiry time.Duration

	AllowedOrigin string
	FrontendURL   string

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string

	// DB pool
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	// Object storage (S3 / R2)
	StorageAccountID     string
	StorageAccessKey     string
	StorageSecretKey     string
	StorageBucket        string
	StoragePublicURL     string
	StorageUploadTimeout time.Duration

	// Cache
	CacheProductTTL time.Duration

	// Upload
	MaxUploadSizeMB int64

	// Business rules
	MaxCartQuantity int
}

func LoadConfig() *Config {
	// Try loading .env for local dev; in docker/prod we rely on system env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, relying on system env vars")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DBUrl:    getEnv("DB_DSN", ""),

		JWTSecret:         getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),
		AccessTokenExpiry: getDurationEnv("ACCESS_TOKEN_EXPIRY", 30*24*time.Hour),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", 15*time.Minute),

		StorageAccountID:     getEnv("STORAGE_ACCOUNT_ID", ""),
		StorageAccessKey:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
		StorageSecretKey:     getEnv("STORAGE_ACCESS_KEY_SECRET", ""),
		StorageBucket:        getEnv("STORAGE_BUCKET_NAME", ""),
		StoragePublicURL:     getEnv("STORAGE_PUBLIC_URL", ""),
		StorageUploadTimeout: getDurationEnv("STORAGE_UPLOAD_TIMEOUT", 30*time.Second),

		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),

		MaxUploadSizeMB: getInt64Env("MAX_UPLOAD_SIZE_MB", 10),

		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 1000),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.DBUrl == "" {
		log.Fatal("CRITICAL: DB_DSN environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Setting up for failure in production.")
	}
	if c.StripeSecretKey == "" {
		log.Println("WARNING: STRIPE_SECRET_KEY is empty, checkout session creation will fail")
	}
	if c.StripeWebhookSecret == "" {
		log.Println("WARNING: STRIPE_WEBHOOK_SECRET is empty, webhook verification will fail")
	}
}
