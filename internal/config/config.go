package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort     string
	LogLevel     string
	StoreBackend string // "memory" or "mongo"
	SeedSamples  bool

	MongoURI     string
	MongoDB      string
	RedisAddress string
	NATSURL      string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	JWTSecret string

	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string

	OTLPEndpoint string
	TracingOn    bool
}

func Load() (*Config, error) {
	// Environment variables win; .env is a convenience for local runs.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StoreBackend:   getEnv("STORE_BACKEND", "memory"),
		SeedSamples:    getEnvBool("SEED_SAMPLES", false),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "animal_market"),
		RedisAddress:   getEnv("REDIS_ADDRESS", "localhost:6379"),
		NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "listing-photos"),
		MinIOUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPEmail:      getEnv("SMTP_EMAIL", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TracingOn:      getEnvBool("TRACING_ENABLED", false),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET is not set. This is required for session tokens.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, defaulting to %v", key, raw, fallback)
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return parsed
}
