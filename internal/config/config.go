package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	AppPort string
	IsProd  bool
	LogFile string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	JWTSecret   string
	CORSOrigins []string

	RedisAddr       string // empty disables the listing cache
	RedisPass       string
	RedisDB         int
	ListingCacheTTL time.Duration

	NatsURL string // empty disables notifications

	S3Endpoint     string
	S3Region       string
	S3Bucket       string // empty disables upload presigning
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	// read by cmd/migrate only; empty skips admin seeding
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads .env (if present) and reads environment variables with defaults.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return &Config{
		AppPort: getEnv("APP_PORT", "8080"),
		IsProd:  getEnv("IS_PROD", "false") == "true",
		LogFile: getEnv("LOG_FILE", "./logs/app.log"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "volunteer_hub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),

		JWTSecret:   getEnv("JWT_SECRET", "supersecret"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPass:       getEnv("REDIS_PASS", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		ListingCacheTTL: getEnvDuration("LISTING_CACHE_TTL", 60*time.Second),

		NatsURL: getEnv("NATS_URL", ""),

		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3Region:       getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET_NAME", ""),
		S3AccessKey:    getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3UsePathStyle: getEnv("S3_USE_PATH_STYLE", "false") == "true",

		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// DSN builds the libpq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
