package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_HOST", "DB_NAME", "REDIS_ADDR", "CORS_ORIGINS", "IS_PROD", "ADMIN_EMAIL", "ADMIN_PASSWORD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("LISTING_CACHE_TTL", "not-a-duration")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "volunteer_hub", cfg.DBName)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.IsProd)
	assert.Equal(t, 60*time.Second, cfg.ListingCacheTTL)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Empty(t, cfg.AdminEmail)
	assert.Empty(t, cfg.AdminPassword)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "vh")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LISTING_CACHE_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.ListingCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.S3UsePathStyle)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DSN(), "dbname=vh")
}

func TestGetEnv_UnsetUsesDefault(t *testing.T) {
	assert.Equal(t, "fallback", getEnv("VOLUNTEER_HUB_SURELY_UNSET", "fallback"))
}
