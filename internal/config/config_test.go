package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"CRASHLOG_ADDR", "STORE_BACKEND", "DB_PATH", "TOKEN_TTL", "ADMIN_TOKEN"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "./data/crashlog.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.AdminToken)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CRASHLOG_ADDR", ":9999")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("ADMIN_TOKEN", "hunter2")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "hunter2", cfg.AdminToken)
}

func TestFromEnvBadTTLFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")

	cfg := FromEnv()
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}
