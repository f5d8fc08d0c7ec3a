package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUsesEnvironmentOverDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRATION_TIME", "2h")
	t.Setenv("TRENDING_LIMIT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpirationTime)
	assert.Equal(t, 3, cfg.TrendingLimit)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3000, cfg.PostMaxLength)
}

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{AdminEmails: "admin@linkedin.com, Ops@Example.com"}

	assert.True(t, cfg.IsAdminEmail("admin@linkedin.com"))
	assert.True(t, cfg.IsAdminEmail(" ops@example.COM "))
	assert.False(t, cfg.IsAdminEmail("someone@linkedin.com"))
	assert.False(t, cfg.IsAdminEmail(""))
}
