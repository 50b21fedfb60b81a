package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "turnos")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "turnos", cfg.DB.Name)
	assert.Equal(t, 20, cfg.DB.MaxOpenConns)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
	assert.Nil(t, cfg)
}
