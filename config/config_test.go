package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigDefaults(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "5000", cfg.Server.HTTPPort)
	assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "account-console", cfg.JWT.Issuer)
	assert.Equal(t, 10, cfg.Password.Cost)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5173")
	assert.Empty(t, cfg.JWT.SecretKey)
}

func TestInitConfigEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("APP_MODE", ModeDevelopment)
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
	assert.Equal(t, "db.internal", cfg.Repositories.Postgres.Host)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	var cfg Config
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "HTTPPort")
	assert.Contains(t, err.Error(), "postgres.host")

	cfg.JWT.SecretKey = "s"
	cfg.Server.HTTPPort = "8000"
	cfg.Repositories.Postgres.Host = "localhost"
	assert.NoError(t, cfg.Validate())
}

func TestIsDevelopment(t *testing.T) {
	assert.False(t, Config{}.IsDevelopment())
	assert.True(t, Config{Mode: ModeDevelopment}.IsDevelopment())
	assert.False(t, Config{Mode: ModeProduction}.IsDevelopment())
}
