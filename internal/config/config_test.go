package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.False(t, cfg.NLULog.Enabled)
	assert.Equal(t, 5*time.Second, cfg.NLULog.Timeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=nlu sslmode=disable", cfg.GetPostgreSQLDSN())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("NLU_LOG_ENABLED", "true")
	t.Setenv("NLU_LOG_TIMEOUT_SECONDS", "2")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/nlu")
	t.Setenv("METRICS_ENABLED", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.NLULog.Enabled)
	assert.Equal(t, 2*time.Second, cfg.NLULog.Timeout)
	assert.True(t, cfg.Metrics.Enabled, "invalid bool falls back to default")
	assert.Equal(t, "postgres://u:p@db/nlu", cfg.GetPostgreSQLDSN())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
