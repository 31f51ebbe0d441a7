package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_GeneratorConfig(t *testing.T) {
	t.Setenv("GENERATOR_API_KEY", "sk-test")
	t.Setenv("GENERATOR_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("GENERATOR_TIMEOUT", "15s")
	t.Setenv("GENERATOR_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Generator.APIKey)
	assert.Equal(t, "http://localhost:9999/v1", cfg.Generator.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.Generator.Model)
	assert.Equal(t, 15*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, 5, cfg.Generator.MaxAttempts)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.deepseek.com/v1", cfg.Generator.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, 3, cfg.Generator.MaxAttempts)
	assert.Equal(t, 5, cfg.Generator.BreakerFailures)
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.Equal(t, 64, cfg.Worker.QueueSize)
	assert.Equal(t, 5*time.Minute, cfg.Worker.RunTimeout)
	assert.Equal(t, 300*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoad_InvalidWorkerCount(t *testing.T) {
	t.Setenv("WORKER_COUNT", "0")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "coach", Password: "pw", Database: "coachplan", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=coach password=pw dbname=coachplan sslmode=disable", db.DatabaseDSN())
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://coach.example.com, ,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://coach.example.com", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
}
