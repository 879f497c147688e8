package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "citas", cfg.Database.Database)
	assert.Equal(t, "http://localhost:8081", cfg.Directory.PatientBaseURL)
	assert.Equal(t, "http://localhost:8082", cfg.Directory.DoctorBaseURL)
	assert.Equal(t, "http://localhost:8083", cfg.History.BaseURL)
	assert.Equal(t, 300, cfg.Cache.DoctorTTLSeconds)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("PATIENT_DIRECTORY_URL", "http://pacientes.internal:8000")
	t.Setenv("DOCTOR_CACHE_TTL_SECONDS", "60")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://pacientes.internal:8000", cfg.Directory.PatientBaseURL)
	assert.Equal(t, 60, cfg.Cache.DoctorTTLSeconds)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestDatabaseDSN(t *testing.T) {
	dbCfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "postgres", Password: "secret",
		Database: "citas", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=postgres password=secret dbname=citas sslmode=disable",
		dbCfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	redisCfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", redisCfg.RedisAddr())
}
