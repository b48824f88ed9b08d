package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "PORT", "HOST", "DATABASE_URL", "SQLITE_PATH", "DB_MAX_OPEN_CONNS",
		"DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "AUTO_MIGRATE", "SEED_DEMO_DATA",
		"ADMIN_ENABLED", "CURRENT_USER_ID", "JWT_SECRET", "CORS_ALLOWED_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver())
	assert.Equal(t, "/tmp/test.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, int64(1), cfg.Security.CurrentUserID)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Features.AutoMigrate)
	assert.True(t, cfg.Features.SeedDemoData)
	assert.True(t, cfg.Features.AdminEnabled)
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{URL: "postgres://user:pw@db:5432/holocron"}
	assert.Equal(t, DriverPostgres, pg.Driver())
	assert.Equal(t, "postgresql://user:pw@db:5432/holocron", pg.DSN())

	already := DatabaseConfig{URL: "postgresql://db/holocron"}
	assert.Equal(t, "postgresql://db/holocron", already.DSN())

	lite := DatabaseConfig{SQLitePath: "/var/lib/holocron.db"}
	assert.Equal(t, DriverSQLite, lite.Driver())
	assert.Equal(t, "file:/var/lib/holocron.db?_pragma=foreign_keys%281%29&_pragma=busy_timeout%285000%29", lite.DSN())
}

func TestProductionRequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required in production")

	t.Setenv("JWT_SECRET", "a-long-enough-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Features.SeedDemoData)
	assert.False(t, cfg.Features.AdminEnabled)
}

func TestValidateCollectsErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "70000")
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("CURRENT_USER_ID", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be between 1 and 65535")
	assert.Contains(t, err.Error(), "LOG_LEVEL must be one of")
	assert.Contains(t, err.Error(), "CURRENT_USER_ID must be a positive integer")
}

func TestInvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid DB_MAX_OPEN_CONNS")
}

func TestCORSOriginsAreSplit(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
