package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers understood by the rest of the application.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

const defaultSQLitePath = "/tmp/test.db"

// Config holds all application configuration
type Config struct {
	// Env is the deployment environment: development or production
	Env string

	Database DatabaseConfig
	Server   ServerConfig
	Security SecurityConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Features FeatureConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL             string // PostgreSQL URL; empty selects the SQLite fallback
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// SecurityConfig holds caller identity settings
type SecurityConfig struct {
	JWTSecret     string
	CurrentUserID int64 // fixed caller identity used when no JWT secret is configured
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// FeatureConfig toggles optional start-up behaviour and surfaces
type FeatureConfig struct {
	AutoMigrate  bool
	SeedDemoData bool
	AdminEnabled bool
}

// Load reads configuration from the environment, after loading a .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env: strings.ToLower(getEnvOrDefault("ENV", "development")),
	}

	db, err := loadDatabase()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	cfg.Database = db

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	if err := cfg.loadSecurity(); err != nil {
		return nil, fmt.Errorf("load security config: %w", err)
	}

	cfg.loadCORS()
	cfg.loadLogging()

	if err := cfg.loadFeatures(); err != nil {
		return nil, fmt.Errorf("load feature config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings. Used by tooling that does not
// serve HTTP.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()
	return loadDatabase()
}

func loadDatabase() (DatabaseConfig, error) {
	db := DatabaseConfig{
		URL:        os.Getenv("DATABASE_URL"),
		SQLitePath: getEnvOrDefault("SQLITE_PATH", defaultSQLitePath),
	}

	var err error
	if db.MaxOpenConns, err = getEnvAsInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return DatabaseConfig{}, err
	}
	if db.MaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return DatabaseConfig{}, err
	}
	lifetime := getEnvOrDefault("DB_CONN_MAX_LIFETIME", "30m")
	if db.ConnMaxLifetime, err = time.ParseDuration(lifetime); err != nil {
		return DatabaseConfig{}, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	return db, nil
}

// Driver returns the database/sql driver name for this configuration.
func (d DatabaseConfig) Driver() string {
	if d.URL != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

// DSN returns the connection string for Driver.
// Heroku-style postgres:// URLs are normalised to postgresql://.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		if strings.HasPrefix(d.URL, "postgres://") {
			return "postgresql://" + strings.TrimPrefix(d.URL, "postgres://")
		}
		return d.URL
	}

	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	return "file:" + d.SQLitePath + "?" + params.Encode()
}

func (c *Config) loadServer() error {
	port, err := getEnvAsInt("PORT", 3000)
	if err != nil {
		return err
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (c *Config) loadSecurity() error {
	c.Security.JWTSecret = os.Getenv("JWT_SECRET")

	raw := getEnvOrDefault("CURRENT_USER_ID", "1")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid CURRENT_USER_ID: %w", err)
	}
	c.Security.CurrentUserID = id
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")
	var origins []string
	for _, origin := range strings.Split(originsEnv, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORS.AllowedOrigins = origins
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

func (c *Config) loadFeatures() error {
	dev := c.IsDevelopment()

	var err error
	if c.Features.AutoMigrate, err = getEnvAsBool("AUTO_MIGRATE", true); err != nil {
		return err
	}
	if c.Features.SeedDemoData, err = getEnvAsBool("SEED_DEMO_DATA", dev); err != nil {
		return err
	}
	if c.Features.AdminEnabled, err = getEnvAsBool("ADMIN_ENABLED", dev); err != nil {
		return err
	}
	return nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Env != "development" && c.Env != "production" {
		errors = append(errors, "ENV must be one of: development, production")
	}

	if c.Database.Driver() == DriverSQLite && c.Database.SQLitePath == "" {
		errors = append(errors, "SQLITE_PATH must not be empty when DATABASE_URL is unset")
	}

	// A fixed caller identity is only acceptable during development.
	if c.IsProduction() && c.Security.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required in production")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 characters")
	}
	if c.Security.CurrentUserID < 1 {
		errors = append(errors, "CURRENT_USER_ID must be a positive integer")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
