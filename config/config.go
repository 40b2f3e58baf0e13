// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/secure-login/system/internal/domain/policy"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Security SecurityConfig
	Audit    AuditConfig
	Session  SessionConfig
}

// DatabaseConfig holds storage engine configuration. The default driver is a
// local sqlite file; postgres is available for installations that already run
// a shared database server.
type DatabaseConfig struct {
	Driver          string
	Path            string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SecurityConfig holds password policy and authentication configuration.
type SecurityConfig struct {
	MinPasswordLength int
	RequireUppercase  bool
	RequireLowercase  bool
	RequireNumbers    bool
	RequireSpecial    bool
	MaxLoginAttempts  int
	HashScheme        string
}

// AuditConfig holds audit trail configuration.
type AuditConfig struct {
	Enabled    bool
	LogDir     string
	LogFile    string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	AlsoStdout bool
}

// SessionConfig holds interactive session configuration.
type SessionConfig struct {
	IdleTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Path:            getEnv("DB_PATH", "users.db"),
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Security: SecurityConfig{
			MinPasswordLength: getEnvAsInt("MIN_PASSWORD_LENGTH", 8),
			RequireUppercase:  getEnvAsBool("REQUIRE_UPPERCASE", true),
			RequireLowercase:  getEnvAsBool("REQUIRE_LOWERCASE", true),
			RequireNumbers:    getEnvAsBool("REQUIRE_NUMBERS", true),
			RequireSpecial:    getEnvAsBool("REQUIRE_SPECIAL_CHARS", true),
			MaxLoginAttempts:  getEnvAsInt("MAX_LOGIN_ATTEMPTS", 3),
			HashScheme:        getEnv("HASH_SCHEME", "sha256"),
		},
		Audit: AuditConfig{
			Enabled:    getEnvAsBool("AUDIT_ENABLED", true),
			LogDir:     getEnv("AUDIT_LOG_DIR", "logs"),
			LogFile:    getEnv("AUDIT_LOG_FILE", "system.log"),
			MaxSizeMB:  getEnvAsInt("AUDIT_LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvAsInt("AUDIT_LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("AUDIT_LOG_MAX_AGE_DAYS", 28),
			AlsoStdout: getEnvAsBool("AUDIT_LOG_STDOUT", false),
		},
		Session: SessionConfig{
			IdleTimeout: getEnvAsDuration("SESSION_TIMEOUT", 30*time.Minute),
		},
	}
}

// PolicyConfig converts the security settings into a password policy configuration.
func (c SecurityConfig) PolicyConfig() policy.Config {
	return policy.Config{
		MinLength:        c.MinPasswordLength,
		RequireUppercase: c.RequireUppercase,
		RequireLowercase: c.RequireLowercase,
		RequireDigit:     c.RequireNumbers,
		RequireSpecial:   c.RequireSpecial,
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
