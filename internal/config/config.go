package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for sql-lab
type Config struct {
	Server    ServerConfig
	Exercises ExercisesConfig
	Sandbox   SandboxConfig
	Cleanup   CleanupConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// ExercisesConfig holds catalog configuration
type ExercisesConfig struct {
	Dir  string
	Seed bool
}

// SandboxConfig holds sandbox database configuration
type SandboxConfig struct {
	QueryTimeout time.Duration
	MaxRows      int
	IdleTTL      time.Duration
}

// CleanupConfig holds cleanup worker configuration
type CleanupConfig struct {
	Interval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Exercises: ExercisesConfig{
			Dir:  getEnv("EXERCISES_DIR", "./exercises"),
			Seed: getEnvAsBool("EXERCISES_SEED", true),
		},
		Sandbox: SandboxConfig{
			QueryTimeout: getEnvAsDuration("SANDBOX_QUERY_TIMEOUT", 10*time.Second),
			MaxRows:      getEnvAsInt("SANDBOX_MAX_ROWS", 1000),
			IdleTTL:      getEnvAsDuration("SANDBOX_IDLE_TTL", 15*time.Minute),
		},
		Cleanup: CleanupConfig{
			Interval: getEnvAsDuration("CLEANUP_INTERVAL", 5*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Exercises.Dir == "" {
		return fmt.Errorf("exercises directory is required")
	}

	if c.Sandbox.QueryTimeout <= 0 {
		return fmt.Errorf("invalid sandbox query timeout: %s", c.Sandbox.QueryTimeout)
	}

	if c.Sandbox.MaxRows < 1 {
		return fmt.Errorf("invalid sandbox max rows: %d", c.Sandbox.MaxRows)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
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
