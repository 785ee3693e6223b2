package application

import (
	"os"
	"strconv"
	"strings"
)

// Default detector settings when neither flags nor environment override them
const (
	DefaultIntervalSeconds = 60
	DefaultAllowedMisses   = 3
)

// RuntimeConfig holds all runtime configuration from CLI flags, environment variables, and .env file
type RuntimeConfig struct {
	// Detector Configuration
	IntervalSeconds int
	AllowedMisses   int

	// API Configuration
	APIKey  string
	APIPort string

	// Development Mode
	DevMode bool

	// Logging Configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Database Configuration (empty disables the audit store)
	DBPath string
}

// LoadRuntimeConfig loads configuration with precedence: CLI flags > env vars > .env file > defaults
func LoadRuntimeConfig(interval, misses int, apiKey, port, logLevel, logFormat, logOutput, dbPath string, devMode bool) *RuntimeConfig {
	cfg := &RuntimeConfig{
		IntervalSeconds: getIntValue(interval, "KESTREL_INTERVAL", DefaultIntervalSeconds),
		AllowedMisses:   getIntValue(misses, "KESTREL_ALLOWED_MISSES", DefaultAllowedMisses),
		APIKey:          getValue(apiKey, "KESTREL_API_KEY", ""),
		APIPort:         getValue(port, "KESTREL_API_PORT", "8080"),
		DevMode:         devMode || getBoolEnv("KESTREL_DEV_MODE", false),
		LogLevel:        getValue(logLevel, "KESTREL_LOG_LEVEL", "INFO"),
		LogFormat:       getValue(logFormat, "KESTREL_LOG_FORMAT", "text"),
		LogOutput:       getValue(logOutput, "KESTREL_LOG_OUTPUT", "stderr"),
		DBPath:          getValue(dbPath, "KESTREL_DB_PATH", ""),
	}

	return cfg
}

// getValue returns the first non-empty value from CLI flag, env var, or default
func getValue(cliValue, envKey, defaultValue string) string {
	if cliValue != "" {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntValue returns the first set value from CLI flag, env var, or default.
// A zero CLI value means the flag was not provided.
func getIntValue(cliValue int, envKey string, defaultValue int) int {
	if cliValue != 0 {
		return cliValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		if parsed, err := strconv.Atoi(envValue); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable
func getBoolEnv(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "true" || value == "1" || value == "yes" {
		return true
	}
	if value == "false" || value == "0" || value == "no" {
		return false
	}
	return defaultValue
}

// Validate checks that required configuration is present for the API server
func (c *RuntimeConfig) Validate() error {
	if c.APIKey == "" {
		return &ConfigError{Field: "api-key", Message: "API key is required (set KESTREL_API_KEY or use --api-key flag)"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
