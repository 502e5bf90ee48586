package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"carviz/internal/errors"
)

// DefaultDataSource is the upstream cars dataset.
const DefaultDataSource = "https://raw.githubusercontent.com/menocsk27/datavis-a2/main/cars.csv"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Session   SessionConfig
	UI        UIConfig
	Profiling ProfilingConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	GinMode     string
	SelectRate  float64
	SelectBurst int
}

// DataConfig holds dataset source settings
type DataConfig struct {
	Source       string
	FetchTimeout time.Duration
}

// SessionConfig holds viewer session settings
type SessionConfig struct {
	TTL         time.Duration
	MaxSessions int
}

// UIConfig holds optional presentation overrides
type UIConfig struct {
	ThemeFile string
	AboutFile string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Session:   *loadSessionConfig(),
		UI:        *loadUIConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		GinMode:     getEnvOrDefault("GIN_MODE", "release"),
		SelectRate:  getEnvFloatOrDefault("SELECT_RATE", 20),
		SelectBurst: getEnvIntOrDefault("SELECT_BURST", 40),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		Source:       getEnvOrDefault("DATA_SOURCE", DefaultDataSource),
		FetchTimeout: getEnvDurationOrDefault("DATA_FETCH_TIMEOUT", 30*time.Second),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		TTL:         getEnvDurationOrDefault("SESSION_TTL", 30*time.Minute),
		MaxSessions: getEnvIntOrDefault("SESSION_MAX", 10000),
	}
}

func loadUIConfig() *UIConfig {
	return &UIConfig{
		ThemeFile: getEnvOrDefault("THEME_FILE", ""),
		AboutFile: getEnvOrDefault("ABOUT_FILE", ""),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Data.Source) == "" {
		return errors.ConfigInvalid("DATA_SOURCE is required")
	}
	if config.Data.FetchTimeout <= 0 {
		return errors.ConfigInvalid("DATA_FETCH_TIMEOUT must be positive")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.Session.MaxSessions <= 0 {
		return errors.ConfigInvalid("SESSION_MAX must be positive")
	}
	if config.Server.SelectRate <= 0 || config.Server.SelectBurst <= 0 {
		return errors.ConfigInvalid("SELECT_RATE and SELECT_BURST must be positive")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	switch config.LogLevel {
	case "ERROR", "WARN", "INFO", "DEBUG", "TRACE":
	default:
		return errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
