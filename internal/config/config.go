// Package config provides configuration management for the hello service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/sebasr/hello-service/internal/models"
)

// Log output formats
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Hello     HelloConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	GinMode         string
	Version         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string // zerolog level name: trace, debug, info, warn, error
	Format string // "json" or "console"
}

// HelloConfig holds configuration of the hello endpoints
type HelloConfig struct {
	DefaultName string // Greeted by GET /hello
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Requests int64 // 0 disables rate limiting
	Period   time.Duration
}

// Enabled reports whether requests should be rate limited
func (r *RateLimitConfig) Enabled() bool {
	return r.Requests > 0
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	AllowOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", gin.ReleaseMode),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", "10s"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", LogFormatJSON)),
		},
		Hello: HelloConfig{
			DefaultName: getEnv("HELLO_DEFAULT_NAME", models.DefaultName),
		},
		RateLimit: RateLimitConfig{
			Requests: int64(getEnvAsInt("RATE_LIMIT_REQUESTS", 0)),
			Period:   getEnvAsDuration("RATE_LIMIT_PERIOD", "1m"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.Errorf("PORT must be a number between 1 and 65535, got %q", c.Server.Port)
	}

	switch c.Server.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return errors.Errorf("GIN_MODE must be one of debug, release, test, got %q", c.Server.GinMode)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(err, "LOG_LEVEL %q is not a valid level", c.Log.Level)
	}
	if c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatConsole {
		return errors.Errorf("LOG_FORMAT must be %q or %q, got %q", LogFormatJSON, LogFormatConsole, c.Log.Format)
	}

	if c.Hello.DefaultName == "" {
		return errors.New("HELLO_DEFAULT_NAME must not be empty")
	}

	if c.RateLimit.Requests < 0 {
		return errors.New("RATE_LIMIT_REQUESTS must not be negative")
	}
	if c.RateLimit.Enabled() && c.RateLimit.Period <= 0 {
		return errors.New("RATE_LIMIT_PERIOD must be a positive duration")
	}

	if len(c.CORS.AllowOrigins) == 0 {
		return errors.New("CORS_ALLOW_ORIGINS must list at least one origin")
	}
	for _, origin := range c.CORS.AllowOrigins {
		// cors panics when the wildcard is mixed with explicit origins
		if origin == "*" && len(c.CORS.AllowOrigins) > 1 {
			return errors.New("CORS_ALLOW_ORIGINS cannot combine \"*\" with explicit origins")
		}
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (s *ServerConfig) Addr() string {
	return ":" + s.Port
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}

// getEnvAsList splits a comma-separated environment variable, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
