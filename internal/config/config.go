package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	applog "expensetracker/internal/log"
)

type Config struct {
	// HTTP Server
	Port               string
	RateLimitPerMinute int
	ShutdownTimeout    time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Session store
	SeedData bool

	// Chart cache
	ChartCacheSize       int
	ChartCacheTTL        time.Duration
	CacheCleanupInterval time.Duration

	// AMQP notifications, disabled when AMQPURL is empty
	AMQPURL             string
	AMQPExchange        string
	AMQPConnectAttempts int
	AMQPQueue           string // consumed by the watch command
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8081"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", applog.FormatText),

		SeedData: getEnvBool("SEED_DATA", true),

		ChartCacheSize:       getEnvInt("CHART_CACHE_SIZE", 32),
		ChartCacheTTL:        getEnvDuration("CHART_CACHE_TTL", 10*time.Minute),
		CacheCleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),

		AMQPURL:             getEnv("AMQP_URL", ""),
		AMQPExchange:        getEnv("AMQP_EXCHANGE", "expenses"),
		AMQPConnectAttempts: getEnvInt("AMQP_CONNECT_ATTEMPTS", 3),
		AMQPQueue:           getEnv("AMQP_QUEUE", "expense-audit"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != applog.FormatText && c.LogFormat != applog.FormatJSON {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if c.ChartCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid chart cache size %d: must be at least 1", c.ChartCacheSize))
	} else if c.ChartCacheSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid chart cache size %d: must be at most 1000", c.ChartCacheSize))
	}
	if c.ChartCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid chart cache TTL %v: must be at least 1 second", c.ChartCacheTTL))
	}
	if c.CacheCleanupInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup interval %v: must be at least 1 second", c.CacheCleanupInterval))
	} else if c.CacheCleanupInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup interval %v: must be at most 24 hours", c.CacheCleanupInterval))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPConnectAttempts < 1 {
			errors = append(errors, fmt.Sprintf("invalid AMQP connect attempts %d: must be at least 1", c.AMQPConnectAttempts))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AMQPEnabled reports whether change notifications should be published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
