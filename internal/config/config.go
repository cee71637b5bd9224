package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Calendly provider settings
	CalendlyAccessToken string
	CalendlyBaseURL     string
	CalendlyUserURI     string

	// Slot computation defaults
	DefaultTimezone   string
	WorkingHoursStart string
	WorkingHoursEnd   string

	// Outbound HTTP deadline for provider calls
	HTTPTimeout time.Duration

	// Availability cache (optional; disabled when RedisAddr is empty)
	RedisAddr            string
	RedisPassword        string
	AvailabilityCacheTTL time.Duration

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CalendlyAccessToken: getEnv("CALENDLY_ACCESS_TOKEN", ""),
		CalendlyBaseURL:     getEnv("CALENDLY_BASE_URL", ""),
		CalendlyUserURI:     getEnv("CALENDLY_USER_URI", ""),

		DefaultTimezone:   getEnv("DEFAULT_TIMEZONE", "Asia/Calcutta"),
		WorkingHoursStart: getEnv("WORKING_HOURS_START", "09:00"),
		WorkingHoursEnd:   getEnv("WORKING_HOURS_END", "17:00"),

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 20*time.Second),

		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		AvailabilityCacheTTL: getEnvAsDuration("AVAILABILITY_CACHE_TTL", 30*time.Second),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

// getEnvAsList retrieves a comma-separated environment variable as a slice
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
