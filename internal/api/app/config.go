package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SessionSecret    string        // Required in prod: HMAC key for session tokens (min 32 bytes)
	SessionMaxAge    time.Duration // Optional: session lifetime (default: 24h)
	RefreshThreshold float64       // Optional: fraction of lifetime before a session is refreshed (default: 0.5)
	SessionLeeway    time.Duration // Optional: clock drift tolerance on expiry checks (default: 0)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./cardfolio.db)
	CORSOrigin          string        // Optional: exact origin allowed to call the API with credentials
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		SessionMaxAge:    getEnvDurationOrDefault("SESSION_MAX_AGE", 24*time.Hour),
		RefreshThreshold: getEnvFloatOrDefault("SESSION_REFRESH_THRESHOLD", 0.5),
		SessionLeeway:    getEnvDurationOrDefault("SESSION_EXPIRY_LEEWAY", 0),

		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "cardfolio.db"),
		CORSOrigin:          os.Getenv("CORS_ORIGIN"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// IsProd reports whether the service runs in a production environment.
// Cookie security and secret requirements key off this.
func (c Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "staging"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 && f <= 1 {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
