package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	APIBaseURL     string        // Required: back-office API root, e.g. https://api.updevic.example/api/v1
	Origin         string        // Origin presented on state-changing requests (default: http://localhost:3000)
	AllowedOrigins []string      // Origin allow-list (default: the configured origin)
	StateFile      string        // Optional: path to SQLite state file (default: ./console.db)
	MasterKeyPath  string        // Optional: path to master encryption key file for at-rest token sealing
	HTTPTimeout    time.Duration // Per-request ceiling (default: 5s)
	RequestsPerMin int           // Outbound throttle (default: 120)
	Env            string        // Environment (dev, staging, prod) (default: dev)
	LogLevel       string        // Log level (debug, info, warn, error) (default: info)
	LogFormat      string        // Log format (json, text) (default: json)
}

func LoadConfig() Config {
	cfg := Config{
		APIBaseURL:     os.Getenv("CONSOLE_API_BASE_URL"),
		Origin:         getEnvOrDefault("CONSOLE_ORIGIN", "http://localhost:3000"),
		StateFile:      getEnvOrDefault("CONSOLE_STATE_FILE", "console.db"),
		MasterKeyPath:  os.Getenv("CONSOLE_MASTER_KEY_PATH"), // Optional
		HTTPTimeout:    getEnvDurationOrDefault("CONSOLE_HTTP_TIMEOUT", 5*time.Second),
		RequestsPerMin: getEnvIntOrDefault("CONSOLE_REQUESTS_PER_MINUTE", 120),
		Env:            getEnvOrDefault("ENV", "dev"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "json"),
	}

	// The allow-list defaults to the configured origin itself; extra
	// origins are comma-separated.
	if raw := os.Getenv("CONSOLE_ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{cfg.Origin}
	}

	return cfg
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are taken as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
