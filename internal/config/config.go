package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// Shared-secret bearer token presented by callers.
	AuthToken string

	// Caller-identifying number returned by the validate tool.
	MyNumber string

	// HTTP listener
	ListenAddr string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Scholar scraper pre-request delay interval.
	ScholarMinDelay time.Duration
	ScholarMaxDelay time.Duration
}

// Load reads configuration from environment variables.
// MEDMCP_AUTH_TOKEN and MEDMCP_MY_NUMBER are required; everything else
// has a default.
func Load() (*Config, error) {
	token := os.Getenv("MEDMCP_AUTH_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("MEDMCP_AUTH_TOKEN must be set")
	}

	number := os.Getenv("MEDMCP_MY_NUMBER")
	if number == "" {
		return nil, fmt.Errorf("MEDMCP_MY_NUMBER must be set")
	}

	minDelay, err := parseDuration(getEnv("MEDMCP_SCHOLAR_MIN_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("MEDMCP_SCHOLAR_MIN_DELAY: %w", err)
	}
	maxDelay, err := parseDuration(getEnv("MEDMCP_SCHOLAR_MAX_DELAY", "3s"))
	if err != nil {
		return nil, fmt.Errorf("MEDMCP_SCHOLAR_MAX_DELAY: %w", err)
	}
	if maxDelay < minDelay {
		return nil, fmt.Errorf("scholar delay interval inverted: min %s > max %s", minDelay, maxDelay)
	}

	return &Config{
		AuthToken:       token,
		MyNumber:        number,
		ListenAddr:      getEnv("MEDMCP_LISTEN_ADDR", ":8086"),
		LogFile:         getEnv("MEDMCP_LOG_FILE", "/tmp/medmcp.log"),
		LogLevel:        parseLogLevel(getEnv("MEDMCP_LOG_LEVEL", "INFO")),
		ScholarMinDelay: minDelay,
		ScholarMaxDelay: maxDelay,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
