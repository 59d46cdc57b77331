package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	App      AppConfig
	Patterns PatternsConfig
	Archive  ArchiveConfig
}

type ServerConfig struct {
	Port string
}

type AppConfig struct {
	LogLevel          string
	AnomalyWindowDays int
}

type PatternsConfig struct {
	File string
}

type ArchiveConfig struct {
	Enabled bool
	Dir     string
}

func Load() (*Config, error) {
	windowDays, err := strconv.Atoi(getEnv("ANOMALY_WINDOW_DAYS", "90"))
	if err != nil || windowDays <= 0 {
		windowDays = 90
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		App: AppConfig{
			LogLevel:          getEnv("LOG_LEVEL", "info"),
			AnomalyWindowDays: windowDays,
		},
		Patterns: PatternsConfig{
			File: getEnv("PATTERNS_FILE", "learned_patterns.json"),
		},
		Archive: ArchiveConfig{
			Enabled: getEnv("ARCHIVE_ENABLED", "false") == "true",
			Dir:     getEnv("ARCHIVE_DIR", "parsed"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
