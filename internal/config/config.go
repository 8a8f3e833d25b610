package config

import (
	"fmt"
	"os"
)

// Config holds everything read from the environment (or a .env file loaded
// by the entrypoint).
type Config struct {
	DatabaseURL   string
	LogLevel      string
	InitMonthCron string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		InitMonthCron: os.Getenv("INIT_MONTH_CRON"),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set in environment or .env file")
	}
	if cfg.InitMonthCron == "" {
		// 03:00 on the first day of every month
		cfg.InitMonthCron = "0 3 1 * *"
	}
	return cfg, nil
}
