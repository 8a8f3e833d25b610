package commands

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"rental-manager/internal/config"
	"rental-manager/internal/db"
)

func getDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return db.Open(cfg.DatabaseURL)
}

// parsePeriodArgs reads an optional "year month" argument pair, defaulting
// to the given fallbacks.
func parsePeriodArgs(args []string, defaultYear, defaultMonth int) (int, int, error) {
	switch len(args) {
	case 0:
		return defaultYear, defaultMonth, nil
	case 2:
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q", args[0])
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid month %q", args[1])
		}
		return year, month, nil
	default:
		return 0, 0, fmt.Errorf("expected no arguments or a year and month pair")
	}
}
