package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the database named by dsn. Postgres URLs get the postgres
// driver; anything else is treated as a sqlite path (":memory:" included).
// TranslateError is on so duplicate-key and foreign-key violations surface as
// the gorm sentinels the manage package matches on.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	var (
		gdb *gorm.DB
		err error
	)
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		gdb, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		gdb, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// sqlite keeps foreign keys off unless asked
	if gdb.Dialector.Name() == "sqlite" {
		if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	return gdb, nil
}
