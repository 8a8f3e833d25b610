package migrate

import (
	"gorm.io/gorm"

	"rental-manager/internal/models"
)

func registered() []*Migration {
	return []*Migration{
		createBaseTables,
		addLedgerStatusIndexes,
	}
}

var createBaseTables = &Migration{
	Version: "20250301000001",
	Name:    "create_base_tables",
	Up: func(db *gorm.DB) error {
		return db.AutoMigrate(models.All()...)
	},
	Down: func(db *gorm.DB) error {
		// reverse dependency order
		for _, table := range []string{
			"monthly_rentals",
			"rental_agreements",
			"ownership_records",
			"properties",
			"clients",
		} {
			if err := db.Migrator().DropTable(table); err != nil {
				return err
			}
		}
		return nil
	},
}

var addLedgerStatusIndexes = &Migration{
	Version: "20250301000002",
	Name:    "add_ledger_status_indexes",
	Up: func(db *gorm.DB) error {
		if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_monthly_rentals_rent_status ON monthly_rentals(rent_status)").Error; err != nil {
			return err
		}
		return db.Exec("CREATE INDEX IF NOT EXISTS idx_monthly_rentals_transfer_status ON monthly_rentals(transfer_status)").Error
	},
	Down: func(db *gorm.DB) error {
		if err := db.Exec("DROP INDEX IF EXISTS idx_monthly_rentals_rent_status").Error; err != nil {
			return err
		}
		return db.Exec("DROP INDEX IF EXISTS idx_monthly_rentals_transfer_status").Error
	},
}
