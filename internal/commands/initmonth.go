package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rental-manager/internal/logging"
	"rental-manager/internal/manage"
)

func InitMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-month [year month]",
		Short: "Create monthly ledger entries for all active agreements",
		Long:  `Creates the monthly rental ledger entry for every active agreement whose term covers the period. Defaults to the current month and is safe to run repeatedly.`,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nowDate := time.Now()
			year, month, err := parsePeriodArgs(args, nowDate.Year(), int(nowDate.Month()))
			if err != nil {
				return err
			}

			gdb, err := getDB()
			if err != nil {
				return err
			}
			ledger := manage.NewLedgerService(gdb, logging.Logger)

			created, existing, err := ledger.InitializeMonth(year, month)
			if err != nil {
				return err
			}
			fmt.Printf("Period %04d-%02d: %d created, %d already existing\n", year, month, created, existing)
			return nil
		},
	}
}
