package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rental-manager/internal/manage"
)

func ReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [year month]",
		Short: "Print the rental ledger summary for a month",
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

			summary, err := manage.NewReportService(gdb).MonthSummary(year, month)
			if err != nil {
				return err
			}

			fmt.Printf("Rental ledger %s\n\n", summary.Period)
			fmt.Printf("%-24s %d\n", "Entries", summary.TotalRecords)
			fmt.Printf("%-24s %d\n", "Rent pending", summary.RentPending)
			fmt.Printf("%-24s %d\n", "Rent paid", summary.RentPaid)
			fmt.Printf("%-24s %d\n", "Rent late", summary.RentLate)
			fmt.Printf("%-24s %d\n", "Rent unpaid", summary.RentUnpaid)
			fmt.Printf("%-24s %d\n", "Transfers pending", summary.TransfersPending)
			fmt.Printf("%-24s %d\n", "Transfers completed", summary.TransfersCompleted)
			fmt.Printf("%-24s %d\n", "Collected amount", summary.CollectedAmount)
			fmt.Printf("%-24s %d\n", "Transferred amount", summary.TransferredAmount)
			fmt.Printf("%-24s %d\n", "Pending transfer amount", summary.PendingTransferAmount)
			return nil
		},
	}
}
