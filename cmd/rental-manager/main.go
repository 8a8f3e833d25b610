package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rental-manager/internal/commands"
	"rental-manager/internal/logging"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()
	logging.Init(os.Getenv("LOG_LEVEL"))

	var rootCmd = &cobra.Command{
		Use:   "rental-manager",
		Short: "Real-estate back office: clients, properties and the rental ledger",
	}

	rootCmd.AddCommand(commands.MigrateCmd())
	rootCmd.AddCommand(commands.InitMonthCmd())
	rootCmd.AddCommand(commands.ReportCmd())
	rootCmd.AddCommand(commands.ScheduleCmd())
	rootCmd.AddCommand(commands.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
