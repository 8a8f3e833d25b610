package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rental-manager/internal/migrate"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(migrateUpCmd(), migrateDownCmd(), migrateStatusCmd(), migrateHistoryCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := getDB()
			if err != nil {
				return err
			}
			ran, err := migrate.NewMigrator(gdb).Up()
			if err != nil {
				return err
			}
			if ran == 0 {
				fmt.Println("No pending migrations")
				return nil
			}
			fmt.Printf("Applied %d migration(s)\n", ran)
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := getDB()
			if err != nil {
				return err
			}
			reverted, err := migrate.NewMigrator(gdb).Down()
			if err != nil {
				return err
			}
			if reverted == nil {
				fmt.Println("No migrations to revert")
				return nil
			}
			fmt.Printf("Reverted migration: %s\n", reverted.Name)
			return nil
		},
	}
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := getDB()
			if err != nil {
				return err
			}
			statuses, err := migrate.NewMigrator(gdb).Status()
			if err != nil {
				return err
			}
			fmt.Printf("%-16s  %-30s  %-8s\n", "Version", "Name", "Status")
			for _, status := range statuses {
				state := "Pending"
				if status.Applied {
					state = "Applied"
				}
				fmt.Printf("%-16s  %-30s  %-8s\n", status.Version, status.Name, state)
			}
			return nil
		},
	}
}

func migrateHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show applied migrations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := getDB()
			if err != nil {
				return err
			}
			records, err := migrate.NewMigrator(gdb).History()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No migrations have been applied yet.")
				return nil
			}
			fmt.Printf("%-16s  %-30s  %-24s\n", "Version", "Name", "Applied At")
			for _, record := range records {
				fmt.Printf("%-16s  %-30s  %-24s\n", record.Version, record.Name, record.AppliedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}
