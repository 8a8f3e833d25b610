package commands

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"rental-manager/internal/config"
	"rental-manager/internal/db"
	"rental-manager/internal/logging"
	"rental-manager/internal/manage"
)

func ScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the monthly ledger initializer on a cron schedule",
		Long:  `Blocks and initializes the current month's rental ledger on a cron schedule (default: 03:00 on the first day of each month, override with INIT_MONTH_CRON or --spec).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			spec, _ := cmd.Flags().GetString("spec")
			if spec == "" {
				spec = cfg.InitMonthCron
			}

			gdb, err := db.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			log := logging.Logger
			ledger := manage.NewLedgerService(gdb, log)

			c := cron.New()
			_, err = c.AddFunc(spec, func() {
				nowDate := time.Now()
				created, existing, err := ledger.InitializeMonth(nowDate.Year(), int(nowDate.Month()))
				if err != nil {
					log.WithError(err).Error("scheduled month initialization failed")
					return
				}
				log.WithField("created", created).WithField("existing", existing).Info("scheduled month initialization done")
			})
			if err != nil {
				return err
			}

			log.WithField("spec", spec).Info("scheduler started")
			c.Run()
			return nil
		},
	}
	cmd.Flags().String("spec", "", "cron spec for the monthly initialization")
	return cmd
}
