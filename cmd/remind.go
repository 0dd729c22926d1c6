package cmd

import (
	"ledgerapi/database"
	"ledgerapi/logging"
	"ledgerapi/service"

	"github.com/spf13/cobra"
)

var (
	reminderDays int
	testEmail    string
)

var remindCmd = &cobra.Command{
	Use:   "remind-debts",
	Short: "Mail owners of open debts that are due soon",
	Long: `remind-debts sends each user one email listing their OPEN debts that are
overdue or fall due within --days days. Run it from cron; it exits when done.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := service.NewEmailService(&cfg.Email)
		if testEmail != "" {
			if err := email.SendTestEmail(testEmail); err != nil {
				return err
			}
			logging.Component("reminder").Infof("test email sent to %s", testEmail)
			return nil
		}

		if err := database.Init(cfg); err != nil {
			return err
		}
		days := reminderDays
		if days <= 0 {
			days = cfg.Ledger.ReminderDays
		}
		_, err := service.NewReminderService(database.DB, email).Run(cmd.Context(), days)
		return err
	},
}

func init() {
	remindCmd.Flags().IntVar(&reminderDays, "days", 0, "look-ahead window in days (default ledger.reminder_days)")
	remindCmd.Flags().StringVar(&testEmail, "test-email", "", "send a test message to this address and exit")
}
