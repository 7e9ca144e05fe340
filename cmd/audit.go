package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/api"
	"github.com/phishguard/phishctl/pkg/output"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the append-only audit log (requires administrador)",
}

var (
	auditLimit  int
	auditAction string
	auditUser   int
	auditSince  string
	auditUntil  string
)

func checkAuditDate(flag, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flag, value)
	}
	return nil
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}

		if err := checkAuditDate("since", auditSince); err != nil {
			return err
		}
		if err := checkAuditDate("until", auditUntil); err != nil {
			return err
		}

		entries, err := client.ListAudit(api.AuditFilter{
			Limit:  auditLimit,
			Action: auditAction,
			UserID: auditUser,
			Since:  auditSince,
			Until:  auditUntil,
		})
		if err != nil {
			return fmt.Errorf("failed to list audit entries: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(entries))
		return nil
	},
}

var auditActionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the distinct action names recorded in the log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		actions, err := client.ListAuditActions()
		if err != nil {
			return fmt.Errorf("failed to list audit actions: %w", err)
		}
		for _, a := range actions {
			fmt.Fprintln(cmd.OutOrStdout(), a)
		}
		return nil
	},
}

var auditStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show activity charts aggregated from the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		stats, err := client.AuditStatistics()
		if err != nil {
			return fmt.Errorf("failed to fetch audit statistics: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RenderAuditStats(stats, chartWidth))
		return nil
	},
}

func init() {
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 100, "maximum number of entries")
	auditListCmd.Flags().StringVar(&auditAction, "action", "", "filter by action name")
	auditListCmd.Flags().IntVar(&auditUser, "user", 0, "filter by user id")
	auditListCmd.Flags().StringVar(&auditSince, "since", "", "only entries on or after this date (YYYY-MM-DD)")
	auditListCmd.Flags().StringVar(&auditUntil, "until", "", "only entries on or before this date (YYYY-MM-DD)")

	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditActionsCmd)
	auditCmd.AddCommand(auditStatsCmd)
	rootCmd.AddCommand(auditCmd)
}
