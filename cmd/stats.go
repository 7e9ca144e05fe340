package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/output"
)

// chartWidth is the bar width used for terminal charts outside the
// dashboard, which sizes its own charts from the window.
const chartWidth = 40

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reporting and takedown statistics as terminal charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		stats, err := client.SiteStatistics()
		if err != nil {
			return fmt.Errorf("failed to fetch statistics: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), output.RenderSiteStats(stats, chartWidth))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
