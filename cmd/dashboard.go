package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/tui"
)

// dashboardCmd launches the interactive TUI dashboard.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive TUI dashboard",
	Long: `Launch an interactive terminal dashboard with live data about
reported sites, takedown notices, and the whitelist. Users with the
administrador role also get the Users, Clients, and Audit tabs. Data is
refreshed every 5 seconds from the PhishGuard API server.

Key bindings:
  Tab / Shift+Tab  Navigate between tabs
  1 .. 7           Jump directly to a tab
  r                Force an immediate data refresh
  q / Ctrl+C       Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		p := tea.NewProgram(tui.New(client, sess.Identity, cfg.ServerURL), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
