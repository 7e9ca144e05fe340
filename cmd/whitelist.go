package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/api"
)

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Manage the per-client URL whitelist",
	Long: `URLs on a client's whitelist are excluded from phishing reports.
The client reference of an entry is immutable after creation.`,
}

var whitelistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all whitelist entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		entries, err := client.ListWhitelist()
		if err != nil {
			return fmt.Errorf("failed to list whitelist: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(entries))
		return nil
	},
}

var whitelistAddFlags api.WhitelistCreate

var whitelistAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a URL to a client's whitelist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if whitelistAddFlags.ClientID == 0 {
			return fmt.Errorf("--client is required")
		}
		if err := api.ValidateSiteURL(whitelistAddFlags.URL); err != nil {
			return err
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would whitelist %q for client %d\n", whitelistAddFlags.URL, whitelistAddFlags.ClientID)
			return nil
		}
		created, err := client.AddWhitelist(whitelistAddFlags)
		if err != nil {
			return fmt.Errorf("failed to add whitelist entry: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(created))
		return nil
	},
}

var (
	whitelistUpdateURL  string
	whitelistUpdateDesc string
)

var whitelistUpdateCmd = &cobra.Command{
	Use:   "update <entry-id>",
	Short: "Update a whitelist entry (the client reference cannot change)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry-id %q", args[0])
		}
		updated, err := client.UpdateWhitelist(id, api.WhitelistUpdate{
			URL:         whitelistUpdateURL,
			Description: whitelistUpdateDesc,
		})
		if err != nil {
			return fmt.Errorf("failed to update whitelist entry: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(updated))
		return nil
	},
}

var whitelistDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Remove a URL from the whitelist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid entry-id %q", args[0])
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would delete whitelist entry %d\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Remove whitelist entry %d?", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err := client.DeleteWhitelist(id); err != nil {
			return fmt.Errorf("failed to delete whitelist entry: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Whitelist entry %d deleted successfully.\n", id)
		return nil
	},
}

func init() {
	whitelistAddCmd.Flags().IntVar(&whitelistAddFlags.ClientID, "client", 0, "client id (required, immutable)")
	whitelistAddCmd.Flags().StringVar(&whitelistAddFlags.URL, "url", "", "URL to whitelist (required)")
	whitelistAddCmd.Flags().StringVar(&whitelistAddFlags.Description, "description", "", "why this URL is legitimate")

	whitelistUpdateCmd.Flags().StringVar(&whitelistUpdateURL, "url", "", "replacement URL")
	whitelistUpdateCmd.Flags().StringVar(&whitelistUpdateDesc, "description", "", "replacement description")

	whitelistCmd.AddCommand(whitelistListCmd)
	whitelistCmd.AddCommand(whitelistAddCmd)
	whitelistCmd.AddCommand(whitelistUpdateCmd)
	whitelistCmd.AddCommand(whitelistDeleteCmd)
	rootCmd.AddCommand(whitelistCmd)
}
