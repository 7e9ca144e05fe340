package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/api"
	"github.com/phishguard/phishctl/pkg/dnscheck"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Manage reported phishing sites",
	Long: `Report suspected phishing sites, validate them against the platform's
threat-intelligence services, and inspect or remove existing reports.`,
}

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all reported sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		sites, err := client.ListSites()
		if err != nil {
			return fmt.Errorf("failed to list sites: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(sites))
		return nil
	},
}

var siteViewCmd = &cobra.Command{
	Use:   "view <site-id>",
	Short: "Show one reported site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid site-id %q", args[0])
		}
		site, err := client.FindSite(id)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(site))
		if site.Malicious {
			fmt.Fprintf(cmd.OutOrStdout(), "\nThis site is validated as malicious; `phishctl takedown generate %d` is available.\n", site.ID)
		}
		return nil
	},
}

var siteReportFlags api.SiteReport

var siteReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a suspected phishing site",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if siteReportFlags.ClientID == 0 {
			return fmt.Errorf("--client is required")
		}
		if err := api.ValidateSiteURL(siteReportFlags.URL); err != nil {
			return err
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would report %q for client %d\n", siteReportFlags.URL, siteReportFlags.ClientID)
			return nil
		}
		created, err := client.ReportSite(siteReportFlags)
		if err != nil {
			return fmt.Errorf("failed to report site: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(created))
		return nil
	},
}

var siteValidateCmd = &cobra.Command{
	Use:   "validate <site-id>",
	Short: "Validate a site against the threat-intelligence services",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid site-id %q", args[0])
		}

		logger.Info("validating site", "id", id)
		res, err := client.ValidateSite(id)
		if err != nil {
			return fmt.Errorf("failed to validate site: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Site %d (%s): detections %s, state %s\n", res.SiteID, res.URL, res.Detections, res.State)
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(res.Verdicts))
		return nil
	},
}

var siteDeleteCmd = &cobra.Command{
	Use:   "delete <site-id>",
	Short: "Delete a reported site and its related records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid site-id %q", args[0])
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would delete site %d\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Delete site %d? Its validations and takedowns are removed too.", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err := client.DeleteSite(id); err != nil {
			return fmt.Errorf("failed to delete site: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Site %d deleted successfully.\n", id)
		return nil
	},
}

var siteCheckResolver string

var siteCheckCmd = &cobra.Command{
	Use:   "check <domain>",
	Short: "Run a local DNS pre-flight on a domain before reporting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := dnscheck.Check(args[0], siteCheckResolver)
		if err != nil {
			return fmt.Errorf("DNS check failed: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(res))
		if !res.Resolves {
			fmt.Fprintln(cmd.OutOrStdout(), "Domain does not resolve; it may already be down.")
		}
		return nil
	},
}

func init() {
	siteReportCmd.Flags().IntVar(&siteReportFlags.ClientID, "client", 0, "client id the site impersonates (required)")
	siteReportCmd.Flags().StringVar(&siteReportFlags.URL, "url", "", "suspected phishing URL (required)")
	siteReportCmd.Flags().StringVar(&siteReportFlags.Notes, "notes", "", "analyst notes")

	siteCheckCmd.Flags().StringVar(&siteCheckResolver, "resolver", dnscheck.DefaultResolver, "nameserver to query")

	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteViewCmd)
	siteCmd.AddCommand(siteReportCmd)
	siteCmd.AddCommand(siteValidateCmd)
	siteCmd.AddCommand(siteDeleteCmd)
	siteCmd.AddCommand(siteCheckCmd)
	rootCmd.AddCommand(siteCmd)
}
