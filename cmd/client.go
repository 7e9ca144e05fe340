package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/api"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage protected clients (admin only)",
	Long:  "List, register, update, and delete the clients whose brands the platform protects.",
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		clients, err := client.ListClients()
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(clients))
		return nil
	},
}

var clientCreateFlags api.ClientCreate

var clientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a client",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		if clientCreateFlags.Name == "" || clientCreateFlags.Domain == "" {
			return fmt.Errorf("--name and --domain are required")
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would create client %q\n", clientCreateFlags.Name)
			return nil
		}
		created, err := client.CreateClient(clientCreateFlags)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(created))
		return nil
	},
}

var (
	clientUpdateName    string
	clientUpdateDomain  string
	clientUpdateContact string
	clientUpdateEmail   string
	clientUpdatePhone   string
	clientUpdateActive  string
)

var clientUpdateCmd = &cobra.Command{
	Use:   "update <client-id>",
	Short: "Update a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid client-id %q", args[0])
		}

		payload := api.ClientUpdate{
			Name:         clientUpdateName,
			Domain:       clientUpdateDomain,
			ContactName:  clientUpdateContact,
			ContactEmail: clientUpdateEmail,
			ContactPhone: clientUpdatePhone,
		}
		switch clientUpdateActive {
		case "":
		case "true", "false":
			active := clientUpdateActive == "true"
			payload.Active = &active
		default:
			return fmt.Errorf("--active must be true or false")
		}

		updated, err := client.UpdateClient(id, payload)
		if err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(updated))
		return nil
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client (cascades to its reported sites)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid client-id %q", args[0])
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would delete client %d\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Delete client %d? This also removes its reported sites.", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err := client.DeleteClient(id); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client %d deleted successfully.\n", id)
		return nil
	},
}

func init() {
	clientCreateCmd.Flags().StringVar(&clientCreateFlags.Name, "name", "", "client name (required)")
	clientCreateCmd.Flags().StringVar(&clientCreateFlags.Domain, "domain", "", "legitimate domain (required)")
	clientCreateCmd.Flags().StringVar(&clientCreateFlags.ContactName, "contact", "", "contact name")
	clientCreateCmd.Flags().StringVar(&clientCreateFlags.ContactEmail, "contact-email", "", "contact email")
	clientCreateCmd.Flags().StringVar(&clientCreateFlags.ContactPhone, "contact-phone", "", "contact phone")

	clientUpdateCmd.Flags().StringVar(&clientUpdateName, "name", "", "client name")
	clientUpdateCmd.Flags().StringVar(&clientUpdateDomain, "domain", "", "legitimate domain")
	clientUpdateCmd.Flags().StringVar(&clientUpdateContact, "contact", "", "contact name")
	clientUpdateCmd.Flags().StringVar(&clientUpdateEmail, "contact-email", "", "contact email")
	clientUpdateCmd.Flags().StringVar(&clientUpdatePhone, "contact-phone", "", "contact phone")
	clientUpdateCmd.Flags().StringVar(&clientUpdateActive, "active", "", "set active flag: true or false")

	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientCreateCmd)
	clientCmd.AddCommand(clientUpdateCmd)
	clientCmd.AddCommand(clientDeleteCmd)
	rootCmd.AddCommand(clientCmd)
}
