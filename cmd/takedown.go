package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phishguard/phishctl/pkg/api"
)

var takedownCmd = &cobra.Command{
	Use:   "takedown",
	Short: "Generate, send, and track takedown notices",
	Long: `A takedown notice moves through pendiente -> enviado -> confirmado.
Generate a server-composed draft for a validated-malicious site, edit it,
persist it, then either dispatch it by email or mark it sent by hand and
confirm once the provider takes the site down.`,
}

var takedownListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all takedown notices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		takedowns, err := client.ListTakedowns()
		if err != nil {
			return fmt.Errorf("failed to list takedowns: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(takedowns))
		return nil
	},
}

var takedownViewCmd = &cobra.Command{
	Use:   "view <takedown-id>",
	Short: "Show one takedown notice and the actions its state allows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid takedown-id %q", args[0])
		}
		td, err := client.FindTakedown(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, formatter.Format(td))
		fmt.Fprintf(out, "\nRecipients: %s", td.Recipient)
		if n := api.ExtraRecipientCount(td); n > 0 {
			fmt.Fprintf(out, " (+%d additional)", n)
		}
		fmt.Fprintln(out)

		actions := api.AvailableActions(td.State)
		if len(actions) == 0 {
			fmt.Fprintf(out, "State %s is terminal; no actions available.\n", td.State)
			return nil
		}
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		fmt.Fprintf(out, "Available actions: %s\n", strings.Join(names, ", "))
		return nil
	},
}

// draftFile is the on-disk shape of a generated draft: the creation
// payload prefilled by the server, plus the common abuse contacts for
// reference and for --include-common.
type draftFile struct {
	api.TakedownCreate `yaml:",inline"`
	CommonAbuseEmails  []string `yaml:"emails_abuse_comunes,omitempty"`
}

var takedownGenerateOut string

var takedownGenerateCmd = &cobra.Command{
	Use:   "generate <site-id>",
	Short: "Generate a server-composed draft notice for a malicious site",
	Long: `Ask the server to compose a takedown notice for a site that has been
validated as malicious: subject, body, a suggested abuse contact derived
from the fraudulent domain, and a list of common abuse addresses.

The draft is printed read-only. Pass --out to write it to a yaml file,
edit it deliberately, and persist it with
` + "`phishctl takedown create --file <draft>`" + `.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		siteID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid site-id %q", args[0])
		}

		draft, err := client.GenerateTakedown(siteID)
		if err != nil {
			return fmt.Errorf("failed to generate takedown: %w", err)
		}

		if takedownGenerateOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), formatter.Format(draft))
			fmt.Fprintln(cmd.OutOrStdout(), "\nDraft not persisted. Re-run with --out to save an editable draft file.")
			return nil
		}

		file := draftFile{
			TakedownCreate: api.TakedownCreate{
				SiteID:    draft.SiteID,
				Recipient: draft.SuggestedRecipient,
				Subject:   draft.Subject,
				Body:      draft.Body,
			},
			CommonAbuseEmails: draft.CommonAbuseEmails,
		}
		data, err := yaml.Marshal(file)
		if err != nil {
			return fmt.Errorf("encode draft: %w", err)
		}
		if err := os.WriteFile(takedownGenerateOut, data, 0o600); err != nil {
			return fmt.Errorf("write draft: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Draft for site %d written to %s. Edit it, then run `phishctl takedown create --file %s`.\n",
			draft.SiteID, takedownGenerateOut, takedownGenerateOut)
		return nil
	},
}

var (
	takedownCreateFile    string
	takedownCreateSite    int
	takedownCreateTo      string
	takedownCreateCC      []string
	takedownIncludeCommon bool
)

var takedownCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Persist a takedown notice (created in state pendiente)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		var payload api.TakedownCreate
		var common []string

		if takedownCreateFile != "" {
			data, err := os.ReadFile(takedownCreateFile)
			if err != nil {
				return fmt.Errorf("read draft: %w", err)
			}
			var file draftFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("decode draft: %w", err)
			}
			payload = file.TakedownCreate
			common = file.CommonAbuseEmails
		}

		if takedownCreateSite != 0 {
			payload.SiteID = takedownCreateSite
		}
		if takedownCreateTo != "" {
			payload.Recipient = takedownCreateTo
		}
		payload.ExtraRecipients = append(payload.ExtraRecipients, takedownCreateCC...)

		if takedownIncludeCommon {
			if len(common) == 0 {
				draft, err := client.GenerateTakedown(payload.SiteID)
				if err != nil {
					return fmt.Errorf("failed to fetch common abuse contacts: %w", err)
				}
				common = draft.CommonAbuseEmails
			}
			payload.ExtraRecipients = append(payload.ExtraRecipients, common...)
		}

		if payload.SiteID == 0 {
			return fmt.Errorf("a site id is required (--site or a draft file)")
		}
		if err := api.ValidateRecipient(payload.Recipient); err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would create takedown for site %d with %d recipient(s)\n",
				payload.SiteID, 1+len(payload.ExtraRecipients))
			return nil
		}

		created, err := client.CreateTakedown(payload)
		if err != nil {
			return fmt.Errorf("failed to create takedown: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Takedown %d created in state %s.\n", created.ID, created.State)
		return nil
	},
}

// requireTakedownAction fetches the notice and refuses a transition its
// current state does not offer. The server stores whatever state a PUT
// carries, so ordering is enforced here: states only advance, never skip.
func requireTakedownAction(id int, action api.TakedownAction) (*api.Takedown, error) {
	td, err := client.FindTakedown(id)
	if err != nil {
		return nil, err
	}
	for _, a := range api.AvailableActions(td.State) {
		if a == action {
			return td, nil
		}
	}
	return nil, fmt.Errorf("takedown %d is in state %s; %s is not available", id, td.State, action)
}

var takedownMarkSentCmd = &cobra.Command{
	Use:   "mark-sent <takedown-id>",
	Short: "Mark a pending notice as sent by hand (no email is dispatched)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid takedown-id %q", args[0])
		}
		if _, err := requireTakedownAction(id, api.ActionMarkSent); err != nil {
			return err
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would mark takedown %d as sent\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Mark takedown %d as sent? The site moves to takedown_enviado.", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err := client.MarkTakedownSent(id); err != nil {
			return fmt.Errorf("failed to mark takedown sent: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Takedown %d marked as sent.\n", id)
		return nil
	},
}

var takedownProviderResponse string

var takedownConfirmCmd = &cobra.Command{
	Use:   "confirm <takedown-id>",
	Short: "Confirm a sent notice (the site is recorded as down)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid takedown-id %q", args[0])
		}
		if _, err := requireTakedownAction(id, api.ActionConfirm); err != nil {
			return err
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would confirm takedown %d\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Confirm takedown %d? The site moves to sitio_caido.", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		updated, err := client.ConfirmTakedown(id, takedownProviderResponse)
		if err != nil {
			return fmt.Errorf("failed to confirm takedown: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Takedown %d confirmed.\n", updated.ID)

		// The confirmation flips the related site to sitio_caido, so the
		// aggregate counts change with it.
		if stats, err := client.SiteStatistics(); err != nil {
			logger.Debug("failed to refresh statistics", "error", err)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Sites down: %d\n", stats.SitesByState[string(api.SiteDown)])
		}
		return nil
	},
}

var takedownSendEmailCmd = &cobra.Command{
	Use:   "send-email <takedown-id>",
	Short: "Dispatch a pending notice by email to all configured recipients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid takedown-id %q", args[0])
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would send takedown %d by email\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Send takedown %d by email now?", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		res, err := client.SendTakedownEmail(id)
		if err != nil {
			return fmt.Errorf("failed to send takedown email: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nSent to: %s\n", res.Message, strings.Join(res.Recipients, ", "))
		return nil
	},
}

var takedownDeleteCmd = &cobra.Command{
	Use:   "delete <takedown-id>",
	Short: "Delete a takedown notice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid takedown-id %q", args[0])
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would delete takedown %d\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Delete takedown %d?", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err := client.DeleteTakedown(id); err != nil {
			return fmt.Errorf("failed to delete takedown: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Takedown %d deleted successfully.\n", id)
		return nil
	},
}

func init() {
	takedownGenerateCmd.Flags().StringVar(&takedownGenerateOut, "out", "", "write the draft to a yaml file for editing")

	takedownCreateCmd.Flags().StringVarP(&takedownCreateFile, "file", "f", "", "draft yaml file from `takedown generate --out`")
	takedownCreateCmd.Flags().IntVar(&takedownCreateSite, "site", 0, "site id")
	takedownCreateCmd.Flags().StringVar(&takedownCreateTo, "recipient", "", "primary recipient (required)")
	takedownCreateCmd.Flags().StringSliceVar(&takedownCreateCC, "cc", nil, "additional recipients")
	takedownCreateCmd.Flags().BoolVar(&takedownIncludeCommon, "include-common", false, "also notify the common abuse-contact addresses")

	takedownConfirmCmd.Flags().StringVar(&takedownProviderResponse, "provider-response", "", "response text from the hosting provider")

	takedownCmd.AddCommand(takedownListCmd)
	takedownCmd.AddCommand(takedownViewCmd)
	takedownCmd.AddCommand(takedownGenerateCmd)
	takedownCmd.AddCommand(takedownCreateCmd)
	takedownCmd.AddCommand(takedownMarkSentCmd)
	takedownCmd.AddCommand(takedownConfirmCmd)
	takedownCmd.AddCommand(takedownSendEmailCmd)
	takedownCmd.AddCommand(takedownDeleteCmd)
	rootCmd.AddCommand(takedownCmd)
}
