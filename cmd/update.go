package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const updateRepo = "phishguard/phishctl"

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update phishctl to the latest released version",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := semver.Parse(version)
		if err != nil {
			return fmt.Errorf("parse current version: %w", err)
		}

		latest, err := selfupdate.UpdateSelf(current, updateRepo)
		if err != nil {
			return fmt.Errorf("self-update failed: %w", err)
		}

		if latest.Version.Equals(current) {
			fmt.Fprintf(cmd.OutOrStdout(), "phishctl %s is already the latest version.\n", version)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated to phishctl %s.\n", latest.Version)
		fmt.Fprintln(cmd.OutOrStdout(), latest.ReleaseNotes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
