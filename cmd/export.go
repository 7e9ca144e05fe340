package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportClientID int
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a client's reported sites as a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		// Refuse locally when the client has no reports; the server
		// would answer the same, but this keeps an empty file from
		// ever being offered.
		sites, err := client.ListSites()
		if err != nil {
			return fmt.Errorf("failed to list sites: %w", err)
		}
		count := 0
		for _, s := range sites {
			if s.ClientID == exportClientID {
				count++
			}
		}
		if count == 0 {
			return fmt.Errorf("client %d has no reported sites; nothing to export", exportClientID)
		}

		export, err := client.ExportClientCSV(exportClientID)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		name := exportOut
		if name == "" {
			name = export.Filename
		}
		if err := os.WriteFile(name, export.Data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d site(s) to %s.\n", count, name)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportClientID, "client", 0, "client id (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (defaults to the server-provided name)")
	exportCmd.MarkFlagRequired("client")
	rootCmd.AddCommand(exportCmd)
}
