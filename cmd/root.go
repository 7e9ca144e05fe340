package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/api"
	"github.com/phishguard/phishctl/pkg/config"
	"github.com/phishguard/phishctl/pkg/output"
	"github.com/phishguard/phishctl/pkg/session"
)

var (
	// Global flags
	cfgFile      string
	outputFormat string
	serverURL    string
	verbose      bool
	dryRun       bool // --dry-run: print actions without executing them
	yesFlag      bool // --yes: skip confirmation prompts for destructive operations

	// Shared state set during PersistentPreRunE
	cfg       *config.Config
	stateDir  string
	sess      *session.Session
	client    api.APIClient
	formatter output.Formatter

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.InfoLevel,
	})

	// Test seams; when set, PersistentPreRunE leaves them alone.
	clientInjected  bool
	sessionInjected bool
)

// rootCmd is the base command for phishctl.
var rootCmd = &cobra.Command{
	Use:   "phishctl",
	Short: "PhishGuard CLI — manage clients, reported sites, whitelist, takedowns, and users",
	Long: `Phishctl is the operator-facing CLI for the PhishGuard anti-phishing
platform. It drives the platform's REST API to report and validate
phishing sites, manage protected clients and their URL whitelists,
generate and track takedown notices, and inspect the audit log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		// Load configuration
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}
		if outputFormat != "" {
			cfg.OutputFormat = outputFormat
		}

		if stateDir == "" {
			stateDir = config.Dir()
		}

		// Load the stored session. Most commands need it; the ones that
		// don't (login, version, update) tolerate its absence.
		if !sessionInjected {
			sess, err = session.Load(stateDir)
			if err != nil && err != session.ErrNotLoggedIn {
				return err
			}
		}
		if sess != nil && session.Expired(sess, time.Now()) {
			logger.Warn("stored session token is expired; log in again if requests fail")
		}

		if !clientInjected {
			token := ""
			if sess != nil {
				token = sess.AccessToken
			}
			client = api.NewHTTPClient(cfg.ServerURL, token, logger)
		}

		formatter = output.NewFormatter(cfg.OutputFormat)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetClient allows tests to inject a mock client.
func SetClient(c api.APIClient) {
	client = c
	clientInjected = true
}

// SetSession allows tests to inject an identity without a session file.
func SetSession(s *session.Session) {
	sess = s
	sessionInjected = true
}

// SetFormatter allows tests to inject a formatter.
func SetFormatter(f output.Formatter) {
	formatter = f
}

// RootCmd returns the root cobra.Command for testing purposes.
func RootCmd() *cobra.Command {
	return rootCmd
}

// requireSession fails commands that need a logged-in operator before any
// network call is made.
func requireSession() error {
	if sess == nil {
		return session.ErrNotLoggedIn
	}
	return nil
}

// requireAdmin guards the admin-only surfaces (users, clients, audit log).
// The check gates presentation only; the API re-validates every request.
func requireAdmin() error {
	if err := requireSession(); err != nil {
		return err
	}
	if !session.CanManage(sess.Identity) {
		return fmt.Errorf("this action requires the %s role", api.RoleAdmin)
	}
	return nil
}

// confirm prompts for explicit confirmation of a destructive or
// state-advancing action. --yes skips the prompt.
func confirm(cmd *cobra.Command, prompt string) bool {
	if yesFlag {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Scan()
	return strings.ToLower(strings.TrimSpace(scanner.Text())) == "y"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.phishguard/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml (default \"table\")")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "PhishGuard API server URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print actions that would be taken without executing them")
	rootCmd.PersistentFlags().BoolVar(&yesFlag, "yes", false, "skip confirmation prompts for destructive operations")
}
