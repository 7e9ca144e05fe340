package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/session"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the PhishGuard API and store the session",
	Long: `Authenticate with a username and password. On success the access token
and identity record are stored in ~/.phishguard/session.json and used by
every subsequent command until logout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewScanner(cmd.InOrStdin())

		username := loginUsername
		if username == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Username: ")
			reader.Scan()
			username = strings.TrimSpace(reader.Text())
		}
		password := loginPassword
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			reader.Scan()
			password = reader.Text()
		}
		if username == "" || password == "" {
			return fmt.Errorf("username and password are required")
		}

		logger.Info("logging in", "server", cfg.ServerURL, "user", username)

		res, err := client.Login(username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := session.Save(stateDir, &session.Session{
			AccessToken: res.AccessToken,
			Identity:    res.User,
		}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s).\n", res.User.FullName, res.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Clear(stateDir); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(sess.Identity))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
