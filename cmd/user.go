package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phishguard/phishctl/pkg/api"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage platform accounts (admin only)",
	Long:  "List, create, update, and delete platform accounts. Usernames are immutable after creation.",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		users, err := client.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(users))
		return nil
	},
}

var userCreateFlags api.UserCreate

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		if userCreateFlags.Username == "" || userCreateFlags.Password == "" {
			return fmt.Errorf("--username and --password are required")
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would create user %q\n", userCreateFlags.Username)
			return nil
		}
		created, err := client.CreateUser(userCreateFlags)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(created))
		return nil
	},
}

var (
	userUpdateFullName string
	userUpdateEmail    string
	userUpdatePassword string
	userUpdateRoleID   int
	userUpdateActive   string
)

var userUpdateCmd = &cobra.Command{
	Use:   "update <user-id>",
	Short: "Update an account (the username cannot be changed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user-id %q", args[0])
		}

		payload := api.UserUpdate{
			FullName: userUpdateFullName,
			Email:    userUpdateEmail,
			Password: userUpdatePassword,
			RoleID:   userUpdateRoleID,
		}
		switch userUpdateActive {
		case "":
		case "true", "false":
			active := userUpdateActive == "true"
			payload.Active = &active
		default:
			return fmt.Errorf("--active must be true or false")
		}

		updated, err := client.UpdateUser(id, payload)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(updated))
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user-id %q", args[0])
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "(dry-run) would delete user %d\n", id)
			return nil
		}
		if !confirm(cmd, fmt.Sprintf("Delete user %d?", id)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		if err := client.DeleteUser(id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %d deleted successfully.\n", id)
		return nil
	},
}

var userRolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List assignable roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		roles, err := client.ListRoles()
		if err != nil {
			return fmt.Errorf("failed to list roles: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(roles))
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userCreateFlags.FullName, "name", "", "full name")
	userCreateCmd.Flags().StringVar(&userCreateFlags.Email, "email", "", "email address")
	userCreateCmd.Flags().StringVar(&userCreateFlags.Username, "username", "", "login username (required, immutable)")
	userCreateCmd.Flags().StringVar(&userCreateFlags.Password, "password", "", "initial password (required)")
	userCreateCmd.Flags().IntVar(&userCreateFlags.RoleID, "role", 2, "role id (see `phishctl user roles`)")

	userUpdateCmd.Flags().StringVar(&userUpdateFullName, "name", "", "full name")
	userUpdateCmd.Flags().StringVar(&userUpdateEmail, "email", "", "email address")
	userUpdateCmd.Flags().StringVar(&userUpdatePassword, "password", "", "new password")
	userUpdateCmd.Flags().IntVar(&userUpdateRoleID, "role", 0, "role id")
	userUpdateCmd.Flags().StringVar(&userUpdateActive, "active", "", "set active flag: true or false")

	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userRolesCmd)
	rootCmd.AddCommand(userCmd)
}
