package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iasolb/EdgewaterInventoryManager/internal/app"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

var (
	userRole       string
	userPermission string
)

var userAddCmd = &cobra.Command{
	Use:   "user:add EMAIL PASSWORD",
	Short: "Create a user for AUTH_TYPE=db",
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		err := withApp(func(ctx context.Context, a *app.App) error {
			u, err := a.Farm.AddUser(ctx, entity.User{Email: args[0], Role: userRole, PermissionLevel: userPermission}, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "created user %s (%s)\n", green(u.UserID), u.Email)
			return nil
		})
		if err != nil {
			fail(c, err)
		}
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "user:passwd USER_ID PASSWORD",
	Short: "Replace a user's password",
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fail(c, fmt.Errorf("user id: %w", err))
		}
		err = withApp(func(ctx context.Context, a *app.App) error {
			return a.Farm.SetPassword(ctx, id, args[1])
		})
		if err != nil {
			fail(c, err)
		}
		fmt.Fprintln(c.OutOrStdout(), green("password updated"))
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userRole, "role", "staff", "Role name")
	userAddCmd.Flags().StringVar(&userPermission, "permission", "read", "Permission level")
	rootCmd.AddCommand(userAddCmd, userPasswdCmd)
}
