package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Juninho21/split-de-pagamentos/internal/module/admin"
)

func adminCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard administrators",
	}
	cmd.AddCommand(adminUpsertCmd(c))
	return cmd
}

func adminUpsertCmd(c *cli) *cobra.Command {
	var in admin.CreateInput

	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create an administrator or reset its password",
		Long: `Creates the administrator account for --email. When the account
already exists its password (and display name, if given) is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, created, err := c.app.Deps().AdminService.Upsert(cmd.Context(), in)
			if err != nil {
				return err
			}

			action := "updated"
			if created {
				action = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s: %s (uid %s)\n", action, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Administrator email")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Password (at least 6 characters)")
	cmd.Flags().StringVarP(&in.DisplayName, "name", "n", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
