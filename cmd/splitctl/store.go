package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func storeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the configured store",
	}
	cmd.AddCommand(storeCheckCmd(c))
	return cmd
}

func storeCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify connectivity and print record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps := c.app.Deps()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Store")
			fmt.Fprintln(out, strings.Repeat("=", 30))
			fmt.Fprintf(out, "  Driver:    %s\n", deps.Config.Database.Driver)
			if deps.Redis != nil {
				fmt.Fprintln(out, "  Redis:     connected")
			} else {
				fmt.Fprintln(out, "  Redis:     disabled")
			}

			if err := c.app.Check(ctx); err != nil {
				fmt.Fprintf(out, "  Status:    FAILED (%s)\n", err)
				return fmt.Errorf("store unreachable: %w", err)
			}
			fmt.Fprintln(out, "  Status:    OK")

			sellers, err := deps.SellerService.Count(ctx)
			if err != nil {
				return fmt.Errorf("count sellers: %w", err)
			}
			payments, err := deps.PaymentRepo.List(ctx)
			if err != nil {
				return fmt.Errorf("list payments: %w", err)
			}
			admins, err := deps.AdminService.List(ctx)
			if err != nil {
				return fmt.Errorf("list admins: %w", err)
			}

			fmt.Fprintln(out, "\nRecords:")
			fmt.Fprintf(out, "  sellers:   %d\n", sellers)
			fmt.Fprintf(out, "  payments:  %d\n", len(payments))
			fmt.Fprintf(out, "  admins:    %d\n", len(admins))
			return nil
		},
	}
}
