package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func sellersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sellers",
		Short: "Manage connected sellers",
	}
	cmd.AddCommand(sellersListCmd(c))
	cmd.AddCommand(sellersDeleteCmd(c))
	return cmd
}

func sellersListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected sellers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sellers, err := c.app.Deps().SellerService.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sellers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sellers connected")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCONNECTED AT\tLIVE")
			for _, s := range sellers {
				fmt.Fprintf(w, "%s\t%s\t%t\n", s.ID, s.ConnectedAt.UTC().Format(time.RFC3339), s.LiveMode)
			}
			return w.Flush()
		},
	}
}

func sellersDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <seller-id>",
		Short: "Remove a seller and its stored credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Deps().SellerService.Disconnect(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seller %s removed\n", args[0])
			return nil
		},
	}
}
