// Command splitctl is the operator CLI for the split payment backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Juninho21/split-de-pagamentos/internal/app"
)

var Version = "dev"

// cli carries the application shared by every subcommand.
type cli struct {
	app *app.App
}

func main() {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "splitctl",
		Short:         "Operator tooling for Split de Pagamentos",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Log application output to stderr")

	rootCmd.AddCommand(adminCmd(c))
	rootCmd.AddCommand(storeCmd(c))
	rootCmd.AddCommand(sellersCmd(c))

	err := rootCmd.Execute()
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var opts []app.Option
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		opts = append(opts, app.WithLogger(zap.NewNop()))
	}

	application, err := app.New(cfg, opts...)
	if err != nil {
		return err
	}
	c.app = application
	return nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Stop()
		c.app = nil
	}
}
