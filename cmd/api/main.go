package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bukusaku-api",
	Short: "Buku Saku shop bookkeeping API",
	Long:  "Runs the Buku Saku HTTP API: cashier, ledger, stock, notes and receipts for a single shop.",
	// With no subcommand the server starts.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPassphraseCmd)
}
