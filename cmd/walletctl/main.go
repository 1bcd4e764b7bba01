package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &client{}

	rootCmd := &cobra.Command{
		Use:           "walletctl",
		Short:         "Game wallet operations tool",
		Long:          `A command line interface for operating the game wallet: migrations, accounts, partners and consistency checks.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&c.baseURL, "url", envOr("WALLET_URL", "http://localhost:8080"), "Base URL of the wallet API")
	rootCmd.PersistentFlags().StringVar(&c.adminToken, "admin-token", os.Getenv("ADMIN_TOKEN"), "Token for the admin API")
	rootCmd.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		migrateCmd(),
		partnerCmd(),
		accountCmd(c),
		balanceCmd(c),
		consistencyCmd(c),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
