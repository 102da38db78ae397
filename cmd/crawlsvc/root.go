package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawlsvc",
		Short: "Website crawl service backed by third-party crawl providers",
		Long: `crawlsvc forwards website crawl and scrape requests to a tenant's configured
crawl provider and normalizes the provider's answers.

Configuration is read from the file given with --config and from CRAWLSVC_*
environment variables (for example CRAWLSVC_POSTGRES_URL).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML configuration file")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewBindingCmd())
	cmd.AddCommand(NewCrawlCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
