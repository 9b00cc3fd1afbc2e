package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	apiURL  string
	token   string
	timeout time.Duration
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.apiURL, o.token, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "messagingctl",
		Short: "Command-line client for the messaging API",
		Long: `messagingctl talks to a running messaging-api over HTTP.

Examples:
  messagingctl users create alice
  messagingctl threads direct <user1-id> <user2-id>
  messagingctl messages post <thread-id> --sender <user-id> "hello"
  messagingctl config schema`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultURL := os.Getenv("MESSAGING_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8190"
	}
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", defaultURL, "Base URL of the messaging API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("MESSAGING_API_TOKEN"), "Bearer token sent when auth is enabled")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(newUsersCmd(opts))
	rootCmd.AddCommand(newThreadsCmd(opts))
	rootCmd.AddCommand(newMessagesCmd(opts))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPageFlags(cmd *cobra.Command) (*int, *int) {
	page := cmd.Flags().Int("page", 0, "Zero-based page number")
	size := cmd.Flags().Int("size", 20, "Page size")
	return page, size
}
