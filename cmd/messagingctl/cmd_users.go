package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func newUsersCmd(opts *rootOptions) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Register and look up users",
	}

	usersCmd.AddCommand(&cobra.Command{
		Use:   "create <username>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := opts.client().do(cmd.Context(), http.MethodPost, "/users", map[string]string{"username": args[0]}, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	})

	usersCmd.AddCommand(&cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := opts.client().do(cmd.Context(), http.MethodGet, "/users/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users in registration order",
		Args:  cobra.NoArgs,
	}
	listPage, listSize := addPageFlags(listCmd)
	listCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		raw, err := opts.client().do(cmd.Context(), http.MethodGet, "/users", nil, pageQuery(*listPage, *listSize))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), raw)
	}
	usersCmd.AddCommand(listCmd)

	threadsCmd := &cobra.Command{
		Use:   "threads <user-id>",
		Short: "List a user's threads, most recent activity first",
		Args:  cobra.ExactArgs(1),
	}
	threadsPage, threadsSize := addPageFlags(threadsCmd)
	threadsCmd.RunE = func(cmd *cobra.Command, args []string) error {
		raw, err := opts.client().do(cmd.Context(), http.MethodGet, "/users/"+args[0]+"/threads", nil, pageQuery(*threadsPage, *threadsSize))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), raw)
	}
	usersCmd.AddCommand(threadsCmd)

	return usersCmd
}
