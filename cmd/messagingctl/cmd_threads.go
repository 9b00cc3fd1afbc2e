package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
)

func newThreadsCmd(opts *rootOptions) *cobra.Command {
	threadsCmd := &cobra.Command{
		Use:   "threads",
		Short: "Create and inspect threads",
	}

	threadsCmd.AddCommand(&cobra.Command{
		Use:   "direct <user1-id> <user2-id>",
		Short: "Get or create the direct thread between two users",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"user1Id": args[0], "user2Id": args[1]}
			raw, err := opts.client().do(cmd.Context(), http.MethodPut, "/threads/direct", body, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	})

	groupCmd := &cobra.Command{
		Use:   "group <user-id> <user-id> <user-id>...",
		Short: "Create a group thread",
		Args:  cobra.MinimumNArgs(1),
	}
	name := groupCmd.Flags().String("name", "", "Thread name")
	sender := groupCmd.Flags().String("sender", "", "Sender of the initial message")
	message := groupCmd.Flags().String("message", "", "Initial message")
	groupCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if *message != "" && *sender == "" {
			return errors.New("--sender is required with --message")
		}
		body := map[string]any{"participantIds": args}
		if *name != "" {
			body["name"] = *name
		}
		if *message != "" {
			body["senderId"] = *sender
			body["initialMessage"] = *message
		}
		raw, err := opts.client().do(cmd.Context(), http.MethodPost, "/threads/group", body, nil)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), raw)
	}
	threadsCmd.AddCommand(groupCmd)

	threadsCmd.AddCommand(&cobra.Command{
		Use:   "get <thread-id>",
		Short: "Show a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := opts.client().do(cmd.Context(), http.MethodGet, "/threads/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	})

	messagesCmd := &cobra.Command{
		Use:   "messages <thread-id>",
		Short: "List a thread's messages in posting order",
		Args:  cobra.ExactArgs(1),
	}
	page, size := addPageFlags(messagesCmd)
	messagesCmd.RunE = func(cmd *cobra.Command, args []string) error {
		raw, err := opts.client().do(cmd.Context(), http.MethodGet, "/threads/"+args[0]+"/messages", nil, pageQuery(*page, *size))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), raw)
	}
	threadsCmd.AddCommand(messagesCmd)

	return threadsCmd
}
