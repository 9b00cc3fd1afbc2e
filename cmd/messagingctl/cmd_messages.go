package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func newMessagesCmd(opts *rootOptions) *cobra.Command {
	messagesCmd := &cobra.Command{
		Use:   "messages",
		Short: "Post and read messages",
	}

	postCmd := &cobra.Command{
		Use:   "post <thread-id> <content>",
		Short: "Post a message to a thread",
		Args:  cobra.ExactArgs(2),
	}
	sender := postCmd.Flags().String("sender", "", "Sending user ID")
	_ = postCmd.MarkFlagRequired("sender")
	postCmd.RunE = func(cmd *cobra.Command, args []string) error {
		body := map[string]string{"senderId": *sender, "content": args[1]}
		raw, err := opts.client().do(cmd.Context(), http.MethodPost, "/threads/"+args[0]+"/messages", body, nil)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), raw)
	}
	messagesCmd.AddCommand(postCmd)

	messagesCmd.AddCommand(&cobra.Command{
		Use:   "get <thread-id> <message-id>",
		Short: "Show a message of a thread",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := opts.client().do(cmd.Context(), http.MethodGet, "/threads/"+args[0]+"/messages/"+args[1], nil, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	})

	return messagesCmd
}
