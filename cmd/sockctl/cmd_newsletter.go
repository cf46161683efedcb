package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewsletterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newsletter",
		Short: "Newsletter signups",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "subscribe <email>",
		Short: "Subscribe an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := a.newsletter.Subscribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	})
	return cmd
}
