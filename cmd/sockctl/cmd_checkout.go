package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Start or confirm a checkout",
	}
	cmd.AddCommand(newCheckoutStartCmd(a), newCheckoutConfirmCmd(a))
	return cmd
}

func newCheckoutStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Submit the cart and get the payment redirect",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.checkout.Start(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "checkout %s started\n", res.CheckoutID)
			fmt.Fprintf(out, "complete payment at: %s\n", res.RedirectURL)
			fmt.Fprintf(out, "then run: sockctl checkout confirm %s\n", res.CheckoutID)
			return nil
		},
	}
}

func newCheckoutConfirmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <checkout-id>",
		Short: "Confirm a paid checkout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.checkout.Confirm(cmd.Context(), args[0])
			if err != nil {
				if res != nil {
					// Order went through; only the local cart cleanup failed.
					fmt.Fprintf(cmd.OutOrStdout(), "order %s placed: %s\n", res.OrderID, res.Message)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order %s placed: %s\n", res.OrderID, res.Message)
			return nil
		},
	}
}
