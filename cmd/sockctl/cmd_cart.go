package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/sockshoplabs/storefront-go/internal/cart"
	"github.com/sockshoplabs/storefront-go/pkg/types"
	"github.com/spf13/cobra"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(
		newCartShowCmd(a),
		newCartAddCmd(a),
		newCartUpdateCmd(a),
		newCartRemoveCmd(a),
		newCartClearCmd(a),
	)
	return cmd
}

func newCartShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			printCart(cmd, a.cart.Items())
			return nil
		},
	}
}

func newCartAddCmd(a *app) *cobra.Command {
	var (
		name     string
		qty      int
		price    string
		size     string
		imageURL string
	)

	cmd := &cobra.Command{
		Use:   "add <variant-id>",
		Short: "Add a sock variant to the cart",
		Long:  "Adds a line to the cart. Adding a variant already in the cart merges the quantities.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variantID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("variant id must be a number")
			}
			amount, err := types.MoneyFromString(price)
			if err != nil {
				return fmt.Errorf("parsing price: %w", err)
			}
			snapshot, err := a.cart.AddItem(cmd.Context(), cart.LineItem{
				SockVariantID: variantID,
				Name:          name,
				Quantity:      qty,
				Price:         amount,
				Size:          types.SockSize(size),
				ImageURL:      imageURL,
			})
			if err != nil {
				return err
			}
			printCart(cmd, snapshot)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().IntVar(&qty, "qty", 1, "quantity to add")
	cmd.Flags().StringVar(&price, "price", "", "unit price, e.g. 12.50")
	cmd.Flags().StringVar(&size, "size", "", "size: S, M, LG or XL")
	cmd.Flags().StringVar(&imageURL, "image", "", "image url")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("size")
	cmd.MarkFlagRequired("image")
	return cmd
}

func newCartUpdateCmd(a *app) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "update <variant-id>",
		Short: "Change the quantity of a cart line",
		Long:  "Sets the quantity for the line. Zero removes it; a line not in the cart is left alone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			variantID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("variant id must be a number")
			}
			line, ok := a.cart.Items().Find(variantID)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "variant %d is not in the cart\n", variantID)
				return nil
			}
			line.Quantity = qty
			snapshot, err := a.cart.UpdateItem(cmd.Context(), variantID, line)
			if err != nil {
				return err
			}
			printCart(cmd, snapshot)
			return nil
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().IntVar(&qty, "qty", 1, "new quantity (0 removes the line)")
	cmd.MarkFlagRequired("qty")
	return cmd
}

func newCartRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <variant-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variantID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("variant id must be a number")
			}
			snapshot, err := a.cart.RemoveItem(cmd.Context(), cart.LineItem{SockVariantID: variantID})
			if err != nil {
				return err
			}
			printCart(cmd, snapshot)
			return nil
		},
	}
}

func newCartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.cart.Empty(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cart emptied")
			return nil
		},
	}
}

func printCart(cmd *cobra.Command, snapshot cart.Snapshot) {
	out := cmd.OutOrStdout()
	if len(snapshot) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tNAME\tSIZE\tQTY\tPRICE")
	for _, line := range snapshot {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", line.SockVariantID, line.Name, line.Size, line.Quantity, line.Price)
	}
	w.Flush()
	fmt.Fprintf(out, "%d items, subtotal %s\n", snapshot.TotalQuantity(), snapshot.Subtotal())
}
