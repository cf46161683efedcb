package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sockshoplabs/storefront-go/internal/admins"
	"github.com/sockshoplabs/storefront-go/internal/catalog"
	"github.com/sockshoplabs/storefront-go/pkg/pagination"
	"github.com/sockshoplabs/storefront-go/pkg/types"
	"github.com/spf13/cobra"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office operations (requires an admin session)",
	}
	cmd.AddCommand(newAdminSocksCmd(a), newAdminOrdersCmd(a), newAdminAccountsCmd(a))
	return cmd
}

func newAdminSocksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "socks",
		Short: "Manage the sock inventory",
	}
	cmd.AddCommand(newAdminSockAddCmd(a), newAdminSockUpdateCmd(a), newAdminSockRemoveCmd(a))
	return cmd
}

func sockInputFlags(cmd *cobra.Command, name, description, price, imageURL *string, variants *[]string) {
	cmd.Flags().StringVar(name, "name", "", "product name")
	cmd.Flags().StringVar(description, "desc", "", "product description")
	cmd.Flags().StringVar(price, "price", "", "unit price, e.g. 12.50")
	cmd.Flags().StringVar(imageURL, "image", "", "image url")
	cmd.Flags().StringArrayVar(variants, "variant", nil, "variant as id:size:stock, repeatable")
}

func parseVariants(raw []string) ([]catalog.Variant, error) {
	variants := make([]catalog.Variant, 0, len(raw))
	for _, spec := range raw {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("variant %q must be id:size:stock", spec)
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("variant %q: id must be a number", spec)
		}
		stock, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("variant %q: stock must be a number", spec)
		}
		variants = append(variants, catalog.Variant{
			ID:    id,
			Size:  types.SockSize(parts[1]),
			Stock: stock,
		})
	}
	return variants, nil
}

func newAdminSockAddCmd(a *app) *cobra.Command {
	var (
		name        string
		description string
		price       string
		imageURL    string
		variantSpec []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a sock to inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := types.MoneyFromString(price)
			if err != nil {
				return fmt.Errorf("parsing price: %w", err)
			}
			variants, err := parseVariants(variantSpec)
			if err != nil {
				return err
			}
			sock, err := a.catalog.Create(cmd.Context(), catalog.CreateSockInput{
				Name:        name,
				Description: description,
				Price:       amount,
				ImageURL:    imageURL,
				Variants:    variants,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created sock %d\n", sock.ID)
			return nil
		},
	}

	sockInputFlags(cmd, &name, &description, &price, &imageURL, &variantSpec)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("image")
	cmd.MarkFlagRequired("variant")
	return cmd
}

func newAdminSockUpdateCmd(a *app) *cobra.Command {
	var (
		name        string
		description string
		price       string
		imageURL    string
		variantSpec []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a sock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("sock id must be a number")
			}
			amount, err := types.MoneyFromString(price)
			if err != nil {
				return fmt.Errorf("parsing price: %w", err)
			}
			variants, err := parseVariants(variantSpec)
			if err != nil {
				return err
			}
			sock, err := a.catalog.Update(cmd.Context(), id, catalog.UpdateSockInput{
				Name:        name,
				Description: description,
				Price:       amount,
				ImageURL:    imageURL,
				Variants:    variants,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated sock %d\n", sock.ID)
			return nil
		},
	}

	sockInputFlags(cmd, &name, &description, &price, &imageURL, &variantSpec)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("image")
	cmd.MarkFlagRequired("variant")
	return cmd
}

func newAdminSockRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a sock from inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("sock id must be a number")
			}
			message, err := a.catalog.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
}

func newAdminOrdersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Review placed orders",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.orders.List(cmd.Context(), pagination.Params{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tEMAIL\tTOTAL\tPLACED")
			for _, order := range page.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					order.ID, order.Status, order.Email, order.Total, order.CreatedAt.Format(time.RFC3339))
			}
			w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "showing %d of %d orders\n", len(page.Items), page.Total)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", pagination.DefaultLimit, "page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.orders.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "order %s %s for %s, total %s\n", order.ID, order.Status, order.Email, order.Total)
			for _, item := range order.Items {
				fmt.Fprintf(out, "  %dx %s (%s) %s\n", item.Quantity, item.Name, item.Size, item.Price)
			}
			return nil
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := a.orders.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.AddCommand(listCmd, getCmd, cancelCmd)
	return cmd
}

func newAdminAccountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage admin accounts",
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.admins.List(cmd.Context(), pagination.Params{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCREATED")
			for _, admin := range page.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", admin.ID, admin.Name, admin.Email, admin.CreatedAt.Format(time.RFC3339))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", pagination.DefaultLimit, "page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")

	var (
		email string
		name  string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Provision an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}
			admin, err := a.admins.Create(cmd.Context(), admins.CreateAdminInput{
				Email:    email,
				Name:     name,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %d\n", admin.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "account email")
	createCmd.Flags().StringVar(&name, "name", "", "display name")
	createCmd.MarkFlagRequired("email")
	createCmd.MarkFlagRequired("name")

	removeCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an admin account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("admin id must be a number")
			}
			message, err := a.admins.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.AddCommand(listCmd, createCmd, removeCmd)
	return cmd
}
