package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/sockshoplabs/storefront-go/internal/catalog"
	"github.com/sockshoplabs/storefront-go/pkg/pagination"
	"github.com/spf13/cobra"
)

func newSocksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "socks",
		Short: "Browse the sock catalog",
	}
	cmd.AddCommand(newSocksListCmd(a), newSocksGetCmd(a))
	return cmd
}

func newSocksListCmd(a *app) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List socks",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.catalog.List(cmd.Context(), pagination.Params{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			printSockPage(cmd, page)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", pagination.DefaultLimit, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func newSocksGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one sock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("sock id must be a number")
			}
			sock, err := a.catalog.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printSock(cmd, sock)
			return nil
		},
	}
}

func printSockPage(cmd *cobra.Command, page *catalog.SockPage) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSIZES")
	for _, sock := range page.Items {
		sizes := ""
		for i, variant := range sock.Variants {
			if i > 0 {
				sizes += ","
			}
			sizes += variant.Size.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", sock.ID, sock.Name, sock.Price, sizes)
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "showing %d of %d socks\n", len(page.Items), page.Total)
}

func printSock(cmd *cobra.Command, sock *catalog.Sock) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (#%d) %s\n", sock.Name, sock.ID, sock.Price)
	if sock.Description != "" {
		fmt.Fprintln(out, sock.Description)
	}
	for _, variant := range sock.Variants {
		fmt.Fprintf(out, "  variant %d size %s stock %d\n", variant.ID, variant.Size, variant.Stock)
	}
}
