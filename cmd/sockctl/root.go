package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sockshoplabs/storefront-go/pkg/config"
	pkgerrors "github.com/sockshoplabs/storefront-go/pkg/errors"
	"github.com/sockshoplabs/storefront-go/pkg/logger"
	"github.com/spf13/cobra"
)

func execute(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	a, err := newApp(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			logg.Error(ctx, "error closing storage", err)
		}
	}()

	rootCmd := &cobra.Command{
		Use:           "sockctl",
		Short:         "Storefront client for the sock shop",
		Long:          "sockctl browses the catalog, manages the cart, and drives checkout against the sock shop API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSocksCmd(a),
		newCartCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newCheckoutCmd(a),
		newNewsletterCmd(a),
		newAdminCmd(a),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		return err
	}
	return nil
}

// printError shows the public side of a typed error; details only when the
// code allows them.
func printError(err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	meta := pkgerrors.MetadataFor(typed.Code())
	fmt.Fprintf(os.Stderr, "Error: %s (%s)\n", meta.PublicMessage, typed.Message())
	if !meta.DetailsAllowed {
		return
	}
	switch details := typed.Details().(type) {
	case map[string]any:
		for key, value := range details {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", key, value)
		}
	case map[string]string:
		for key, value := range details {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", key, value)
		}
	}
}
