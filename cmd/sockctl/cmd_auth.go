package main

import (
	"bufio"
	"fmt"
	"strings"
	"syscall"
	"time"

	"github.com/sockshoplabs/storefront-go/internal/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "email: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			session, err := a.auth.Login(cmd.Context(), auth.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			if session.ExpiresAt.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), "logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in, session expires %s\n", session.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when omitted)")
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "password: ")
	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			if !session.Authenticated(time.Now()) {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			if session.ExpiresAt.IsZero() {
				fmt.Fprintln(cmd.OutOrStdout(), "logged in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in, session expires %s\n", session.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}
}
