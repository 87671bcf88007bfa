package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	sessionModel "github.com/zhouzirui/wealth-desk/client/internal/model/session"
	"github.com/zhouzirui/wealth-desk/client/internal/transport"
)

func newLoginCommand(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and remember the credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			reader := bufio.NewReader(in)

			if strings.TrimSpace(username) == "" {
				value, err := promptLine(reader, out, "Username")
				if err != nil {
					return err
				}
				username = value
			}
			if password == "" {
				value, err := promptSecret(in, reader, out, "Password")
				if err != nil {
					return err
				}
				password = value
			}
			if strings.TrimSpace(username) == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			if err := a.sessions.Login(cmd.Context(), username, password); err != nil {
				if detail := transport.DetailOf(err); detail != "" {
					return fmt.Errorf("login failed: %s", detail)
				}
				return fmt.Errorf("login failed: %w", err)
			}
			if a.sessions.State() != sessionModel.StateLoggedIn {
				return fmt.Errorf("login succeeded but the identity could not be confirmed; please try again")
			}

			fmt.Fprintf(out, "Logged in as %s\n", displayName(a.sessions.Identity()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.sessions.Logout()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged out; credential removed from %s\n", a.store.Path())
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			identity := a.sessions.Identity()
			keys := make([]string, 0, len(identity))
			for k := range identity {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			out := cmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintf(out, "%-10s %v\n", k+":", identity[k])
			}
			fmt.Fprintf(out, "%-10s %s\n", "server:", a.api.BaseURL())
			fmt.Fprintf(out, "%-10s %s\n", "store:", a.store.Path())
			return nil
		},
	}
}

func displayName(identity sessionModel.Identity) string {
	name := identity.Name()
	if name == "" {
		name = "unknown user"
	}
	if role := identity.Role(); role != "" {
		return fmt.Sprintf("%s (%s)", name, role)
	}
	return name
}

func promptLine(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo when in is a terminal.
func promptSecret(in io.Reader, reader *bufio.Reader, out io.Writer, label string) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return promptLine(reader, out, label)
	}
	fd := int(f.Fd())

	fmt.Fprintf(out, "%s: ", label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}
	return string(secret), nil
}
