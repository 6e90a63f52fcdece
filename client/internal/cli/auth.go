package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"evcharge/client/internal/models"
	"evcharge/client/internal/session"
)

func newSignupCommand(rt *runtime) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readPassword(cmd, password)
			if err != nil {
				return rt.report(cmd, err, false)
			}
			auth, err := rt.client("").Signup(cmd.Context(), args[0], pass)
			if err != nil {
				return rt.report(cmd, err, false)
			}
			return rt.saveSession(cmd, auth, "Account created. Logged in as %s.")
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newLoginCommand(rt *runtime) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := readPassword(cmd, password)
			if err != nil {
				return rt.report(cmd, err, false)
			}
			auth, err := rt.client("").Login(cmd.Context(), args[0], pass)
			if err != nil {
				return rt.report(cmd, err, false)
			}
			return rt.saveSession(cmd, auth, "Logged in as %s.")
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := rt.store()
			if err != nil {
				return rt.report(cmd, err, false)
			}
			if err := store.Clear(); err != nil {
				return rt.report(cmd, err, false)
			}
			newPrinter(cmd).success("Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := rt.store()
			if err != nil {
				return rt.report(cmd, err, false)
			}
			sess, err := store.Load()
			if err != nil {
				return rt.report(cmd, err, false)
			}
			newPrinter(cmd).info("Logged in as %s (id %d).", sess.User.Username, sess.User.ID)
			return nil
		},
	}
}

func (rt *runtime) saveSession(cmd *cobra.Command, auth *models.AuthDTO, format string) error {
	store, err := rt.store()
	if err != nil {
		return rt.report(cmd, err, false)
	}
	if err := store.Save(&session.Session{Token: auth.Token, User: auth.User}); err != nil {
		return rt.report(cmd, err, false)
	}
	newPrinter(cmd).success(format, auth.User.Username)
	return nil
}

// readPassword returns flagValue or reads one line from the command's input.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("password is required")
	}
	return line, nil
}
