package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
)

func newLoginCmd(g *globals) *cobra.Command {
	var email, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			pw, err := secret(password, cmd.InOrStdin())
			if err != nil {
				return err
			}
			who, err := app.SessionCLI.Login(cmd.Context(), email, pw, remember)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", who.FullName, who.Role)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when empty)")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the session across restarts")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCmd(g *globals) *cobra.Command {
	var email, name, password string
	var remember bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			pw, err := secret(password, cmd.InOrStdin())
			if err != nil {
				return err
			}
			who, err := app.SessionCLI.Register(cmd.Context(), email, name, pw, remember)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", who.FullName)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when empty)")
	cmd.Flags().BoolVar(&remember, "remember", false, "keep the session across restarts")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLogoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if err := app.SessionCLI.Logout(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		}),
	}
}

func newWhoamiCmd(g *globals) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out := cmd.OutOrStdout()
			if remote {
				me, err := app.SessionCLI.Me(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%d %s <%s> %s\n", me.ID, me.FullName, me.Email, me.Role)
				return nil
			}
			who, err := app.SessionCLI.Current(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s %s role=%s privileged=%t\n", who.SubjectID, who.FullName, who.Role, who.Privileged)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the backend instead of decoding the stored token")
	return cmd
}

func newPasswordCmd(g *globals) *cobra.Command {
	password := &cobra.Command{Use: "password", Short: "Password reset"}

	var email string
	request := &cobra.Command{
		Use:   "request",
		Short: "Email a reset link",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if err := app.SessionCLI.RequestPasswordReset(cmd.Context(), email); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "if the account exists, a reset link is on its way")
			return nil
		}),
	}
	request.Flags().StringVar(&email, "email", "", "account email")
	_ = request.MarkFlagRequired("email")

	var token, newPassword string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a reset token",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			pw, err := secret(newPassword, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := app.SessionCLI.ResetPassword(cmd.Context(), token, pw); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "password changed")
			return nil
		}),
	}
	reset.Flags().StringVar(&token, "token", "", "token from the reset email")
	reset.Flags().StringVar(&newPassword, "password", "", "new password (read from stdin when empty)")
	_ = reset.MarkFlagRequired("token")

	password.AddCommand(request, reset)
	return password
}
