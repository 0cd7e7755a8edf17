package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
)

func newImportCmd(g *globals) *cobra.Command {
	imp := &cobra.Command{Use: "import", Short: "Import a monthly roster (admins)"}

	var year, month int
	var advanced bool
	imp.PersistentFlags().IntVar(&year, "year", 0, "roster year")
	imp.PersistentFlags().IntVar(&month, "month", 0, "roster month 1-12")
	_ = imp.MarkPersistentFlagRequired("year")
	_ = imp.MarkPersistentFlagRequired("month")

	run := func(kind string) func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
		return func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			source := args[0]
			if kind == "text" {
				text, err := readSource(cmd.InOrStdin(), source)
				if err != nil {
					return err
				}
				source = text
			}
			out, err := app.AdminCLI.Import(cmd.Context(), kind, source, year, month, advanced)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "imported %d of %d units from %s\n", out.Imported, out.Units, optional(out.FileName))
			for _, name := range out.CreatedUsers {
				_, _ = fmt.Fprintf(w, "  new user %s\n", name)
			}
			return nil
		}
	}

	pdf := &cobra.Command{
		Use:   "pdf <file>",
		Short: "Import a roster PDF",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(g, run("pdf")),
	}
	pdf.Flags().BoolVar(&advanced, "advanced", false, "use the server's advanced PDF parser")

	xlsx := &cobra.Command{
		Use:   "xlsx <file>",
		Short: "Import a roster workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(g, run("xlsx")),
	}

	text := &cobra.Command{
		Use:   "text <file|->",
		Short: "Import a pasted roster; - reads stdin",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(g, run("text")),
	}

	imp.AddCommand(pdf, xlsx, text)
	return imp
}

func readSource(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		payload, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(payload), nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(payload), nil
}

func newUsersCmd(g *globals) *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "User accounts"}

	users.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			list, err := app.AdminCLI.Users(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range list {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", u.ID, u.FullName, optional(u.Email), optional(u.Role))
			}
			return nil
		}),
	})

	var email, name, password, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user (admins)",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			pw, err := secret(password, cmd.InOrStdin())
			if err != nil {
				return err
			}
			u, err := app.AdminCLI.CreateUser(cmd.Context(), email, name, pw, role)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created user %d %s\n", u.ID, u.FullName)
			return nil
		}),
	}
	create.Flags().StringVar(&email, "email", "", "email")
	create.Flags().StringVar(&name, "name", "", "full name")
	create.Flags().StringVar(&password, "password", "", "initial password (read from stdin when empty)")
	create.Flags().StringVar(&role, "role", "", "role: user|coordinator|admin (default user)")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("name")
	users.AddCommand(create)
	return users
}
