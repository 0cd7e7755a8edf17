package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
)

func newNotesCmd(g *globals) *cobra.Command {
	notes := &cobra.Command{Use: "notes", Short: "Day notes"}

	notes.AddCommand(&cobra.Command{
		Use:   "list <date>",
		Short: "List the notes of a day",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			list, err := app.NotesCLI.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				_, _ = fmt.Fprintln(out, "no notes")
				return nil
			}
			for _, n := range list {
				_, _ = fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", n.ID, n.Author, optional(n.CreatedAt), n.Text)
			}
			return nil
		}),
	})

	notes.AddCommand(&cobra.Command{
		Use:   "add <date> <text>",
		Short: "Add a note to a day",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			note, err := app.NotesCLI.Add(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note %d added to %s\n", note.ID, note.Date)
			return nil
		}),
	})

	notes.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of my notes",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.NotesCLI.Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note %d deleted\n", id)
			return nil
		}),
	})
	return notes
}
