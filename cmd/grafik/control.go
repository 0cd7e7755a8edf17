package main

import (
	"fmt"
	"io"
	"maps"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
	controldto "grafik/internal/modules/control/dto"
)

func newControlCmd(g *globals) *cobra.Command {
	control := &cobra.Command{Use: "control", Short: "Attendance control (coordinators)"}

	var month string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Events and staffing of a month",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if month == "" {
				month = app.Calendar.CurrentMonth()
			}
			out, err := app.ControlCLI.Summary(cmd.Context(), month)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), out)
			return nil
		}),
	}
	summary.Flags().StringVar(&month, "month", "", "YYYY-MM (default: current)")
	control.AddCommand(summary)

	for _, kind := range []string{"late", "extra", "absence"} {
		control.AddCommand(newEventCmd(g, kind))
	}
	control.AddCommand(newAddShiftCmd(g), newDeleteEventCmd(g), newReportCmd(g))

	control.AddCommand(&cobra.Command{
		Use:   "deleted [id]",
		Short: "List deleted events, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				d, err := app.ControlCLI.DeletedDetail(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "event %d (%s) of %s on %s\n", d.EventID, d.Kind, d.UserName, d.EventDate)
				if d.From != "" || d.To != "" {
					_, _ = fmt.Fprintf(out, "  time %s-%s\n", optional(d.From), optional(d.To))
				}
				if d.Hours != nil {
					_, _ = fmt.Fprintf(out, "  hours %.2f\n", *d.Hours)
				}
				_, _ = fmt.Fprintf(out, "  deleted by %s on %s: %s\n", d.DeletedBy, d.DeletedDate, d.Reason)
				return nil
			}
			list, err := app.ControlCLI.Deleted(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintln(out, "no deleted events")
				return nil
			}
			for _, d := range list {
				_, _ = fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", d.EventID, d.DeletedDate, d.UserName, d.Reason)
			}
			return nil
		}),
	})
	return control
}

func newEventCmd(g *globals, kind string) *cobra.Command {
	var user int64
	var date, reason, from, to string
	var delay int
	var hours float64

	cmd := &cobra.Command{
		Use:   kind,
		Short: "Record a " + kind + " event",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			event, err := app.ControlCLI.Record(cmd.Context(), kind, user, date, reason, delay, hours, from, to)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s %d for %s on %s\n", event.Kind, event.ID, optional(event.User), event.Date)
			return nil
		}),
	}
	cmd.Flags().Int64Var(&user, "user", 0, "user id")
	cmd.Flags().StringVar(&date, "date", "", "event date")
	cmd.Flags().StringVar(&reason, "reason", "", "reason")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("date")
	switch kind {
	case "late":
		cmd.Flags().IntVar(&delay, "delay", -1, "minutes late")
		cmd.Flags().StringVar(&from, "from", "", "actual start HH:MM")
		cmd.Flags().StringVar(&to, "to", "", "end HH:MM")
	case "extra":
		cmd.Flags().Float64Var(&hours, "hours", 0, "extra hours")
		_ = cmd.MarkFlagRequired("hours")
	}
	return cmd
}

func newAddShiftCmd(g *globals) *cobra.Command {
	var user int64
	var date, from, to, reason string

	cmd := &cobra.Command{
		Use:   "add-shift",
		Short: "Add an extra shift for a user",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.ControlCLI.AddShift(cmd.Context(), user, date, from, to, reason)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "shift %d added (event %d)\n", out.ShiftID, out.Event.ID)
			return nil
		}),
	}
	cmd.Flags().Int64Var(&user, "user", 0, "user id")
	cmd.Flags().StringVar(&date, "date", "", "shift date")
	cmd.Flags().StringVar(&from, "from", "", "start HH:MM")
	cmd.Flags().StringVar(&to, "to", "", "end HH:MM")
	cmd.Flags().StringVar(&reason, "reason", "", "reason")
	for _, name := range []string{"user", "date", "from", "to"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newDeleteEventCmd(g *globals) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.ControlCLI.Delete(cmd.Context(), id, reason); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "event %d deleted\n", id)
			return nil
		}),
	}
	cmd.Flags().StringVar(&reason, "reason", "", "why the event is deleted")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func newReportCmd(g *globals) *cobra.Command {
	report := &cobra.Command{Use: "report", Short: "End-of-shift report of a lounge (coordinators)"}

	var lounge, shift, date string
	keyFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&lounge, "lounge", "", "mazurek|polonez")
		cmd.Flags().StringVar(&shift, "shift", "", "morning|evening")
		cmd.Flags().StringVar(&date, "date", "", "shift date (default: today)")
		_ = cmd.MarkFlagRequired("lounge")
		_ = cmd.MarkFlagRequired("shift")
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the saved report",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			out, err := app.ControlCLI.Report(cmd.Context(), lounge, shift, date)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), out)
			return nil
		}),
	}
	keyFlags(get)

	var bars, times, notes map[string]string
	save := &cobra.Command{
		Use:   "save",
		Short: "Update report fields, keeping the ones not given",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			current, err := app.ControlCLI.Report(cmd.Context(), lounge, shift, date)
			if err != nil {
				return err
			}
			saved, err := app.ControlCLI.SaveReport(cmd.Context(), current.Lounge, current.ShiftType, current.Date,
				overlay(current.Bars, bars), overlay(current.Times, times), overlay(current.Notes, notes))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), saved)
			return nil
		}),
	}
	keyFlags(save)
	save.Flags().StringToStringVar(&bars, "bar", nil, "bar field, e.g. bar0=ok (repeatable)")
	save.Flags().StringToStringVar(&times, "time", nil, "arrived|left=HH:MM (repeatable)")
	save.Flags().StringToStringVar(&notes, "note", nil, "past|missing|passengers=text (repeatable)")

	report.AddCommand(get, save)
	return report
}

func printReport(out io.Writer, r controldto.ReportOutput) {
	_, _ = fmt.Fprintf(out, "report %s %s %s\n", r.Lounge, r.ShiftType, r.Date)
	if !r.Saved {
		_, _ = fmt.Fprintln(out, "  not saved yet")
	} else if r.CoordName != "" {
		_, _ = fmt.Fprintf(out, "  by %s\n", r.CoordName)
	}
	section := func(title string, fields []controldto.ReportField) {
		_, _ = fmt.Fprintln(out, title)
		for _, f := range fields {
			_, _ = fmt.Fprintf(out, "  %-10s %s\n", f.Name, optional(f.Value))
		}
	}
	section("times", r.Times)
	section("bars", r.Bars)
	section("notes", r.Notes)
}

// overlay applies flag edits on top of the stored fields.
func overlay(current []controldto.ReportField, edits map[string]string) map[string]string {
	out := make(map[string]string, len(current)+len(edits))
	for _, f := range current {
		out[f.Name] = f.Value
	}
	maps.Copy(out, edits)
	return out
}

func printSummary(out io.Writer, s controldto.SummaryOutput) {
	_, _ = fmt.Fprintf(out, "control %s: %d events\n", s.Month, len(s.Events))
	for _, e := range s.Events {
		detail := ""
		switch {
		case e.Hours != nil:
			detail = fmt.Sprintf(" %.2fh", *e.Hours)
		case e.From != "" || e.To != "":
			detail = fmt.Sprintf(" %s-%s", optional(e.From), optional(e.To))
		}
		_, _ = fmt.Fprintf(out, "  %d\t%s\t%s\t%s%s\t%s\n", e.ID, e.Date, e.Kind, e.User, detail, optional(e.Reason))
	}
	if len(s.ShortDays) > 0 {
		_, _ = fmt.Fprintf(out, "understaffed: %v\n", s.ShortDays)
	}
	for _, d := range s.Staffing {
		if !d.Short {
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s morning %d (%+d) evening %d (%+d)\n", d.Date, d.Morning, d.MorningDelta, d.Evening, d.EveningDelta)
	}
}
