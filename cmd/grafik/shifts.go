package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
	scheduledto "grafik/internal/modules/schedule/dto"
	"grafik/internal/platform/clock"
)

func newShiftsCmd(g *globals) *cobra.Command {
	shifts := &cobra.Command{Use: "shifts", Short: "Roster and my shifts"}

	shifts.AddCommand(&cobra.Command{
		Use:   "mine",
		Short: "List my shifts",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			list, err := app.ScheduleCLI.MyShifts(cmd.Context())
			if err != nil {
				return err
			}
			printShifts(cmd.OutOrStdout(), list)
			return nil
		}),
	})

	shifts.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Show my next shift",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			next, err := app.ScheduleCLI.NextShift(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if next.Empty {
				_, _ = fmt.Fprintln(out, "no upcoming shifts")
				return nil
			}
			_, _ = fmt.Fprintf(out, "%s %s %.1fh (%d/%d this month)\n", next.Date, next.Code, next.Hours, next.MonthDone, next.MonthTotal)
			return nil
		}),
	})

	shifts.AddCommand(&cobra.Command{
		Use:   "day <date>",
		Short: "Show who works on a day",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			day, err := app.ScheduleCLI.Day(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printDay(cmd.OutOrStdout(), day)
			return nil
		}),
	})

	shifts.AddCommand(newMonthCmd(g))

	var date, code string
	candidates := &cobra.Command{
		Use:   "candidates",
		Short: "List my shifts that can be offered for a colleague's shift",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			list, err := app.ScheduleCLI.SwapCandidates(cmd.Context(), date, code)
			if err != nil {
				return err
			}
			printShifts(cmd.OutOrStdout(), list)
			return nil
		}),
	}
	candidates.Flags().StringVar(&date, "date", "", "the colleague's shift date")
	candidates.Flags().StringVar(&code, "code", "", "the colleague's shift code")
	_ = candidates.MarkFlagRequired("date")

	checkIn := &cobra.Command{
		Use:   "check-in <id>",
		Short: "Check in to a shift",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			shift, err := app.ScheduleCLI.CheckIn(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "checked in %s %s\n", shift.Date, shift.Code)
			return nil
		}),
	}

	checkOut := &cobra.Command{
		Use:   "check-out <id>",
		Short: "Check out of a shift",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			shift, err := app.ScheduleCLI.CheckOut(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "checked out %s %s\n", shift.Date, shift.Code)
			return nil
		}),
	}

	shifts.AddCommand(candidates, checkIn, checkOut, newWorklogCmd(g))
	return shifts
}

func newMonthCmd(g *globals) *cobra.Command {
	var year, month int
	var refresh, ladder bool
	var from string

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the roster of a month",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if year == 0 || month == 0 {
				y, m, err := clock.MonthOf(app.Calendar.CurrentMonth())
				if err != nil {
					return err
				}
				if year == 0 {
					year = y
				}
				if month == 0 {
					month = m
				}
			}
			var (
				roster scheduledto.MonthOutput
				err    error
			)
			if ladder || from != "" {
				roster, err = app.ScheduleCLI.Ladder(cmd.Context(), year, month, from, refresh)
			} else {
				roster, err = app.ScheduleCLI.Month(cmd.Context(), year, month, refresh)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if roster.Cached {
				_, _ = fmt.Fprintln(out, "(cached)")
			}
			for _, day := range roster.Days {
				printDay(out, day)
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&year, "year", 0, "year (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default: current)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the month cache")
	cmd.Flags().BoolVar(&ladder, "ladder", false, "hide days before today")
	cmd.Flags().StringVar(&from, "from", "", "hide days before this date (implies --ladder)")
	return cmd
}

func newWorklogCmd(g *globals) *cobra.Command {
	var hours float64
	var start, end, note string

	cmd := &cobra.Command{
		Use:   "worklog <id>",
		Short: "Record worked hours for a shift",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var worked *float64
			if cmd.Flags().Changed("hours") {
				worked = &hours
			}
			out, err := app.ScheduleCLI.SaveWorklog(cmd.Context(), id, worked, start, end, note)
			if err != nil {
				return err
			}
			if out.WorkedHours != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "worklog saved: %.2fh\n", *out.WorkedHours)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "worklog saved")
			return nil
		}),
	}
	cmd.Flags().Float64Var(&hours, "hours", 0, "worked hours")
	cmd.Flags().StringVar(&start, "start", "", "start time HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "end time HH:MM")
	cmd.Flags().StringVar(&note, "note", "", "free text note")
	return cmd
}

func printShifts(out io.Writer, list []scheduledto.ShiftOutput) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(out, "no shifts")
		return
	}
	for _, s := range list {
		state := ""
		switch {
		case s.CheckedOut:
			state = " out"
		case s.CheckedIn:
			state = " in"
		}
		_, _ = fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%.1fh\t%s%s\n", s.ID, s.Date, s.Code, s.Group, s.Hours, optional(s.Lounge), state)
	}
}

func printDay(out io.Writer, day scheduledto.DayOutput) {
	_, _ = fmt.Fprintf(out, "%s\n", day.Date)
	for _, group := range []struct {
		label string
		rows  []scheduledto.AssignmentOutput
	}{{"morning", day.Morning}, {"evening", day.Evening}} {
		if len(group.rows) == 0 {
			continue
		}
		names := make([]string, 0, len(group.rows))
		for _, a := range group.rows {
			label := a.FullName + " " + a.Code
			if a.Chip != "" {
				label += " [" + strings.TrimSpace(a.Chip+" "+a.ChipLounge) + "]"
			}
			names = append(names, label)
		}
		_, _ = fmt.Fprintf(out, "  %-8s %s\n", group.label, strings.Join(names, ", "))
	}
}
