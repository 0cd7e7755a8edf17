package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
	accountdto "grafik/internal/modules/account/dto"
)

func newProfileCmd(g *globals) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "My profile"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show my profile",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			p, err := app.AccountCLI.Profile(cmd.Context())
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	})

	var name, email string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change my name or email",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			p, err := app.AccountCLI.UpdateProfile(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	}
	update.Flags().StringVar(&name, "name", "", "full name")
	update.Flags().StringVar(&email, "email", "", "email")
	profile.AddCommand(update)
	return profile
}

func newSettingsCmd(g *globals) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Pay settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show hourly rate and tax",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			s, err := app.AccountCLI.Settings(cmd.Context())
			if err != nil {
				return err
			}
			rate := "unset"
			if s.Rate != nil {
				rate = fmt.Sprintf("%.2f", *s.Rate)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rate %s PLN/h  tax %.1f%%\n", rate, s.Tax)
			return nil
		}),
	})

	var rate, tax float64
	var clearRate bool
	set := &cobra.Command{
		Use:   "set",
		Short: "Change hourly rate or tax",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			current, err := app.AccountCLI.Settings(cmd.Context())
			if err != nil {
				return err
			}
			hasRate := current.Rate != nil
			if hasRate && !cmd.Flags().Changed("rate") {
				rate = *current.Rate
			}
			if cmd.Flags().Changed("rate") {
				hasRate = true
			}
			if clearRate {
				hasRate = false
			}
			if !cmd.Flags().Changed("tax") {
				tax = current.Tax
			}
			if err := app.AccountCLI.SetSettings(cmd.Context(), rate, hasRate, tax); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "settings saved")
			return nil
		}),
	}
	set.Flags().Float64Var(&rate, "rate", 0, "hourly rate in PLN")
	set.Flags().Float64Var(&tax, "tax", 0, "tax percent")
	set.Flags().BoolVar(&clearRate, "clear-rate", false, "remove the hourly rate")
	settings.AddCommand(set)
	return settings
}

func newStatsCmd(g *globals) *cobra.Command {
	var month, export string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Hours and pay of a month",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if month == "" {
				month = app.Calendar.CurrentMonth()
			}
			s, err := app.AccountCLI.Stats(cmd.Context(), month, export)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), s)
			if export != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", export)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&month, "month", "", "YYYY-MM (default: current)")
	cmd.Flags().StringVar(&export, "export", "", "write an .xlsx workbook to this path")
	return cmd
}

func newPrefsCmd(g *globals) *cobra.Command {
	prefs := &cobra.Command{Use: "prefs", Short: "Local preferences"}

	prefs.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Show a preference",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			value, err := app.AccountCLI.Preference(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], value)
			return nil
		}),
	})

	prefs.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a preference",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, args []string) error {
			if err := app.AccountCLI.SetPreference(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], args[1])
			return nil
		}),
	})
	return prefs
}

func printProfile(out io.Writer, p accountdto.ProfileOutput) {
	_, _ = fmt.Fprintf(out, "%d %s <%s> %s\n", p.ID, p.FullName, p.Email, p.Role)
}

func printStats(out io.Writer, s accountdto.StatsOutput) {
	_, _ = fmt.Fprintf(out, "%s (%s..%s)\n", s.Month, s.From, s.To)
	_, _ = fmt.Fprintf(out, "hours  %.1f done  %.1f left  %.1f total\n", s.HoursDone, s.HoursLeft, s.HoursTotal)
	_, _ = fmt.Fprintf(out, "gross  %.2f done  %.2f all\n", s.GrossDone, s.GrossAll)
	_, _ = fmt.Fprintf(out, "net    %.2f done  %.2f all\n", s.NetDone, s.NetAll)
	_, _ = fmt.Fprintf(out, "target %.0fh  %.1fh to go  %.0f%%\n", s.TargetHours, s.TargetLeft, s.TargetPercent)
	for _, d := range s.Daily {
		mark := " "
		if d.Done {
			mark = "*"
		}
		_, _ = fmt.Fprintf(out, "%s %s %-6s %5.1fh %8.2f %8.2f\n", mark, d.Date, d.Code, d.Hours, d.Gross, d.Net)
	}
}
