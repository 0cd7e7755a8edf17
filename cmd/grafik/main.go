package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"grafik/internal/bootstrap"
	"grafik/internal/platform/config"
	apperrors "grafik/internal/platform/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// localizedError prints backend errors in the configured language and keeps
// local validation errors verbatim.
type localizedError struct {
	err  error
	lang string
}

func (e localizedError) Error() string {
	if apperrors.StatusOf(e.err) == 0 {
		return e.err.Error()
	}
	return apperrors.UserMessage(e.err, e.lang)
}

func (e localizedError) Unwrap() error { return e.err }

func localize(err error, lang string) error {
	if err == nil {
		return nil
	}
	return localizedError{err: err, lang: lang}
}

type globals struct {
	configPath string
	envFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "grafik",
		Short:         "Shift roster client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default: user config dir)")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", "", "dotenv file with GRAFIK_* overrides")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newHealthCmd(g))
	root.AddCommand(newLoginCmd(g))
	root.AddCommand(newRegisterCmd(g))
	root.AddCommand(newLogoutCmd(g))
	root.AddCommand(newWhoamiCmd(g))
	root.AddCommand(newPasswordCmd(g))
	root.AddCommand(newShiftsCmd(g))
	root.AddCommand(newProposalsCmd(g))
	root.AddCommand(newTakeoverCmd(g))
	root.AddCommand(newOffersCmd(g))
	root.AddCommand(newNotesCmd(g))
	root.AddCommand(newControlCmd(g))
	root.AddCommand(newProfileCmd(g))
	root.AddCommand(newSettingsCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newPrefsCmd(g))
	root.AddCommand(newImportCmd(g))
	root.AddCommand(newUsersCmd(g))
	return root
}

func loadApp(ctx context.Context, g *globals) (*bootstrap.App, error) {
	cfg, err := config.Load(config.LoadOptions{Path: g.configPath, EnvFile: g.envFile})
	if err != nil {
		return nil, err
	}
	cfg.Verbose = cfg.Verbose || g.verbose
	return bootstrap.New(ctx, cfg)
}

// withApp loads the app, runs fn and closes the app afterwards. Errors come
// back localized to the configured language.
func withApp(g *globals, fn func(cmd *cobra.Command, app *bootstrap.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd.Context(), g)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close() }()
		return localize(fn(cmd, app, args), app.Config.Language)
	}
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			return bootstrap.RunTUI(cmd.Context(), app)
		}),
	}
}

func newHealthCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend answers",
		RunE: withApp(g, func(cmd *cobra.Command, app *bootstrap.App, _ []string) error {
			if err := app.Client.Ping(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", app.Config.BaseURL)
			return nil
		}),
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", apperrors.ErrInvalidInput, raw)
	}
	return id, nil
}

// secret returns value, or the first line of in when value is empty.
func secret(value string, in io.Reader) (string, error) {
	if value != "" {
		return value, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	}
	return line, nil
}

func optional(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
