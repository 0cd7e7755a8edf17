package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"

	accountinadapter "grafik/internal/modules/account/adapter/in"
	accountoutadapter "grafik/internal/modules/account/adapter/out"
	accountservice "grafik/internal/modules/account/service"
	accountusecase "grafik/internal/modules/account/usecase"
	admininadapter "grafik/internal/modules/admin/adapter/in"
	adminoutadapter "grafik/internal/modules/admin/adapter/out"
	adminservice "grafik/internal/modules/admin/service"
	adminusecase "grafik/internal/modules/admin/usecase"
	controlinadapter "grafik/internal/modules/control/adapter/in"
	controloutadapter "grafik/internal/modules/control/adapter/out"
	controlservice "grafik/internal/modules/control/service"
	controlusecase "grafik/internal/modules/control/usecase"
	notesinadapter "grafik/internal/modules/notes/adapter/in"
	notesoutadapter "grafik/internal/modules/notes/adapter/out"
	notesservice "grafik/internal/modules/notes/service"
	notesusecase "grafik/internal/modules/notes/usecase"
	proposalinadapter "grafik/internal/modules/proposal/adapter/in"
	proposaloutadapter "grafik/internal/modules/proposal/adapter/out"
	proposalservice "grafik/internal/modules/proposal/service"
	proposalusecase "grafik/internal/modules/proposal/usecase"
	scheduleinadapter "grafik/internal/modules/schedule/adapter/in"
	scheduleoutadapter "grafik/internal/modules/schedule/adapter/out"
	scheduleout "grafik/internal/modules/schedule/port/out"
	scheduleservice "grafik/internal/modules/schedule/service"
	scheduleusecase "grafik/internal/modules/schedule/usecase"
	sessioninadapter "grafik/internal/modules/session/adapter/in"
	sessionoutadapter "grafik/internal/modules/session/adapter/out"
	sessionout "grafik/internal/modules/session/port/out"
	sessionservice "grafik/internal/modules/session/service"
	sessionusecase "grafik/internal/modules/session/usecase"
	"grafik/internal/platform/clock"
	"grafik/internal/platform/config"
	"grafik/internal/platform/httpapi"
	"grafik/internal/platform/logging"
	"grafik/internal/platform/sqlitedb"
	uiapp "grafik/internal/ui/app"
)

type App struct {
	Config      config.Config
	Logger      hclog.Logger
	Calendar    clock.BusinessCalendar
	Client      *httpapi.Client
	SessionCLI  sessioninadapter.CLIHandler
	ScheduleCLI scheduleinadapter.CLIHandler
	ProposalCLI proposalinadapter.CLIHandler
	NotesCLI    notesinadapter.CLIHandler
	ControlCLI  controlinadapter.CLIHandler
	AccountCLI  accountinadapter.CLIHandler
	AdminCLI    admininadapter.CLIHandler

	closers []io.Closer
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, logCloser, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}
	if err := app.wire(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg := a.Config
	cal, err := clock.NewBusinessCalendar(clock.SystemClock{}, cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	a.Calendar = cal

	db, err := sqlitedb.Open(ctx, cfg.DBPath())
	if err != nil {
		return err
	}
	a.closers = append(a.closers, db)

	var ephemeral sessionout.TokenStore = sessionoutadapter.NewMemoryTokenStore()
	if cfg.Session.Ephemeral == config.EphemeralFile {
		ephemeral = sessionoutadapter.NewFileTokenStore(cfg.SessionTokenPath())
	}
	sessions := sessionservice.NewSessionService(clock.SystemClock{}, sessionoutadapter.NewFileTokenStore(cfg.TokenPath()), ephemeral, a.Logger)

	client := httpapi.New(sessions, httpapi.Options{
		BaseURL:    cfg.BaseURL,
		LoginPath:  cfg.LoginPath,
		RetryDelay: cfg.RetryDelay,
		Timeout:    cfg.RequestTimeout,
		Logger:     a.Logger,
	})
	a.Client = client
	sessionUC := sessionusecase.NewInteractor(sessions, sessionoutadapter.NewHTTPAuthGateway(client))

	var cache scheduleout.MonthCache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		a.closers = append(a.closers, rdb)
		cache = scheduleoutadapter.NewRedisMonthCache(rdb)
	default:
		cache, err = scheduleoutadapter.NewSQLiteMonthCache(ctx, db)
		if err != nil {
			return err
		}
	}
	scheduleUC := scheduleusecase.NewInteractor(scheduleservice.NewScheduleService(cal, scheduleoutadapter.NewHTTPScheduleGateway(client), cache, cfg.MonthCacheTTL, a.Logger))

	proposalUC := proposalusecase.NewInteractor(
		proposalservice.NewProposalService(cal, proposaloutadapter.NewHTTPProposalGateway(client), proposaloutadapter.NewHTTPOfferGateway(client), a.Logger),
		scheduleUC,
		sessionUC,
		a.Logger,
	)
	notesUC := notesusecase.NewInteractor(notesservice.NewNotesService(notesoutadapter.NewHTTPNoteGateway(client)), sessionUC)
	controlUC := controlusecase.NewInteractor(
		controlservice.NewControlService(cal, controloutadapter.NewHTTPControlGateway(client)),
		scheduleUC,
		sessionUC,
		a.Logger,
	)

	prefs, err := accountoutadapter.NewSQLitePreferenceStore(ctx, db)
	if err != nil {
		return err
	}
	accountUC := accountusecase.NewInteractor(accountservice.NewAccountService(cal, accountoutadapter.NewHTTPAccountGateway(client), prefs, accountoutadapter.NewXLSXStatsExporter()))
	adminUC := adminusecase.NewInteractor(
		adminservice.NewAdminService(adminoutadapter.NewLocalDocumentInspector(), adminoutadapter.NewHTTPImportGateway(client), adminoutadapter.NewHTTPUserGateway(client)),
		scheduleUC,
		sessionUC,
		a.Logger,
	)

	a.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	a.ScheduleCLI = scheduleinadapter.NewCLIHandler(scheduleUC)
	a.ProposalCLI = proposalinadapter.NewCLIHandler(proposalUC)
	a.NotesCLI = notesinadapter.NewCLIHandler(notesUC)
	a.ControlCLI = controlinadapter.NewCLIHandler(controlUC)
	a.AccountCLI = accountinadapter.NewCLIHandler(accountUC)
	a.AdminCLI = admininadapter.NewCLIHandler(adminUC)
	return nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI blocks until the program exits. The keep-alive loop runs for the
// lifetime of the program and pauses while the terminal is unfocused.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := uiapp.NewModel(uiapp.Deps{
		Session:  app.SessionCLI,
		Schedule: app.ScheduleCLI,
		Proposal: app.ProposalCLI,
		Notes:    app.NotesCLI,
		Control:  app.ControlCLI,
		Account:  app.AccountCLI,
		Admin:    app.AdminCLI,
		Calendar: app.Calendar,
		Language: app.Config.Language,
	})
	go app.Client.KeepAlive(ctx, httpapi.KeepAliveOptions{
		Interval: app.Config.KeepAliveInterval,
		Visible:  model.Visible,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
