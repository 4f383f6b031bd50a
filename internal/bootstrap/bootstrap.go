package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	feedbackinadapter "faithtrack/internal/modules/feedback/adapter/in"
	feedbackrpc "faithtrack/internal/modules/feedback/adapter/in/rpc"
	feedbackoutadapter "faithtrack/internal/modules/feedback/adapter/out"
	feedbackin "faithtrack/internal/modules/feedback/port/in"
	feedbackservice "faithtrack/internal/modules/feedback/service"
	feedbackusecase "faithtrack/internal/modules/feedback/usecase"
	profileinadapter "faithtrack/internal/modules/profile/adapter/in"
	profileoutadapter "faithtrack/internal/modules/profile/adapter/out"
	profileservice "faithtrack/internal/modules/profile/service"
	profileusecase "faithtrack/internal/modules/profile/usecase"
	resolutioninadapter "faithtrack/internal/modules/resolution/adapter/in"
	resolutionoutadapter "faithtrack/internal/modules/resolution/adapter/out"
	resolutionout "faithtrack/internal/modules/resolution/port/out"
	resolutionservice "faithtrack/internal/modules/resolution/service"
	resolutionusecase "faithtrack/internal/modules/resolution/usecase"
	"faithtrack/internal/platform/clock"
	"faithtrack/internal/platform/config"
	apperrors "faithtrack/internal/platform/errors"
	"faithtrack/internal/platform/id"
	"faithtrack/internal/platform/random"
	uiapp "faithtrack/internal/ui/app"
)

type App struct {
	Config        config.Config
	Logger        *zap.Logger
	ProfileCLI    profileinadapter.CLIHandler
	ResolutionCLI resolutioninadapter.CLIHandler
	FeedbackCLI   feedbackinadapter.CLIHandler
	Feedback      feedbackin.Usecase

	closers []io.Closer
}

type Options struct {
	// AsOf pins "today" for pace calculations. Zero means the system clock.
	AsOf   time.Time
	Logger *zap.Logger
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var clk clock.Clock = clock.SystemClock{}
	if !opts.AsOf.IsZero() {
		clk = clock.Fixed{At: opts.AsOf}
	}
	ids := id.UUID{}

	app := &App{Config: cfg, Logger: logger}

	repo, err := app.openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(
		clk, ids, profileoutadapter.NewVaultProfileStore(cfg.VaultPath),
	))
	resolutionUC := resolutionusecase.NewInteractor(
		resolutionservice.NewResolutionService(clk, ids, repo),
		profileUC,
		logger,
	)
	feedbackUC := feedbackusecase.NewInteractor(
		feedbackservice.NewFeedbackService(clk, random.MathSource{}, feedbackoutadapter.NewResolutionSourceAdapter(resolutionUC)),
		logger,
	)

	app.ProfileCLI = profileinadapter.NewCLIHandler(profileUC)
	app.ResolutionCLI = resolutioninadapter.NewCLIHandler(resolutionUC)
	app.FeedbackCLI = feedbackinadapter.NewCLIHandler(feedbackUC)
	app.Feedback = feedbackUC

	logger.Debug("app ready", zap.String("backend", cfg.Backend), zap.String("vault", cfg.VaultPath))
	return app, nil
}

func (a *App) openRepository(ctx context.Context, cfg config.Config) (resolutionout.Repository, error) {
	switch cfg.Backend {
	case config.BackendVault:
		return resolutionoutadapter.NewVaultRepository(cfg.VaultPath), nil
	case config.BackendSQLite:
		repo, err := resolutionoutadapter.NewSQLiteRepository(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, repo)
		return repo, nil
	case config.BackendPostgres:
		repo, err := resolutionoutadapter.NewPostgresRepository(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		a.closers = append(a.closers, repo)
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownBackend, cfg.Backend)
	}
}

// Close releases database handles opened by New.
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

// Serve exposes the feedback engine over gRPC on cfg.GRPCAddr until ctx ends.
func Serve(ctx context.Context, app *App) error {
	lis, err := net.Listen("tcp", app.Config.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.Config.GRPCAddr, err)
	}
	app.Logger.Info("feedback server listening", zap.String("addr", lis.Addr().String()))
	srv := feedbackrpc.NewGRPCServer(app.Feedback, app.Logger)
	return feedbackrpc.Serve(ctx, srv, lis)
}

func RunTUI(ctx context.Context, app *App, userRef string) error {
	model := uiapp.NewModel(userRef, app.ResolutionCLI, app.FeedbackCLI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	stop, err := uiapp.StartWatcher(app.Config.VaultPath, program, app.Logger)
	if err != nil {
		app.Logger.Warn("vault watcher disabled", zap.Error(err))
	} else {
		defer stop()
	}

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
