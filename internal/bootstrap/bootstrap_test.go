package bootstrap_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"faithtrack/internal/bootstrap"
	"faithtrack/internal/platform/config"
	apperrors "faithtrack/internal/platform/errors"
)

func TestAppEndToEnd(t *testing.T) {
	t.Parallel()
	for _, backend := range []string{config.BackendVault, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			cfg, err := config.New(t.TempDir())
			require.NoError(t, err)
			cfg.Backend = backend

			asOf := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)
			app, err := bootstrap.New(ctx, cfg, bootstrap.Options{AsOf: asOf})
			require.NoError(t, err)
			t.Cleanup(func() { require.NoError(t, app.Close()) })

			profile, err := app.ProfileCLI.Register(ctx, "Grace Wanjiru", "Grace@Example.com", "St. Andrew's")
			require.NoError(t, err)

			res, err := app.ResolutionCLI.Create(ctx, "grace@example.com", "Read Proverbs", "", "spiritual", 31, "", asOf.AddDate(0, 0, 30))
			require.NoError(t, err)
			require.Equal(t, profile.ID, res.UserID)
			require.Equal(t, "chapters", res.Unit)

			_, err = app.ResolutionCLI.LogProgress(ctx, res.ID, 30, "almost")
			require.NoError(t, err)
			updated, err := app.ResolutionCLI.LogProgress(ctx, res.ID, 1, "")
			require.NoError(t, err)
			require.InDelta(t, 31, updated.Current, 1e-9)
			require.Len(t, updated.Entries, 2)

			report, err := app.FeedbackCLI.Analyze(ctx, res.ID)
			require.NoError(t, err)
			require.Equal(t, "completed", report.Status)
			require.Equal(t, 100, report.PercentComplete)
			require.Nil(t, report.Pace)

			dash, err := app.FeedbackCLI.Dashboard(ctx, profile.ID)
			require.NoError(t, err)
			require.Equal(t, 1, dash.Total)
			require.Equal(t, 1, dash.Completed)

			require.NoError(t, app.ResolutionCLI.Delete(ctx, res.ID))
			list, err := app.ResolutionCLI.List(ctx, profile.ID)
			require.NoError(t, err)
			require.Empty(t, list)
		})
	}
}

func TestAppRejectsUnknownBackend(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	cfg.Backend = "mongo"

	_, err = bootstrap.New(context.Background(), cfg, bootstrap.Options{})
	require.ErrorIs(t, err, apperrors.ErrUnknownBackend)
}

func TestSQLiteStoreLivesUnderStateDir(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	cfg, err := config.New(vault)
	require.NoError(t, err)
	cfg.Backend = config.BackendSQLite

	app, err := bootstrap.New(context.Background(), cfg, bootstrap.Options{})
	require.NoError(t, err)
	require.NoError(t, app.Close())
	require.FileExists(t, filepath.Join(vault, ".faithtrack", "faithtrack.db"))
}
