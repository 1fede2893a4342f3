package app

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rook-computer/inkpoint/internal/config"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/settings"
)

func newTestApp(t *testing.T) (*App, *render.MemoryPanel) {
	t.Helper()
	cfg := config.Default(config.SimulatorListenAddr)
	cfg.DataDir = t.TempDir()
	cfg.TickInterval = 10 * time.Millisecond
	cfg, err := cfg.Resolve()
	require.NoError(t, err)

	panel := render.NewMemoryPanel()
	a, err := New(cfg, Options{Panel: panel, NoWeb: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a, panel
}

func TestSnapshotRendersEveryScreen(t *testing.T) {
	a, _ := newTestApp(t)

	for _, name := range ScreenNames {
		frame, err := a.Snapshot(context.Background(), name)
		require.NoError(t, err, name)
		require.Equal(t, image.Rect(0, 0, 800, 480), frame.Bounds(), name)
	}

	_, err := a.Snapshot(context.Background(), "reader")
	require.ErrorContains(t, err, "unknown screen")
}

func TestLanguageChangeIsPersisted(t *testing.T) {
	a, _ := newTestApp(t)

	require.NoError(t, a.lang.SetLanguage(2))
	reloaded, err := settings.Open(a.Config.SettingsPath)
	require.NoError(t, err)
	require.Equal(t, "fr", reloaded.Snapshot().Language)
}

func TestOpenBookMovesItToTheFront(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.recent.Touch(ctx, recent.Book{Path: "a.epub", Title: "A", OpenedAt: time.Unix(1, 0)}))
	require.NoError(t, a.recent.Touch(ctx, recent.Book{Path: "b.epub", Title: "B", OpenedAt: time.Unix(2, 0)}))
	require.NoError(t, a.openBook(ctx, recent.Book{Path: "a.epub", Title: "A", OpenedAt: time.Unix(1, 0)}))

	books, err := a.recent.List(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, "a.epub", books[0].Path)
}

func TestStartRunsUntilCancelled(t *testing.T) {
	a, panel := newTestApp(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, a.Start(ctx))

	last, ok := panel.Last()
	require.True(t, ok, "home screen was drawn")
	require.Equal(t, render.FullRefresh, last.Mode)
}
