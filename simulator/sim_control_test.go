package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rook-computer/inkpoint/internal/app"
	"github.com/rook-computer/inkpoint/internal/config"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
)

func newTestControl(t *testing.T) *SimControl {
	t.Helper()

	cfg := config.Default("127.0.0.1:18080")
	cfg.DataDir = t.TempDir()
	cfg, err := cfg.Resolve()
	require.NoError(t, err)

	battery := &SimBattery{}
	panel := render.NewMemoryPanel()
	a, err := app.New(cfg, app.Options{Panel: panel, Battery: battery, NoWeb: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return NewSimControl(context.Background(), a, panel, battery, "")
}

func TestApplyScenarioSeedsLibraryAndRecents(t *testing.T) {
	t.Parallel()

	c := newTestControl(t)
	require.NoError(t, c.ApplyScenario(scenarioFull))

	files, err := c.app.Library().List()
	require.NoError(t, err)
	require.Len(t, files, len(sampleTitles))

	books, err := c.app.Recent().List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, books, recent.MaxBooks)
	require.Equal(t, sampleTitles[len(sampleTitles)-1], books[0].Title)

	require.NoError(t, c.ApplyScenario(scenarioEmpty))
	files, err = c.app.Library().List()
	require.NoError(t, err)
	require.Empty(t, files)
	books, err = c.app.Recent().List(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, books)

	require.Error(t, c.ApplyScenario("nope"))
	require.Equal(t, scenarioEmpty, c.currentScenario.Load())
}

func TestSimEndpoints(t *testing.T) {
	t.Parallel()

	c := newTestControl(t)
	mux := http.NewServeMux()
	registerSimEndpoints(mux, c)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/battery", strings.NewReader(`{"percent":150}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 100, c.battery.Percentage())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/scenario/library", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true,"scenario":"library"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sim/scenario/bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sim/commits", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"modes":[]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sim/reset", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
