// Package app wires the services, the renderer and the screens together and
// runs them until a screen or the caller ends the session.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/rook-computer/inkpoint/internal/activity"
	"github.com/rook-computer/inkpoint/internal/app/screens"
	"github.com/rook-computer/inkpoint/internal/config"
	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/logging"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/settings"
	"github.com/rook-computer/inkpoint/internal/storage"
	"github.com/rook-computer/inkpoint/internal/system"
	"github.com/rook-computer/inkpoint/internal/theme"
	"github.com/rook-computer/inkpoint/internal/web"
)

// Options are the platform pieces that differ between the device, the
// simulator and snapshot rendering.
type Options struct {
	Panel   render.Panel
	Keys    input.Source
	Battery theme.Battery
	Runner  system.Runner
	Logger  logging.Logger

	// NoWeb skips the HTTP server.
	NoWeb bool
	// StaticDir overrides the embedded web UI.
	StaticDir string
	// WebRoutes adds handlers to the web server, e.g. simulator controls.
	WebRoutes func(mux *http.ServeMux)
	// ConsoleGraphics switches the kernel console out of the way while running.
	ConsoleGraphics bool
}

type App struct {
	Config config.Config
	Logger logging.Logger
	Web    web.Server

	opts     Options
	remote   *input.VirtualSource
	gate     *render.Gate
	manager  *activity.Manager
	lang     *i18n.Service
	settings *settings.Store
	recent   *recent.Store
	library  storage.Library
	env      *screens.Env

	libraryRevision atomic.Uint64
}

// New opens the stores and builds the screen environment. Close releases
// what New opened.
func New(cfg config.Config, opts Options) (*App, error) {
	logger := logging.OrNop(opts.Logger)
	if opts.Panel == nil {
		opts.Panel = render.NewMemoryPanel()
	}
	if opts.Battery == nil {
		opts.Battery = system.FixedBattery(100)
	}
	if opts.Runner == nil {
		opts.Runner = system.NoopRunner{Logger: logger}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}
	recents, err := recent.Open(cfg.RecentDBPath)
	if err != nil {
		return nil, err
	}
	lang, err := i18n.NewService()
	if err != nil {
		_ = recents.Close()
		return nil, err
	}

	current := store.Snapshot()
	if err := lang.SetLanguageTag(current.Language); err != nil {
		logger.Errorf("app", "language %q: %v", current.Language, err)
	}
	lang.OnChange(func(_ int, tag language.Tag) {
		if err := store.Update(func(st *settings.Settings) { st.Language = tag.String() }); err != nil {
			logger.Errorf("app", "persist language %s: %v", tag, err)
		}
	})
	layout, err := input.ParseLayout(current.FrontButtonLayout)
	if err != nil {
		logger.Errorf("app", "%v", err)
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		opts:     opts,
		remote:   input.NewVirtualSource(),
		lang:     lang,
		settings: store,
		recent:   recents,
		library:  storage.Library{Dir: cfg.LibraryDir},
	}

	canvas := render.NewCanvas(render.LoadFonts(logger), logger)
	app.gate = render.NewGate(canvas, opts.Panel, logger)
	app.manager = activity.NewManager(app.gate, input.MultiSource{opts.Keys, app.remote}, input.NewMapper(layout), logger)

	app.env = &screens.Env{
		Host: app.manager,
		Theme: theme.NewCompact(theme.Deps{
			Battery:     opts.Battery,
			Strings:     lang,
			Covers:      storage.Covers{},
			Preferences: store,
			Logger:      logger,
		}),
		Strings:         lang,
		Settings:        store,
		Recent:          recents,
		Library:         app.library,
		Runner:          opts.Runner,
		Logger:          logger,
		TransferURL:     app.transferURL,
		LibraryRevision: app.libraryRevision.Load,
		OpenBook:        app.openBook,
	}

	if opts.NoWeb {
		app.Web = &web.NoopServer{}
	} else {
		server := web.NewHTTPServer(cfg.ListenAddr, web.APIV1Deps{
			Books:          app.library,
			Frames:         app.gate,
			Keys:           app.remote,
			Recent:         recents,
			Layout:         app.layout,
			LibraryChanged: app.LibraryChanged,
			MaxUploadBytes: cfg.MaxUploadBytes,
			Logger:         logger,
		})
		server.StaticDir = opts.StaticDir
		server.DevMode = cfg.DevMode
		server.Routes = opts.WebRoutes
		app.Web = server
	}
	return app, nil
}

// Remote is the software key source fed by the web remote.
func (app *App) Remote() *input.VirtualSource { return app.remote }

// Gate exposes the render gate, e.g. for frame snapshots.
func (app *App) Gate() *render.Gate { return app.gate }

// Recent is the recently opened books store.
func (app *App) Recent() *recent.Store { return app.recent }

// Library is the book directory served by the web UI.
func (app *App) Library() storage.Library { return app.library }

// LibraryChanged tells the screens that the library directory was modified
// outside the web API.
func (app *App) LibraryChanged() { app.libraryRevision.Add(1) }

// Exit requests the app to stop running.
func (app *App) Exit(err error) { app.manager.Exit(err) }

// Start shows the home screen and runs until ctx is done or a screen exits.
func (app *App) Start(ctx context.Context) error {
	if app.opts.ConsoleGraphics {
		restore := system.EnterGraphicsMode(app.Logger)
		defer restore()
	}

	if err := app.Web.Start(ctx); err != nil {
		app.Logger.Errorf("web", "start: %v", err)
		return err
	}
	defer func() { _ = app.Web.Stop() }()

	app.manager.Push(screens.NewHome(app.env))
	err := app.manager.Run(ctx, app.Config.TickInterval)
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// Snapshot enters the named screen, renders it once and returns the frame.
func (app *App) Snapshot(ctx context.Context, name string) (*image.Gray, error) {
	screen, err := app.screenByName(name)
	if err != nil {
		return nil, err
	}
	app.manager.Push(screen)
	if err := app.manager.Tick(ctx); err != nil {
		return nil, err
	}
	if app.manager.Top() != screen {
		return nil, fmt.Errorf("screen %s did not start", name)
	}
	frame, _, ok := app.gate.Snapshot()
	if !ok {
		return nil, fmt.Errorf("screen %s drew nothing", name)
	}
	return frame, nil
}

// ScreenNames lists the names Snapshot accepts.
var ScreenNames = []string{"home", "settings", "language", "keyboard", "transfer"}

func (app *App) screenByName(name string) (activity.Activity, error) {
	switch name {
	case "home":
		return screens.NewHome(app.env), nil
	case "settings":
		return screens.NewSettings(app.env), nil
	case "language":
		return screens.NewLanguageSelect(app.env), nil
	case "keyboard":
		return screens.NewKeyboard(app.env), nil
	case "transfer":
		return screens.NewTransfer(app.env), nil
	}
	return nil, fmt.Errorf("unknown screen %q (want one of %v)", name, ScreenNames)
}

// Close releases the stores and the panel.
func (app *App) Close() error {
	return errors.Join(app.recent.Close(), app.opts.Panel.Close())
}

func (app *App) layout() input.Layout {
	layout, err := input.ParseLayout(app.settings.Snapshot().FrontButtonLayout)
	if err != nil {
		return input.LayoutBackConfirmLeftRight
	}
	return layout
}

func (app *App) transferURL() string {
	host, err := system.IPv4("wlan")
	if err != nil {
		app.Logger.Errorf("app", "no network address: %v", err)
		host = "localhost"
	}
	return system.TransferURL(host, app.Config.ListenAddr)
}

// openBook records the book as the most recent one.
func (app *App) openBook(ctx context.Context, book recent.Book) error {
	book.OpenedAt = time.Time{}
	app.Logger.Infof("app", "open %s", book.Path)
	return app.recent.Touch(ctx, book)
}
