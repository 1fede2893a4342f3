// Package screens holds the activities the device navigates between.
package screens

import (
	"context"
	"errors"

	"github.com/rook-computer/inkpoint/internal/activity"
	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/logging"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
	"github.com/rook-computer/inkpoint/internal/settings"
	"github.com/rook-computer/inkpoint/internal/storage"
	"github.com/rook-computer/inkpoint/internal/system"
	"github.com/rook-computer/inkpoint/internal/theme"
)

// Strings is the language service as the screens see it.
type Strings interface {
	Tr(key i18n.Key) string
	LanguageCount() int
	Language() int
	LanguageName(index int) string
	SetLanguage(index int) error
}

// RecentBooks is the part of the recent-books store the screens use.
type RecentBooks interface {
	List(ctx context.Context, limit int) ([]recent.Book, error)
	Remove(ctx context.Context, path string) error
}

// Files lists the book library.
type Files interface {
	List() ([]storage.File, error)
}

// Env carries the collaborators shared by every screen.
type Env struct {
	Host     activity.Host
	Theme    theme.Theme
	Strings  Strings
	Settings *settings.Store
	Recent   RecentBooks
	Library  Files
	Runner   system.Runner
	Logger   logging.Logger

	// TransferURL is where the web UI can be reached.
	TransferURL func() string
	// LibraryRevision changes whenever the library is modified remotely.
	LibraryRevision func() uint64
	// OpenBook hands a recent book to the reader.
	OpenBook func(ctx context.Context, book recent.Book) error
}

var (
	errNoHost     = errors.New("no activity host configured")
	errNoTheme    = errors.New("no theme configured")
	errNoStrings  = errors.New("no language service configured")
	errNoSettings = errors.New("no settings store configured")
	errNoRecent   = errors.New("no recent books store configured")
	errNoLibrary  = errors.New("no library configured")
)

func (env *Env) require(needSettings, needRecent, needLibrary bool) error {
	switch {
	case env == nil || env.Host == nil:
		return errNoHost
	case env.Theme == nil:
		return errNoTheme
	case env.Strings == nil:
		return errNoStrings
	case needSettings && env.Settings == nil:
		return errNoSettings
	case needRecent && env.Recent == nil:
		return errNoRecent
	case needLibrary && env.Library == nil:
		return errNoLibrary
	}
	return nil
}

func (env *Env) logger() logging.Logger { return logging.OrNop(env.Logger) }

func (env *Env) tr(key i18n.Key) string { return env.Strings.Tr(key) }

// headerRect is the full-width header band below the top padding.
func headerRect(s render.Surface, m theme.Metrics) layout.Rect {
	return layout.R(0, m.TopPadding, s.ScreenWidth(), m.HeaderHeight)
}

// contentRect is the area between the header and the button hints.
func contentRect(s render.Surface, m theme.Metrics, top int) layout.Rect {
	if top == 0 {
		top = m.TopPadding + m.HeaderHeight + m.VerticalSpacing
	}
	above := layout.R(0, 0, s.ScreenWidth(), s.ScreenHeight()-m.ButtonHintsHeight-m.VerticalSpacing)
	_, content := layout.SplitHorizontal(above, top)
	return content
}

func (env *Env) drawHints(s render.Surface, back, confirm, previous, next i18n.Key) {
	labels := env.Host.Input().MapLabels(env.label(back), env.label(confirm), env.label(previous), env.label(next))
	env.Theme.DrawButtonHints(s, labels.Btn1, labels.Btn2, labels.Btn3, labels.Btn4)
}

// label translates key; the empty key hides the hint.
func (env *Env) label(key i18n.Key) string {
	if key == "" {
		return ""
	}
	return env.tr(key)
}

// showPopup draws message and commits it on its own.
func (env *Env) showPopup(message string) layout.Rect {
	lock := env.Host.Gate().Acquire()
	defer lock.Release()
	return env.Theme.DrawPopup(lock.Surface(), message)
}

func (env *Env) fillPopupProgress(popup layout.Rect, progress int) {
	lock := env.Host.Gate().Acquire()
	defer lock.Release()
	env.Theme.FillPopupProgress(lock.Surface(), popup, progress)
}
