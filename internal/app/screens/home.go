package screens

import (
	"context"

	"github.com/rook-computer/inkpoint/internal/activity"
	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/icons"
	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
	"github.com/rook-computer/inkpoint/internal/theme"
)

type homeItem struct {
	label i18n.Key
	icon  icons.Icon
	open  func(env *Env) activity.Activity
}

var homeMenu = []homeItem{
	{label: i18n.StrSettings, icon: icons.Settings, open: func(env *Env) activity.Activity { return NewSettings(env) }},
	{label: i18n.StrFileTransfer, icon: icons.Transfer, open: func(env *Env) activity.Activity { return NewTransfer(env) }},
}

// Home shows the recently opened books above the main menu. The selector
// runs over the books first, then the menu entries.
type Home struct {
	activity.Base

	env      *Env
	nav      input.Navigator
	books    []recent.Book
	cache    theme.CoverCache
	selected int
	full     bool
}

func NewHome(env *Env) *Home {
	return &Home{env: env}
}

func (screen *Home) Name() string { return "home" }

func (screen *Home) Start(ctx context.Context) error {
	if err := screen.env.require(false, true, false); err != nil {
		return err
	}
	screen.nav = input.NewNavigator(screen.env.Host.Input())
	screen.selected = 0
	screen.full = true
	screen.reload(ctx)
	return nil
}

func (screen *Home) reload(ctx context.Context) {
	screen.cache.Reset()
	books, err := screen.env.Recent.List(ctx, screen.env.Theme.Metrics().HomeRecentBooksCount)
	if err != nil {
		screen.env.logger().Errorf("home", "list recent books: %v", err)
		books = nil
	}
	screen.books = books
	screen.selected = min(screen.selected, max(screen.total()-1, 0))
	screen.RequestUpdate()
}

func (screen *Home) Stop() error { return nil }

func (screen *Home) total() int { return len(screen.books) + len(homeMenu) }

func (screen *Home) Loop(ctx context.Context) {
	in := screen.env.Host.Input()
	if in.WasPressed(input.Confirm) {
		screen.activate(ctx)
		return
	}

	screen.nav.OnNextRelease(func() {
		screen.selected = input.NextIndex(screen.selected, screen.total())
		screen.RequestUpdate()
	})
	screen.nav.OnPreviousRelease(func() {
		screen.selected = input.PreviousIndex(screen.selected, screen.total())
		screen.RequestUpdate()
	})
}

func (screen *Home) activate(ctx context.Context) {
	if screen.selected >= len(screen.books) {
		item := homeMenu[screen.selected-len(screen.books)]
		screen.env.Host.Push(item.open(screen.env))
		return
	}

	book := screen.books[screen.selected]
	screen.env.showPopup(screen.env.tr(i18n.StrOpening))
	if screen.env.OpenBook == nil {
		screen.env.logger().Errorf("home", "no reader configured for %q", book.Path)
	} else if err := screen.env.OpenBook(ctx, book); err != nil {
		screen.env.logger().Errorf("home", "open %q: %v", book.Path, err)
	}
	// Opening reorders the recents.
	screen.selected = 0
	screen.full = true
	screen.reload(ctx)
}

func (screen *Home) Render(lock *render.Lock) {
	s := lock.Surface()
	th := screen.env.Theme
	m := th.Metrics()

	screen.cache.BeginFrame(s)
	header := headerRect(s, m)
	th.DrawHeader(s, header, "", "")

	covers := layout.R(0, header.Bottom()+m.VerticalSpacing, s.ScreenWidth(), m.HomeCoverTileHeight)
	if len(screen.books) == 0 {
		th.DrawEmptyRecents(s, covers)
	} else {
		books := make([]theme.RecentBook, len(screen.books))
		for i, b := range screen.books {
			books[i] = theme.RecentBook{Title: b.Title, CoverPath: b.CoverPath}
		}
		selector := -1
		if screen.selected < len(screen.books) {
			selector = screen.selected
		}
		th.DrawRecentBookCover(s, covers, books, selector, &screen.cache)
	}

	menu := contentRect(s, m, covers.Bottom()+m.VerticalSpacing)
	th.DrawButtonMenu(s, menu, len(homeMenu), screen.selected-len(screen.books),
		func(i int) string { return screen.env.tr(homeMenu[i].label) },
		func(i int) icons.Icon { return homeMenu[i].icon })

	screen.env.drawHints(s, "", i18n.StrSelect, i18n.StrDirLeft, i18n.StrDirRight)

	mode := render.FastRefresh
	if screen.full {
		mode = render.FullRefresh
		screen.full = false
	}
	s.DisplayBuffer(mode)
}
