package screens

import (
	"context"

	"github.com/rook-computer/inkpoint/internal/activity"
	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/theme"
)

// LanguageSelect lists the UI languages and switches to the confirmed one.
type LanguageSelect struct {
	activity.Base

	env      *Env
	nav      input.Navigator
	selected int
	total    int
}

func NewLanguageSelect(env *Env) *LanguageSelect {
	return &LanguageSelect{env: env}
}

func (screen *LanguageSelect) Name() string { return "language-select" }

func (screen *LanguageSelect) Start(ctx context.Context) error {
	if err := screen.env.require(false, false, false); err != nil {
		return err
	}
	screen.nav = input.NewNavigator(screen.env.Host.Input())
	screen.total = screen.env.Strings.LanguageCount()
	screen.selected = screen.env.Strings.Language()
	screen.RequestUpdate()
	return nil
}

func (screen *LanguageSelect) Stop() error { return nil }

func (screen *LanguageSelect) Loop(ctx context.Context) {
	in := screen.env.Host.Input()
	if in.WasPressed(input.Back) {
		screen.env.Host.Back()
		return
	}
	if in.WasPressed(input.Confirm) {
		screen.confirm()
		return
	}

	screen.nav.OnNextRelease(func() {
		screen.selected = input.NextIndex(screen.selected, screen.total)
		screen.RequestUpdate()
	})
	screen.nav.OnPreviousRelease(func() {
		screen.selected = input.PreviousIndex(screen.selected, screen.total)
		screen.RequestUpdate()
	})
}

func (screen *LanguageSelect) confirm() {
	var err error
	func() {
		lock := screen.env.Host.Gate().Acquire()
		defer lock.Release()
		err = screen.env.Strings.SetLanguage(screen.selected)
	}()
	if err != nil {
		screen.env.logger().Errorf("language", "set language %d: %v", screen.selected, err)
	}
	screen.env.Host.Back()
}

func (screen *LanguageSelect) Render(lock *render.Lock) {
	s := lock.Surface()
	th := screen.env.Theme
	m := th.Metrics()
	s.ClearScreen()

	th.DrawHeader(s, headerRect(s, m), screen.env.tr(i18n.StrLanguage), "")

	current := screen.env.Strings.Language()
	set := screen.env.tr(i18n.StrSet)
	th.DrawList(s, contentRect(s, m, 0), screen.total, screen.selected, theme.ListRows{
		Title: screen.env.Strings.LanguageName,
		Value: func(index int) string {
			if index == current {
				return set
			}
			return ""
		},
		HighlightValue: true,
	})

	screen.env.drawHints(s, i18n.StrBack, i18n.StrSelect, i18n.StrDirUp, i18n.StrDirDown)
	s.DisplayBuffer(render.FastRefresh)
}
