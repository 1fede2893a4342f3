package screens

import (
	"context"

	"github.com/rook-computer/inkpoint/internal/activity"
	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
	"github.com/rook-computer/inkpoint/internal/settings"
	"github.com/rook-computer/inkpoint/internal/system"
	"github.com/rook-computer/inkpoint/internal/theme"
)

type settingsRow struct {
	label i18n.Key
	value func(screen *Settings) string
	apply func(screen *Settings, ctx context.Context)
}

type settingsTab struct {
	label i18n.Key
	rows  []settingsRow
}

var settingsTabs = []settingsTab{
	{label: i18n.StrDisplay, rows: []settingsRow{
		{label: i18n.StrBatteryPct, value: (*Settings).batteryValue, apply: (*Settings).toggleBattery},
	}},
	{label: i18n.StrControls, rows: []settingsRow{
		{label: i18n.StrFrontButtons, value: (*Settings).layoutValue, apply: (*Settings).toggleLayout},
	}},
	{label: i18n.StrSystem, rows: []settingsRow{
		{label: i18n.StrLanguage, value: (*Settings).languageValue, apply: (*Settings).openLanguage},
		{label: i18n.StrDeviceName, value: (*Settings).deviceNameValue, apply: (*Settings).openKeyboard},
		{label: i18n.StrClearRecents, apply: (*Settings).clearRecents},
		{label: i18n.StrPowerOff, apply: (*Settings).powerOff},
	}},
}

// Settings edits the persisted device settings. The tab bar has focus on
// entry; Confirm moves focus into the list and Back moves it out again.
type Settings struct {
	activity.Base

	env         *Env
	nav         input.Navigator
	tab         int
	row         int
	listFocused bool
}

func NewSettings(env *Env) *Settings {
	return &Settings{env: env}
}

func (screen *Settings) Name() string { return "settings" }

func (screen *Settings) Start(ctx context.Context) error {
	if err := screen.env.require(true, false, false); err != nil {
		return err
	}
	screen.nav = input.NewNavigator(screen.env.Host.Input())
	screen.tab = 0
	screen.row = 0
	screen.listFocused = false
	screen.RequestUpdate()
	return nil
}

func (screen *Settings) Stop() error { return nil }

func (screen *Settings) Loop(ctx context.Context) {
	in := screen.env.Host.Input()
	if in.WasPressed(input.Back) {
		if screen.listFocused {
			screen.listFocused = false
			screen.RequestUpdate()
			return
		}
		screen.env.Host.Back()
		return
	}
	if in.WasPressed(input.Confirm) {
		if !screen.listFocused {
			screen.listFocused = true
			screen.row = 0
			screen.RequestUpdate()
			return
		}
		settingsTabs[screen.tab].rows[screen.row].apply(screen, ctx)
		return
	}

	screen.nav.OnNextRelease(func() { screen.step(input.NextIndex) })
	screen.nav.OnPreviousRelease(func() { screen.step(input.PreviousIndex) })
}

func (screen *Settings) step(move func(index, total int) int) {
	if screen.listFocused {
		screen.row = move(screen.row, len(settingsTabs[screen.tab].rows))
	} else {
		screen.tab = move(screen.tab, len(settingsTabs))
	}
	screen.RequestUpdate()
}

func (screen *Settings) Render(lock *render.Lock) {
	s := lock.Surface()
	th := screen.env.Theme
	m := th.Metrics()
	s.ClearScreen()

	header := headerRect(s, m)
	th.DrawHeader(s, header, screen.env.tr(i18n.StrSettings), "")

	tabs := make([]theme.TabInfo, len(settingsTabs))
	for i, tab := range settingsTabs {
		tabs[i] = theme.TabInfo{Label: screen.env.tr(tab.label), Selected: i == screen.tab}
	}
	tabBar := layout.R(0, header.Bottom(), s.ScreenWidth(), m.TabBarHeight)
	th.DrawTabBar(s, tabBar, tabs, !screen.listFocused)

	rows := settingsTabs[screen.tab].rows
	selected := -1
	if screen.listFocused {
		selected = screen.row
	}
	list, _ := layout.SplitVertical(contentRect(s, m, tabBar.Bottom()+m.VerticalSpacing), s.ScreenWidth()-m.SideButtonHintsWidth)
	th.DrawList(s, list, len(rows), selected, theme.ListRows{
		Title: func(i int) string { return screen.env.tr(rows[i].label) },
		Value: func(i int) string {
			if rows[i].value == nil {
				return ""
			}
			return rows[i].value(screen)
		},
	})

	if screen.listFocused {
		screen.env.drawHints(s, i18n.StrBack, i18n.StrSelect, i18n.StrDirUp, i18n.StrDirDown)
	} else {
		screen.env.drawHints(s, i18n.StrBack, i18n.StrSelect, i18n.StrDirLeft, i18n.StrDirRight)
	}
	th.DrawSideButtonHints(s, "+", "-")
	s.DisplayBuffer(render.FastRefresh)
}

func (screen *Settings) batteryValue() string {
	if screen.env.Settings.Snapshot().HideBatteryPercentage {
		return screen.env.tr(i18n.StrHide)
	}
	return screen.env.tr(i18n.StrShow)
}

func (screen *Settings) toggleBattery(context.Context) {
	screen.update(func(st *settings.Settings) { st.HideBatteryPercentage = !st.HideBatteryPercentage })
}

func (screen *Settings) layoutValue() string {
	if screen.env.Host.Input().Layout() == input.LayoutLeftRightBackConfirm {
		return screen.env.tr(i18n.StrLayoutLRBC)
	}
	return screen.env.tr(i18n.StrLayoutBCLR)
}

func (screen *Settings) toggleLayout(context.Context) {
	next := input.LayoutLeftRightBackConfirm
	if screen.env.Host.Input().Layout() == next {
		next = input.LayoutBackConfirmLeftRight
	}
	if screen.update(func(st *settings.Settings) { st.FrontButtonLayout = next.String() }) {
		screen.env.Host.Input().SetLayout(next)
	}
}

func (screen *Settings) languageValue() string {
	return screen.env.Strings.LanguageName(screen.env.Strings.Language())
}

func (screen *Settings) openLanguage(context.Context) {
	screen.env.Host.Push(NewLanguageSelect(screen.env))
}

func (screen *Settings) deviceNameValue() string {
	return screen.env.Settings.Snapshot().DeviceName
}

func (screen *Settings) openKeyboard(context.Context) {
	screen.env.Host.Push(NewKeyboard(screen.env))
}

// clearRecents forgets the recent books one by one, advancing a progress bar
// inside the popup after each.
func (screen *Settings) clearRecents(ctx context.Context) {
	defer screen.RequestUpdate()
	if screen.env.Recent == nil {
		screen.env.logger().Errorf("settings", "no recent books store configured")
		return
	}
	books, err := screen.env.Recent.List(ctx, recent.MaxBooks)
	if err != nil {
		screen.env.logger().Errorf("settings", "list recent books: %v", err)
		return
	}

	popup := screen.env.showPopup(screen.env.tr(i18n.StrClearing))
	for i, book := range books {
		if err := screen.env.Recent.Remove(ctx, book.Path); err != nil {
			screen.env.logger().Errorf("settings", "remove %q: %v", book.Path, err)
			return
		}
		screen.env.fillPopupProgress(popup, (i+1)*100/len(books))
	}
	screen.env.logger().Infof("settings", "cleared %d recent books", len(books))
}

func (screen *Settings) powerOff(ctx context.Context) {
	if screen.env.Runner == nil {
		screen.env.logger().Errorf("settings", "no system runner configured")
		return
	}
	screen.env.showPopup(screen.env.tr(i18n.StrPoweringOff))
	if err := system.PowerOff(ctx, screen.env.Runner); err != nil {
		screen.env.logger().Errorf("settings", "power off: %v", err)
		screen.RequestUpdate()
		return
	}
	screen.env.Host.Exit(nil)
}

// update applies fn to the stored settings and reports whether it was saved.
func (screen *Settings) update(fn func(*settings.Settings)) bool {
	screen.RequestUpdate()
	if err := screen.env.Settings.Update(fn); err != nil {
		screen.env.logger().Errorf("settings", "save settings: %v", err)
		return false
	}
	return true
}
