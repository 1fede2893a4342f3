package screens

import (
	"context"
	"strings"

	"github.com/rook-computer/inkpoint/internal/activity"
	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
	"github.com/rook-computer/inkpoint/internal/settings"
)

const (
	keyboardColumns    = 10
	keyboardCharacters = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxDeviceNameLen   = 24
)

type keyAction int

const (
	keyType keyAction = iota
	keySpace
	keyDelete
	keyDone
)

type keyboardKey struct {
	action keyAction
	char   rune
	row    int
	col    int
	span   int
}

// keyboardKeys lays the characters out ten per row and puts the three
// action keys on a row of their own, each spanning three columns.
var keyboardKeys = func() []keyboardKey {
	keys := make([]keyboardKey, 0, len(keyboardCharacters)+3)
	for i, r := range keyboardCharacters {
		keys = append(keys, keyboardKey{action: keyType, char: r, row: i / keyboardColumns, col: i % keyboardColumns, span: 1})
	}
	row := (len(keyboardCharacters) + keyboardColumns - 1) / keyboardColumns
	for i, action := range []keyAction{keySpace, keyDelete, keyDone} {
		keys = append(keys, keyboardKey{action: action, row: row, col: i*3 + 1, span: 3})
	}
	return keys
}()

var keyboardRows = keyboardKeys[len(keyboardKeys)-1].row + 1

// Keyboard edits the device name. Left/Right walk the keys, Up/Down change rows.
type Keyboard struct {
	activity.Base

	env      *Env
	text     []rune
	selected int
}

func NewKeyboard(env *Env) *Keyboard {
	return &Keyboard{env: env}
}

func (screen *Keyboard) Name() string { return "keyboard" }

func (screen *Keyboard) Start(ctx context.Context) error {
	if err := screen.env.require(true, false, false); err != nil {
		return err
	}
	screen.text = []rune(screen.env.Settings.Snapshot().DeviceName)
	screen.selected = 0
	screen.RequestUpdate()
	return nil
}

func (screen *Keyboard) Stop() error { return nil }

func (screen *Keyboard) Loop(ctx context.Context) {
	in := screen.env.Host.Input()
	if in.WasPressed(input.Back) {
		screen.env.Host.Back()
		return
	}
	if in.WasPressed(input.Confirm) {
		screen.press(keyboardKeys[screen.selected])
		return
	}

	switch {
	case in.WasReleased(input.Right):
		screen.selected = input.NextIndex(screen.selected, len(keyboardKeys))
	case in.WasReleased(input.Left):
		screen.selected = input.PreviousIndex(screen.selected, len(keyboardKeys))
	case in.WasReleased(input.Down):
		screen.selected = keyInRow(keyboardKeys[screen.selected], 1)
	case in.WasReleased(input.Up):
		screen.selected = keyInRow(keyboardKeys[screen.selected], -1)
	default:
		return
	}
	screen.RequestUpdate()
}

// keyInRow returns the key in the row dir rows away (wrapping) whose columns
// are closest to from.
func keyInRow(from keyboardKey, dir int) int {
	row := (from.row + dir + keyboardRows) % keyboardRows
	center := 2*from.col + from.span
	best, bestDist := 0, -1
	for i, k := range keyboardKeys {
		if k.row != row {
			continue
		}
		dist := 2*k.col + k.span - center
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func (screen *Keyboard) press(key keyboardKey) {
	switch key.action {
	case keyType:
		screen.insert(key.char)
	case keySpace:
		screen.insert(' ')
	case keyDelete:
		if len(screen.text) > 0 {
			screen.text = screen.text[:len(screen.text)-1]
		}
	case keyDone:
		name := string(screen.text)
		if strings.TrimSpace(name) == "" {
			screen.revert()
			return
		}
		if err := screen.env.Settings.Update(func(st *settings.Settings) { st.DeviceName = name }); err != nil {
			screen.env.logger().Errorf("keyboard", "save device name %q: %v", name, err)
			screen.revert()
			return
		}
		screen.env.Host.Back()
		return
	}
	screen.RequestUpdate()
}

// revert puts the stored name back into the field when it cannot be saved.
func (screen *Keyboard) revert() {
	screen.text = []rune(screen.env.Settings.Snapshot().DeviceName)
	screen.RequestUpdate()
}

func (screen *Keyboard) insert(r rune) {
	if len(screen.text) >= maxDeviceNameLen {
		return
	}
	screen.text = append(screen.text, r)
}

func (screen *Keyboard) label(key keyboardKey) string {
	switch key.action {
	case keySpace:
		return screen.env.tr(i18n.StrSpace)
	case keyDelete:
		return screen.env.tr(i18n.StrDel)
	case keyDone:
		return screen.env.tr(i18n.StrDone)
	}
	return string(key.char)
}

func (screen *Keyboard) Render(lock *render.Lock) {
	s := lock.Surface()
	th := screen.env.Theme
	m := th.Metrics()
	s.ClearScreen()

	header := headerRect(s, m)
	th.DrawHeader(s, header, screen.env.tr(i18n.StrDeviceName), "")

	text := string(screen.text)
	textWidth := s.TextWidth(render.FontUI12, text, render.Regular)
	field := layout.R(m.ContentSidePadding, header.Bottom()+m.VerticalSpacing, s.ScreenWidth()-2*m.ContentSidePadding, 0)
	s.DrawText(render.FontUI12, field.X+(field.Width-textWidth)/2, field.Y, text, true, render.Regular)
	th.DrawTextField(s, field, textWidth)

	keysTop := field.Y + 2*s.LineHeight(render.FontUI12) + 2*m.VerticalSpacing
	cellWidth := max((s.ScreenWidth()-2*m.ContentSidePadding)/keyboardColumns, m.KeyboardKeyWidth)
	cellHeight := m.KeyboardKeyHeight + m.VerticalSpacing
	for i, key := range keyboardKeys {
		rect := layout.R(m.ContentSidePadding+key.col*cellWidth, keysTop+key.row*cellHeight, key.span*cellWidth, m.KeyboardKeyHeight)
		th.DrawKeyboardKey(s, rect, screen.label(key), i == screen.selected)
	}

	screen.env.drawHints(s, i18n.StrBack, i18n.StrSelect, i18n.StrDirLeft, i18n.StrDirRight)
	s.DisplayBuffer(render.FastRefresh)
}
