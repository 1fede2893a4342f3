package input

import (
	"fmt"
	"strings"
)

// Button is a logical button.
type Button int

const (
	Back Button = iota
	Confirm
	Left
	Right
	Up
	Down
	PowerButton
)

var buttonNames = [...]string{"back", "confirm", "left", "right", "up", "down", "power"}

func (b Button) String() string {
	if b < Back || b > PowerButton {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton accepts the names returned by Button.String.
func ParseButton(name string) (Button, bool) {
	name = strings.TrimSpace(strings.ToLower(name))
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// Layout assigns the four front keys to logical buttons.
type Layout int

const (
	LayoutBackConfirmLeftRight Layout = iota
	LayoutLeftRightBackConfirm
)

var layoutNames = map[Layout]string{
	LayoutBackConfirmLeftRight: "back-confirm-left-right",
	LayoutLeftRightBackConfirm: "left-right-back-confirm",
}

func (l Layout) String() string { return layoutNames[l] }

// ParseLayout accepts the names returned by Layout.String; "" is the default layout.
func ParseLayout(name string) (Layout, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return LayoutBackConfirmLeftRight, nil
	}
	for l, n := range layoutNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown button layout %q", name)
}

var frontButtons = map[Layout][4]Button{
	LayoutBackConfirmLeftRight: {Back, Confirm, Left, Right},
	LayoutLeftRightBackConfirm: {Left, Right, Back, Confirm},
}

// Labels are the hint texts for the four front keys, left to right.
type Labels struct {
	Btn1, Btn2, Btn3, Btn4 string
}

// Mapper tracks key state between ticks and answers edge queries for
// logical buttons. It is owned by the scheduler goroutine.
type Mapper struct {
	layout   Layout
	previous State
	current  State
}

func NewMapper(layout Layout) *Mapper {
	return &Mapper{layout: layout}
}

func (m *Mapper) Layout() Layout { return m.layout }

func (m *Mapper) SetLayout(layout Layout) { m.layout = layout }

// Update advances to a new tick with the given key state.
func (m *Mapper) Update(keys State) {
	m.previous = m.current
	m.current = keys
}

// KeyFor returns the physical key that acts as b under layout.
func KeyFor(layout Layout, b Button) (Key, bool) {
	switch b {
	case Up:
		return SideUp, true
	case Down:
		return SideDown, true
	case PowerButton:
		return Power, true
	}
	for i, fb := range frontButtons[layout] {
		if fb == b {
			return Front1 + Key(i), true
		}
	}
	return 0, false
}

func (m *Mapper) keyFor(b Button) (Key, bool) { return KeyFor(m.layout, b) }

// IsPressed reports whether b is held in the current tick.
func (m *Mapper) IsPressed(b Button) bool {
	k, ok := m.keyFor(b)
	return ok && m.current.Has(k)
}

// WasPressed reports a press edge in the current tick.
func (m *Mapper) WasPressed(b Button) bool {
	k, ok := m.keyFor(b)
	return ok && m.current.Has(k) && !m.previous.Has(k)
}

// WasReleased reports a release edge in the current tick.
func (m *Mapper) WasReleased(b Button) bool {
	k, ok := m.keyFor(b)
	return ok && !m.current.Has(k) && m.previous.Has(k)
}

// MapLabels orders the hint labels to match the physical position of each
// logical button under the current layout.
func (m *Mapper) MapLabels(back, confirm, previous, next string) Labels {
	byButton := map[Button]string{Back: back, Confirm: confirm, Left: previous, Right: next}
	slots := frontButtons[m.layout]
	return Labels{
		Btn1: byButton[slots[0]],
		Btn2: byButton[slots[1]],
		Btn3: byButton[slots[2]],
		Btn4: byButton[slots[3]],
	}
}
