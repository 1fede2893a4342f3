// Package theme turns widget requests into primitive draw calls on a
// render.Surface. A theme holds no state between calls except what callers
// pass in explicitly (see CoverCache).
package theme

import (
	"image"

	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/icons"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
)

// ProductName is the header title when a screen supplies none.
const ProductName = "InkPoint"

// Theme draws every high-level widget of the UI.
type Theme interface {
	Metrics() Metrics

	DrawBatteryLeft(s render.Surface, rect layout.Rect, showPercentage bool)
	DrawBatteryRight(s render.Surface, rect layout.Rect, showPercentage bool)
	DrawHeader(s render.Surface, rect layout.Rect, title, subtitle string)
	DrawSubHeader(s render.Surface, rect layout.Rect, label, rightLabel string)
	DrawTabBar(s render.Surface, rect layout.Rect, tabs []TabInfo, focused bool)
	DrawList(s render.Surface, rect layout.Rect, itemCount, selectedIndex int, rows ListRows)
	DrawButtonHints(s render.Surface, btn1, btn2, btn3, btn4 string)
	DrawSideButtonHints(s render.Surface, top, bottom string)
	DrawButtonMenu(s render.Surface, rect layout.Rect, buttonCount, selectedIndex int, label func(int) string, icon func(int) icons.Icon)
	DrawRecentBookCover(s render.Surface, rect layout.Rect, books []RecentBook, selectorIndex int, cache *CoverCache)
	DrawEmptyRecents(s render.Surface, rect layout.Rect)
	DrawPopup(s render.Surface, message string) layout.Rect
	FillPopupProgress(s render.Surface, popup layout.Rect, progress int)
	DrawTextField(s render.Surface, rect layout.Rect, textWidth int)
	DrawKeyboardKey(s render.Surface, rect layout.Rect, label string, selected bool)
}

// TabInfo is one tab of a tab bar.
type TabInfo struct {
	Label    string
	Selected bool
}

// RecentBook is the read-only projection of a recently opened book.
type RecentBook struct {
	Title     string
	CoverPath string
}

// ListRows supplies row content to DrawList. Title is required. A nil
// callback and a callback returning "" are different: a present Subtitle
// selects the taller row preset, a present Icon reserves icon width and a
// present Value reserves value width, even when they return nothing.
type ListRows struct {
	Title    func(index int) string
	Subtitle func(index int) string
	Icon     func(index int) icons.Icon
	Value    func(index int) string

	// HighlightValue draws the selected row's value inverted on its own band.
	HighlightValue bool
}

// CoverCache carries the recent-cover gallery state across renders of one
// screen activation. Covers are decoded and drawn while Rendered is false;
// afterwards the stored buffer snapshot stands in for them.
type CoverCache struct {
	Rendered       bool
	BufferStored   bool
	BufferRestored bool
}

// Reset forgets everything; call it when the owning screen is entered.
func (c *CoverCache) Reset() { *c = CoverCache{} }

// BeginFrame prepares the surface for a frame containing the gallery: the
// stored snapshot is restored when there is one, otherwise the screen is cleared.
func (c *CoverCache) BeginFrame(s render.Surface) {
	c.BufferRestored = c.Rendered && c.BufferStored && s.RestoreBuffer()
	if !c.BufferRestored {
		s.ClearScreen()
	}
}

// IconResolver maps an icon identity and pixel size to a bitmap, or nil.
type IconResolver interface {
	Resolve(icon icons.Icon, size int) image.Image
}

// Battery reports the charge level in percent.
type Battery interface {
	Percentage() int
}

// Translator looks up UI strings.
type Translator interface {
	Tr(key i18n.Key) string
}

// CoverLoader opens and decodes the cover thumbnail for coverPath at the
// given height.
type CoverLoader interface {
	LoadCover(coverPath string, height int) (image.Image, error)
}

// Preferences exposes the user settings a theme reads while drawing.
type Preferences interface {
	BatteryPercentageVisible() bool
}
