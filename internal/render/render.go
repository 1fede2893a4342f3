package render

import (
	"errors"
	"image"
)

// ErrLockReleased is reported when a commit is requested through a surface
// whose render lock has already been released.
var ErrLockReleased = errors.New("render lock already released")

// RefreshMode selects how a committed frame reaches the panel.
type RefreshMode int

const (
	// FullRefresh clears ghosting at the cost of latency.
	FullRefresh RefreshMode = iota
	// FastRefresh updates with some transient ghosting; for small, frequently updated regions.
	FastRefresh
)

func (m RefreshMode) String() string {
	if m == FastRefresh {
		return "fast"
	}
	return "full"
}

// Orientation maps logical drawing coordinates onto the physical panel.
type Orientation int

const (
	Portrait Orientation = iota
	LandscapeClockwise
	PortraitInverted
	LandscapeCounterClockwise
)

// FontID selects one of the UI font sizes.
type FontID int

const (
	FontUI10 FontID = iota
	FontUI12
	FontSmall
)

// Style selects the face weight.
type Style int

const (
	Regular Style = iota
	Bold
)

// Shade is a dithered fill pattern.
type Shade int

const (
	Black Shade = iota
	DarkGray
	LightGray
	White
)

// Surface is the set of drawing primitives themes are written against.
//
// black selects ink (true) or paper (false). Text y is the top of the line box.
// A Surface is only valid for the duration of the render lock it came from.
type Surface interface {
	ScreenWidth() int
	ScreenHeight() int
	Orientation() Orientation
	SetOrientation(o Orientation)

	ClearScreen()
	DrawPixel(x, y int, black bool)
	DrawLine(x1, y1, x2, y2, thickness int, black bool)
	DrawRect(x, y, width, height, thickness int, black bool)
	FillRect(x, y, width, height int, black bool)
	FillRectDither(x, y, width, height int, shade Shade)

	DrawText(font FontID, x, y int, text string, black bool, style Style)
	DrawCenteredText(font FontID, y int, text string, black bool, style Style)
	DrawTextRotated90CW(font FontID, x, y int, text string)
	TextWidth(font FontID, text string, style Style) int
	TextHeight(font FontID) int
	LineHeight(font FontID) int
	TruncatedText(font FontID, text string, maxWidth int, style Style) string

	// DrawIcon paints the opaque pixels of an alpha mask in ink.
	DrawIcon(icon image.Image, x, y, width, height int)
	// DrawBitmap scales img into width×height at (x, y). A positive crop removes
	// that fraction of the source width around the center; a negative crop
	// removes height instead (see CropRect).
	DrawBitmap(img image.Image, x, y, width, height int, crop float64)

	// StoreBuffer snapshots the current frame; RestoreBuffer copies it back.
	StoreBuffer() bool
	RestoreBuffer() bool

	// DisplayBuffer requests a commit of the frame with the given mode. The
	// commit itself happens when the owning render lock is released.
	DisplayBuffer(mode RefreshMode)
}
