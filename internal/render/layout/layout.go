package layout

import "image"

// Rect is an axis-aligned region in absolute device pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// R is shorthand for Rect{X: x, Y: y, Width: width, Height: height}.
func R(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// FromImage converts an image.Rectangle into a Rect.
func FromImage(rect image.Rectangle) Rect {
	rect = rect.Canon()
	return Rect{X: rect.Min.X, Y: rect.Min.Y, Width: rect.Dx(), Height: rect.Dy()}
}

func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Normalize clamps negative sizes to zero.
func Normalize(rect Rect) Rect {
	if rect.Width < 0 {
		rect.Width = 0
	}
	if rect.Height < 0 {
		rect.Height = 0
	}
	return rect
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect Rect, paddingPx int) Rect {
	if paddingPx <= 0 {
		return rect
	}
	return Normalize(Rect{
		X:      rect.X + paddingPx,
		Y:      rect.Y + paddingPx,
		Width:  rect.Width - 2*paddingPx,
		Height: rect.Height - 2*paddingPx,
	})
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Height].
func SplitHorizontal(rect Rect, topHeightPx int) (top Rect, bottom Rect) {
	rect = Normalize(rect)
	topHeightPx = clamp(topHeightPx, 0, rect.Height)
	top = Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: topHeightPx}
	bottom = Rect{X: rect.X, Y: rect.Y + topHeightPx, Width: rect.Width, Height: rect.Height - topHeightPx}
	return top, bottom
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Width].
func SplitVertical(rect Rect, leftWidthPx int) (left Rect, right Rect) {
	rect = Normalize(rect)
	leftWidthPx = clamp(leftWidthPx, 0, rect.Width)
	left = Rect{X: rect.X, Y: rect.Y, Width: leftWidthPx, Height: rect.Height}
	right = Rect{X: rect.X + leftWidthPx, Y: rect.Y, Width: rect.Width - leftWidthPx, Height: rect.Height}
	return left, right
}

// Columns splits rect into n equal-width columns after removing sidePaddingPx
// from both edges. The remainder of the integer division is left unused on the right.
func Columns(rect Rect, n, sidePaddingPx int) []Rect {
	if n <= 0 {
		return nil
	}
	colWidth := (rect.Width - 2*sidePaddingPx) / n
	if colWidth < 0 {
		colWidth = 0
	}
	out := make([]Rect, n)
	for i := range out {
		out[i] = Rect{X: rect.X + sidePaddingPx + colWidth*i, Y: rect.Y, Width: colWidth, Height: rect.Height}
	}
	return out
}

// CenterIn returns a rect of the given size centered inside rect.
func CenterIn(rect Rect, widthPx, heightPx int) Rect {
	return Rect{
		X:      rect.X + (rect.Width-widthPx)/2,
		Y:      rect.Y + (rect.Height-heightPx)/2,
		Width:  widthPx,
		Height: heightPx,
	}
}

// FitSquare returns the largest square that fits into rect, centered horizontally.
func FitSquare(rect Rect) Rect {
	rect = Normalize(rect)
	size := rect.Width
	if rect.Height < size {
		size = rect.Height
	}
	return Rect{X: rect.X + (rect.Width-size)/2, Y: rect.Y, Width: size, Height: size}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
