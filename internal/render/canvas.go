package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// Canvas is an offscreen 1-bit frame in physical panel coordinates. All
// drawing takes logical coordinates and is rotated by the current orientation.
//
// Canvas deliberately has no commit method: frames reach the panel only
// through a Gate.
type Canvas struct {
	frame       *image.Gray
	stored      []byte
	orientation Orientation
	fonts       *Fonts
	logger      logging.Logger
}

func NewCanvas(fonts *Fonts, logger logging.Logger) *Canvas {
	c := &Canvas{
		frame:  image.NewGray(image.Rect(0, 0, PanelWidth, PanelHeight)),
		fonts:  fonts,
		logger: logging.OrNop(logger),
	}
	c.ClearScreen()
	return c
}

func (c *Canvas) ScreenWidth() int {
	if c.orientation == Portrait || c.orientation == PortraitInverted {
		return PanelHeight
	}
	return PanelWidth
}

func (c *Canvas) ScreenHeight() int {
	if c.orientation == Portrait || c.orientation == PortraitInverted {
		return PanelWidth
	}
	return PanelHeight
}

func (c *Canvas) Orientation() Orientation      { return c.orientation }
func (c *Canvas) SetOrientation(o Orientation) { c.orientation = o }

func (c *Canvas) toPhysical(x, y int) (int, int) {
	switch c.orientation {
	case Portrait:
		return y, PanelHeight - 1 - x
	case LandscapeClockwise:
		return PanelWidth - 1 - x, PanelHeight - 1 - y
	case PortraitInverted:
		return PanelWidth - 1 - y, x
	default:
		return x, y
	}
}

func (c *Canvas) ClearScreen() {
	for i := range c.frame.Pix {
		c.frame.Pix[i] = Paper.Y
	}
}

func (c *Canvas) DrawPixel(x, y int, black bool) {
	if x < 0 || y < 0 || x >= c.ScreenWidth() || y >= c.ScreenHeight() {
		return
	}
	px, py := c.toPhysical(x, y)
	if black {
		c.frame.SetGray(px, py, Ink)
	} else {
		c.frame.SetGray(px, py, Paper)
	}
}

// pixel reads a logical pixel; out-of-range reads as paper.
func (c *Canvas) pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= c.ScreenWidth() || y >= c.ScreenHeight() {
		return false
	}
	px, py := c.toPhysical(x, y)
	return c.frame.GrayAt(px, py).Y < 0x80
}

func (c *Canvas) DrawLine(x1, y1, x2, y2, thickness int, black bool) {
	if thickness < 1 {
		thickness = 1
	}
	switch {
	case y1 == y2:
		c.FillRect(min(x1, x2), y1, abs(x2-x1)+1, thickness, black)
	case x1 == x2:
		c.FillRect(x1, min(y1, y2), thickness, abs(y2-y1)+1, black)
	default:
		for t := 0; t < thickness; t++ {
			c.bresenham(x1, y1+t, x2, y2+t, black)
		}
	}
}

func (c *Canvas) bresenham(x1, y1, x2, y2 int, black bool) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	errAcc := dx + dy
	for {
		c.DrawPixel(x1, y1, black)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x1 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y1 += sy
		}
	}
}

func (c *Canvas) DrawRect(x, y, width, height, thickness int, black bool) {
	if width <= 0 || height <= 0 {
		return
	}
	if thickness < 1 {
		thickness = 1
	}
	c.FillRect(x, y, width, thickness, black)
	c.FillRect(x, y+height-thickness, width, thickness, black)
	c.FillRect(x, y, thickness, height, black)
	c.FillRect(x+width-thickness, y, thickness, height, black)
}

func (c *Canvas) FillRect(x, y, width, height int, black bool) {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			c.DrawPixel(px, py, black)
		}
	}
}

// ditherInk reports whether the shade puts ink at logical (x, y).
func ditherInk(shade Shade, x, y int) bool {
	switch shade {
	case Black:
		return true
	case DarkGray:
		return (x+y)%2 == 0
	case LightGray:
		return x%2 == 0 && y%2 == 0
	default:
		return false
	}
}

func (c *Canvas) FillRectDither(x, y, width, height int, shade Shade) {
	for py := y; py < y+height; py++ {
		for px := x; px < x+width; px++ {
			c.DrawPixel(px, py, ditherInk(shade, px, py))
		}
	}
}

func (c *Canvas) face(id FontID, style Style) font.Face { return c.fonts.Face(id, style) }

func (c *Canvas) TextWidth(id FontID, text string, style Style) int {
	return font.MeasureString(c.face(id, style), text).Ceil()
}

func (c *Canvas) TextHeight(id FontID) int {
	return c.face(id, Regular).Metrics().Ascent.Ceil()
}

func (c *Canvas) LineHeight(id FontID) int {
	return c.face(id, Regular).Metrics().Height.Ceil()
}

func (c *Canvas) TruncatedText(id FontID, text string, maxWidth int, style Style) string {
	return Truncate(c.face(id, style), text, maxWidth)
}

// textMask rasterizes text into an alpha mask whose origin is the top of the line box.
func (c *Canvas) textMask(id FontID, text string, style Style) *image.Alpha {
	face := c.face(id, style)
	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil() + 2
	height := metrics.Height.Ceil() + metrics.Descent.Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: metrics.Ascent},
	}
	drawer.DrawString(text)
	return mask
}

func (c *Canvas) DrawText(id FontID, x, y int, text string, black bool, style Style) {
	if text == "" {
		return
	}
	mask := c.textMask(id, text, style)
	bounds := mask.Bounds()
	for my := 0; my < bounds.Dy(); my++ {
		for mx := 0; mx < bounds.Dx(); mx++ {
			if mask.AlphaAt(mx, my).A >= 0x80 {
				c.DrawPixel(x+mx, y+my, black)
			}
		}
	}
}

func (c *Canvas) DrawCenteredText(id FontID, y int, text string, black bool, style Style) {
	x := (c.ScreenWidth() - c.TextWidth(id, text, style)) / 2
	c.DrawText(id, x, y, text, black, style)
}

// DrawTextRotated90CW draws text running bottom to top, starting at (x, y).
func (c *Canvas) DrawTextRotated90CW(id FontID, x, y int, text string) {
	if text == "" {
		return
	}
	mask := c.textMask(id, text, Regular)
	bounds := mask.Bounds()
	for my := 0; my < bounds.Dy(); my++ {
		for mx := 0; mx < bounds.Dx(); mx++ {
			if mask.AlphaAt(mx, my).A >= 0x80 {
				c.DrawPixel(x+my, y-mx, true)
			}
		}
	}
}

func (c *Canvas) DrawIcon(icon image.Image, x, y, width, height int) {
	if icon == nil || width <= 0 || height <= 0 {
		return
	}
	src := icon.Bounds()
	for dy := 0; dy < height; dy++ {
		sy := src.Min.Y + (dy*src.Dy())/height
		for dx := 0; dx < width; dx++ {
			sx := src.Min.X + (dx*src.Dx())/width
			if color.AlphaModel.Convert(icon.At(sx, sy)).(color.Alpha).A >= 0x80 {
				c.DrawPixel(x+dx, y+dy, true)
			}
		}
	}
}

// CropRect returns the part of bounds kept by a crop fraction.
func CropRect(bounds image.Rectangle, crop float64) image.Rectangle {
	switch {
	case crop > 0 && crop < 1:
		cut := int(float64(bounds.Dx()) * crop)
		bounds.Min.X += cut / 2
		bounds.Max.X -= cut - cut/2
	case crop < 0:
		fraction := 1 - 1/(1-crop)
		cut := int(float64(bounds.Dy()) * fraction)
		bounds.Min.Y += cut / 2
		bounds.Max.Y -= cut - cut/2
	}
	return bounds
}

func (c *Canvas) DrawBitmap(img image.Image, x, y, width, height int, crop float64) {
	if img == nil || width <= 0 || height <= 0 {
		return
	}
	src := CropRect(img.Bounds(), crop)
	if src.Empty() {
		return
	}

	scaled := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, src, xdraw.Src, nil)

	mono := image.NewPaletted(scaled.Bounds(), color.Palette{Ink, Paper})
	draw.FloydSteinberg.Draw(mono, mono.Bounds(), scaled, image.Point{})

	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			c.DrawPixel(x+px, y+py, mono.ColorIndexAt(px, py) == 0)
		}
	}
}

func (c *Canvas) StoreBuffer() bool {
	c.stored = append(c.stored[:0], c.frame.Pix...)
	return true
}

func (c *Canvas) RestoreBuffer() bool {
	if len(c.stored) != len(c.frame.Pix) {
		return false
	}
	copy(c.frame.Pix, c.stored)
	return true
}

// Frame returns a copy of the physical frame.
func (c *Canvas) Frame() *image.Gray { return cloneGray(c.frame) }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
