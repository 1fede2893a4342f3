package theme

import (
	"image"
	"unicode/utf8"

	"github.com/rook-computer/inkpoint/internal/render"
)

const (
	fakeGlyphWidth = 7
	fakeTextHeight = 10
	fakeLineHeight = 14
)

type drawCall struct {
	op      string
	x, y    int
	x2, y2  int
	w, h    int
	text    string
	black   bool
	shade   render.Shade
	refresh render.RefreshMode
}

// recorder is a Surface that only remembers what was asked of it.
type recorder struct {
	calls       []drawCall
	orientation render.Orientation
	stored      bool
	restores    int
	clears      int
}

var _ render.Surface = (*recorder)(nil)

func (r *recorder) ScreenWidth() int {
	if r.orientation == render.Portrait || r.orientation == render.PortraitInverted {
		return render.PanelHeight
	}
	return render.PanelWidth
}

func (r *recorder) ScreenHeight() int {
	if r.orientation == render.Portrait || r.orientation == render.PortraitInverted {
		return render.PanelWidth
	}
	return render.PanelHeight
}

func (r *recorder) Orientation() render.Orientation      { return r.orientation }
func (r *recorder) SetOrientation(o render.Orientation) { r.orientation = o }

func (r *recorder) ClearScreen() { r.clears++ }

func (r *recorder) DrawPixel(x, y int, black bool) {
	r.calls = append(r.calls, drawCall{op: "pixel", x: x, y: y, black: black})
}

func (r *recorder) DrawLine(x1, y1, x2, y2, thickness int, black bool) {
	r.calls = append(r.calls, drawCall{op: "line", x: x1, y: y1, x2: x2, y2: y2, black: black})
}

func (r *recorder) DrawRect(x, y, width, height, thickness int, black bool) {
	r.calls = append(r.calls, drawCall{op: "rect", x: x, y: y, w: width, h: height, black: black})
}

func (r *recorder) FillRect(x, y, width, height int, black bool) {
	r.calls = append(r.calls, drawCall{op: "fill", x: x, y: y, w: width, h: height, black: black})
}

func (r *recorder) FillRectDither(x, y, width, height int, shade render.Shade) {
	r.calls = append(r.calls, drawCall{op: "dither", x: x, y: y, w: width, h: height, shade: shade})
}

func (r *recorder) DrawText(_ render.FontID, x, y int, text string, black bool, _ render.Style) {
	r.calls = append(r.calls, drawCall{op: "text", x: x, y: y, text: text, black: black})
}

func (r *recorder) DrawCenteredText(id render.FontID, y int, text string, black bool, style render.Style) {
	r.DrawText(id, (r.ScreenWidth()-r.TextWidth(id, text, style))/2, y, text, black, style)
}

func (r *recorder) DrawTextRotated90CW(_ render.FontID, x, y int, text string) {
	r.calls = append(r.calls, drawCall{op: "rotated", x: x, y: y, text: text, black: true})
}

func (r *recorder) TextWidth(_ render.FontID, text string, _ render.Style) int {
	return utf8.RuneCountInString(text) * fakeGlyphWidth
}

func (r *recorder) TextHeight(render.FontID) int { return fakeTextHeight }
func (r *recorder) LineHeight(render.FontID) int { return fakeLineHeight }

func (r *recorder) TruncatedText(id render.FontID, text string, maxWidth int, style render.Style) string {
	if r.TextWidth(id, text, style) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if r.TextWidth(id, candidate, style) <= maxWidth {
			return candidate
		}
	}
	return ""
}

func (r *recorder) DrawIcon(_ image.Image, x, y, width, height int) {
	r.calls = append(r.calls, drawCall{op: "icon", x: x, y: y, w: width, h: height})
}

func (r *recorder) DrawBitmap(_ image.Image, x, y, width, height int, _ float64) {
	r.calls = append(r.calls, drawCall{op: "bitmap", x: x, y: y, w: width, h: height})
}

func (r *recorder) StoreBuffer() bool {
	r.stored = true
	return true
}

func (r *recorder) RestoreBuffer() bool {
	if !r.stored {
		return false
	}
	r.restores++
	return true
}

func (r *recorder) DisplayBuffer(mode render.RefreshMode) {
	r.calls = append(r.calls, drawCall{op: "display", refresh: mode})
}

func (r *recorder) only(op string) []drawCall {
	var out []drawCall
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) reset() { r.calls = nil }
