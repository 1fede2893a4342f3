package render

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
)

const ellipsis = "..."

// Truncate shortens text so that it measures at most maxWidth pixels in face,
// appending an ellipsis when anything was cut. Grapheme clusters are never split.
// When not even the ellipsis fits, the result is empty.
func Truncate(face font.Face, text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if font.MeasureString(face, text).Ceil() <= maxWidth {
		return text
	}

	budget := maxWidth - font.MeasureString(face, ellipsis).Ceil()
	if budget < 0 {
		return ""
	}

	best := 0
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		_, end := graphemes.Positions()
		if font.MeasureString(face, text[:end]).Ceil() > budget {
			break
		}
		best = end
	}
	return strings.TrimRight(text[:best], " ") + ellipsis
}
