package render

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// Panel density used to convert point sizes into pixels.
const fontDPI = 150

var fontSizes = map[FontID]float64{
	FontUI10:  10,
	FontUI12:  12,
	FontSmall: 7,
}

type faceKey struct {
	id    FontID
	style Style
}

// Fonts holds the parsed faces for every FontID and Style.
type Fonts struct {
	faces map[faceKey]font.Face
}

// LoadFonts parses the embedded Go fonts. Regular faces go through opentype and
// bold faces through freetype; any failure falls back to basicfont.
func LoadFonts(logger logging.Logger) *Fonts {
	logger = logging.OrNop(logger)
	fonts := &Fonts{faces: make(map[faceKey]font.Face)}

	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		logger.Errorf("fonts", "regular font parse failed, using basicfont: %v", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		logger.Errorf("fonts", "bold font parse failed, using basicfont: %v", err)
	}

	for id, size := range fontSizes {
		fonts.faces[faceKey{id, Regular}] = basicfont.Face7x13
		fonts.faces[faceKey{id, Bold}] = basicfont.Face7x13

		if regular != nil {
			face, ferr := opentype.NewFace(regular, &opentype.FaceOptions{Size: size, DPI: fontDPI, Hinting: font.HintingFull})
			if ferr != nil {
				logger.Errorf("fonts", "regular face %.0fpt failed, using basicfont: %v", size, ferr)
			} else {
				fonts.faces[faceKey{id, Regular}] = face
			}
		}
		if bold != nil {
			fonts.faces[faceKey{id, Bold}] = truetype.NewFace(bold, &truetype.Options{Size: size, DPI: fontDPI, Hinting: font.HintingFull})
		}
	}
	logger.Infof("fonts", "loaded %d faces", len(fonts.faces))
	return fonts
}

// Face returns the face for id and style, never nil.
func (f *Fonts) Face(id FontID, style Style) font.Face {
	if f != nil {
		if face, ok := f.faces[faceKey{id, style}]; ok {
			return face
		}
		if face, ok := f.faces[faceKey{id, Regular}]; ok {
			return face
		}
	}
	return basicfont.Face7x13
}
