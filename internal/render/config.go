package render

import "image/color"

// Panel geometry and ink colors.
var (
	// Ink and paper for a 1-bit panel.
	Ink   = color.Gray{Y: 0x00}
	Paper = color.Gray{Y: 0xFF}

	// Physical panel size. The panel is landscape; the UI draws in portrait by default.
	PanelWidth  = 800
	PanelHeight = 480
)
