package render

import "image/color"

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Palette
var (
	RgbBlack  = RGB{0, 0, 0}
	RgbWhite  = RGB{255, 255, 255}
	RgbRed    = RGB{255, 0, 0}
	RgbGreen  = RGB{0, 255, 0}
	RgbBlue   = RGB{0, 0, 255}
	RgbYellow = RGB{255, 255, 0}
	RgbGray   = RGB{128, 128, 128}
)

// Semantic colors
var (
	RgbBackground = RgbBlack
	RgbTarget     = RgbBlue
	RgbCursor     = RgbWhite
	RgbTrail      = RgbWhite
	RgbEndMarker  = RgbRed
	RgbAssist     = RgbWhite
	RgbFlicker    = RgbYellow
	RgbPointer    = RgbGray
	RgbText       = RgbWhite
	RgbWarning    = RgbRed
)

// RGBA converts to the image/color model
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
