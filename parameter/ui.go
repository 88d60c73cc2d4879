package parameter

// Playing Field (screen pixels)
const (
	// ScreenWidth and ScreenHeight are the full-screen field dimensions
	ScreenWidth  = 1680
	ScreenHeight = 1050

	// TestModeMargin shrinks the windowed test-mode field on each axis
	TestModeMargin = 200
)

// Terminal Viewport
const (
	// CellAspect is the height/width ratio of a terminal cell
	CellAspect = 2.0

	// MinCols and MinRows are the smallest terminal the field can be mapped onto
	MinCols = 60
	MinRows = 20
)

// HUD Layout (screen pixels, top-left text anchors)
const (
	HUDMargin       = 10
	HUDAttemptsY    = 40
	HUDScoreY       = 40
	HUDScoreOffsetX = 100
	HUDLineHeight   = 30

	HUDTextSize  = 36
	HUDScoreSize = 52

	MoveFasterText = "MOVE FASTER!"
)
