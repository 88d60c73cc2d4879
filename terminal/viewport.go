package terminal

import (
	"math"

	"github.com/lixenwraith/reachlab/parameter"
	"github.com/lixenwraith/reachlab/vmath"
)

// Viewport maps the pixel playing field onto terminal cells
// Cells are CellAspect times taller than wide; the field is scaled to fit and centered
type Viewport struct {
	FieldWidth, FieldHeight float64
	Cols, Rows              int

	// CellWidth and CellHeight are the pixel extents of one cell
	CellWidth, CellHeight float64

	// OffsetX and OffsetY are the cell coordinates of the field origin
	OffsetX, OffsetY int
}

// NewViewport fits a fieldWidth×fieldHeight field into cols×rows cells
func NewViewport(fieldWidth, fieldHeight float64, cols, rows int) Viewport {
	cols = max(cols, 1)
	rows = max(rows, 1)
	cw := math.Max(fieldWidth/float64(cols), fieldHeight/(float64(rows)*parameter.CellAspect))
	ch := cw * parameter.CellAspect

	usedCols := int(math.Ceil(fieldWidth / cw))
	usedRows := int(math.Ceil(fieldHeight / ch))
	return Viewport{
		FieldWidth:  fieldWidth,
		FieldHeight: fieldHeight,
		Cols:        cols,
		Rows:        rows,
		CellWidth:   cw,
		CellHeight:  ch,
		OffsetX:     max(0, (cols-usedCols)/2),
		OffsetY:     max(0, (rows-usedRows)/2),
	}
}

// ToCell returns the cell containing field point p
func (v Viewport) ToCell(p vmath.Point) (x, y int) {
	x = v.OffsetX + int(math.Floor(p.X/v.CellWidth))
	y = v.OffsetY + int(math.Floor(p.Y/v.CellHeight))
	return x, y
}

// ToField returns the field point at the center of cell (x, y)
func (v Viewport) ToField(x, y int) vmath.Point {
	return vmath.Pt(
		(float64(x-v.OffsetX)+0.5)*v.CellWidth,
		(float64(y-v.OffsetY)+0.5)*v.CellHeight,
	)
}

// InBounds reports whether cell (x, y) is on screen
func (v Viewport) InBounds(x, y int) bool {
	return x >= 0 && x < v.Cols && y >= 0 && y < v.Rows
}

// CellRange returns the clamped cell rectangle covering a field-space box
func (v Viewport) CellRange(minP, maxP vmath.Point) (x0, y0, x1, y1 int) {
	x0, y0 = v.ToCell(minP)
	x1, y1 = v.ToCell(maxP)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, v.Cols-1), min(y1, v.Rows-1)
	return x0, y0, x1, y1
}
