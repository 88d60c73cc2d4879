package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/reachlab/render"
	"github.com/lixenwraith/reachlab/vmath"
)

const fillRune = ' '

// Surface draws render commands onto the tcell screen
type Surface struct {
	term *Terminal
}

// Present paints one frame and shows it
func (s *Surface) Present(cmds []render.Command) error {
	vp := s.term.Viewport()
	screen := s.term.screen

	for _, c := range cmds {
		switch c.Kind {
		case render.CmdClear:
			st := tcell.StyleDefault.Background(toColor(c.Color))
			for y := 0; y < vp.Rows; y++ {
				for x := 0; x < vp.Cols; x++ {
					screen.SetContent(x, y, fillRune, nil, st)
				}
			}
		case render.CmdCircle:
			drawCircle(screen, vp, c)
		case render.CmdText:
			drawText(screen, vp, c)
		}
	}
	screen.Show()
	return nil
}

func toColor(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawCircle samples each cell center; shapes smaller than a cell still paint the cell holding their center
func drawCircle(screen tcell.Screen, vp Viewport, c render.Command) {
	st := tcell.StyleDefault.Background(toColor(c.Color))
	half := math.Max(c.Width/2, vp.CellWidth/2)
	outer := c.Radius
	if c.Width > 0 {
		outer += half
	}

	x0, y0, x1, y1 := vp.CellRange(c.At.Sub(vmath.Pt(outer, outer)), c.At.Add(vmath.Pt(outer, outer)))
	painted := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := vmath.Distance(vp.ToField(x, y), c.At)
			inside := d <= c.Radius
			if c.Width > 0 {
				inside = math.Abs(d-c.Radius) <= half
			}
			if inside {
				screen.SetContent(x, y, fillRune, nil, st)
				painted = true
			}
		}
	}

	if !painted && c.Width == 0 {
		if x, y := vp.ToCell(c.At); vp.InBounds(x, y) {
			screen.SetContent(x, y, fillRune, nil, st)
		}
	}
}

// drawText keeps the background already under each glyph
func drawText(screen tcell.Screen, vp Viewport, c render.Command) {
	x, y := vp.ToCell(c.At)
	runes := []rune(c.Text)
	if c.Align == render.AlignCenter {
		x -= len(runes) / 2
	}
	fg := toColor(c.Color)
	for i, r := range runes {
		cx := x + i
		if !vp.InBounds(cx, y) {
			continue
		}
		_, _, under, _ := screen.GetContent(cx, y)
		_, bg, _ := under.Decompose()
		screen.SetContent(cx, y, r, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
	}
}

var _ render.Surface = (*Surface)(nil)
