package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Rasterize paints commands onto a width×height image
func Rasterize(cmds []Command, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for _, c := range cmds {
		switch c.Kind {
		case CmdClear:
			draw.Draw(img, img.Bounds(), &image.Uniform{C: c.Color.RGBA()}, image.Point{}, draw.Src)
		case CmdCircle:
			rasterCircle(img, c)
		case CmdText:
			rasterText(img, c)
		}
	}
	return img
}

func rasterCircle(img *image.RGBA, c Command) {
	col := c.Color.RGBA()
	half := c.Width / 2
	if c.Width > 0 && half < 0.5 {
		half = 0.5
	}
	outer := c.Radius + half

	b := img.Bounds()
	x0 := max(b.Min.X, int(math.Floor(c.At.X-outer)))
	x1 := min(b.Max.X-1, int(math.Ceil(c.At.X+outer)))
	y0 := max(b.Min.Y, int(math.Floor(c.At.Y-outer)))
	y1 := min(b.Max.Y-1, int(math.Ceil(c.At.Y+outer)))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-c.At.X, float64(y)+0.5-c.At.Y)
			inside := d <= c.Radius
			if c.Width > 0 {
				inside = math.Abs(d-c.Radius) <= half
			}
			if inside {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

func rasterText(img *image.RGBA, c Command) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.Color.RGBA()),
		Face: face,
	}
	x, y := c.At.X, c.At.Y
	metrics := face.Metrics()
	if c.Align == AlignCenter {
		x -= float64(d.MeasureString(c.Text).Round()) / 2
		y -= float64(metrics.Height.Round()) / 2
	}
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(math.Round(x))),
		Y: fixed.I(int(math.Round(y))) + metrics.Ascent,
	}
	d.DrawString(c.Text)
}

// WritePNG rasterizes commands and saves them to path
func WritePNG(path string, cmds []Command, width, height int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create screenshot directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot: %w", err)
	}
	if err := png.Encode(f, Rasterize(cmds, width, height)); err != nil {
		f.Close()
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return f.Close()
}
