package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
)

// Display dimensions of the Pixoo64.
const (
	Width  = 64
	Height = 64
)

// Canvas is a 64x64 frame buffer with the drawing primitives the
// flight-strip layout needs.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a canvas filled with the given background color.
func NewCanvas(bg color.RGBA) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, Width, Height))}
	c.Fill(bg)
	return c
}

// Image returns the underlying frame buffer.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Fill paints the whole canvas one color.
func (c *Canvas) Fill(col color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

// SetPixel sets a single pixel, ignoring out-of-bounds coordinates.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	c.img.SetRGBA(x, y, col)
}

// FillRect fills a rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, col color.RGBA) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			c.SetPixel(px, py, col)
		}
	}
}

// DashedHLine draws a horizontal dashed line: dash pixels on, then
// period-dash pixels off, from x0 to x1 (exclusive).
func (c *Canvas) DashedHLine(y, x0, x1, dash, period int, col color.RGBA) {
	for x := x0; x < x1; x += period {
		c.FillRect(x, y, dash, 1, col)
	}
}

// DrawText renders s at (x, y) using the embedded 5x5 font. Characters
// without a glyph are uppercased first, then skipped if still unknown.
func (c *Canvas) DrawText(s string, x, y int, col color.RGBA) {
	for i, r := range strings.ToUpper(s) {
		glyph, ok := glyphs[r]
		if !ok {
			continue
		}
		gx := x + i*GlyphAdvance
		for row := 0; row < glyphHeight; row++ {
			bits := glyph[row]
			for colIdx := 0; colIdx < glyphWidth; colIdx++ {
				if bits&(1<<(glyphWidth-1-colIdx)) != 0 {
					c.SetPixel(gx+colIdx, y+row, col)
				}
			}
		}
	}
}

// DrawImage composites src with its top-left corner at (x, y).
func (c *Canvas) DrawImage(src image.Image, x, y int) {
	b := src.Bounds()
	target := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.img, target, src, b.Min, draw.Over)
}
