package display

import (
	"image"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// face is the built-in bitmap font. Every glyph occupies a fixed 7×13 cell
// that is scaled by the text size.
var face = basicfont.Face7x13

// SetTextSize sets the integer glyph scale. Values below 1 are treated as 1.
func (c *Canvas) SetTextSize(size int) {
	if size < 1 {
		size = 1
	}
	c.textSize = size
}

// SetTextColor sets the color used by Print and Println.
func (c *Canvas) SetTextColor(col image1bit.Bit) {
	c.textColor = col
}

// SetTextWrap controls whether text continues on the next line when a
// glyph would cross the right edge. Wrapping is on by default.
func (c *Canvas) SetTextWrap(wrap bool) {
	c.wrap = wrap
}

// SetCursor moves the text cursor to (x, y), the top-left of the next glyph.
func (c *Canvas) SetCursor(x, y int) {
	c.cursor = image.Pt(x, y)
}

// Cursor returns the text cursor.
func (c *Canvas) Cursor() image.Point {
	return c.cursor
}

// TextBounds returns the rectangle s would cover if printed from (x, y)
// with the current text size and wrapping. An empty string yields an empty
// rectangle at (x, y).
func (c *Canvas) TextBounds(s string, x, y int) image.Rectangle {
	cw, ch := c.cell()
	r := image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x, y)}
	first := true
	c.layout(s, image.Pt(x, y), func(_ rune, at image.Point) {
		cell := image.Rect(at.X, at.Y, at.X+cw, at.Y+ch)
		if first {
			r = cell
			first = false
			return
		}
		r = r.Union(cell)
	})
	return r
}

// Print draws s at the cursor and advances it.
func (c *Canvas) Print(s string) {
	c.cursor = c.layout(s, c.cursor, c.drawChar)
}

// Println draws s followed by a newline.
func (c *Canvas) Println(s string) {
	c.Print(s + "\n")
}

func (c *Canvas) cell() (int, int) {
	return face.Advance * c.textSize, face.Height * c.textSize
}

// layout walks s from start and calls fn with the top-left corner of every
// printable rune. It returns the cursor position after the last rune.
func (c *Canvas) layout(s string, start image.Point, fn func(rune, image.Point)) image.Point {
	cw, ch := c.cell()
	p := start
	for _, r := range s {
		switch r {
		case '\n':
			p.X = 0
			p.Y += ch
			continue
		case '\r':
			continue
		}
		if c.wrap && p.X+cw > c.Width() {
			p.X = 0
			p.Y += ch
		}
		fn(r, p)
		p.X += cw
	}
	return p
}

func (c *Canvas) drawChar(r rune, at image.Point) {
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, face.Ascent), r)
	if !ok {
		return
	}
	size := c.textSize
	for gy := dr.Min.Y; gy < dr.Max.Y; gy++ {
		for gx := dr.Min.X; gx < dr.Max.X; gx++ {
			_, _, _, a := mask.At(maskp.X+gx-dr.Min.X, maskp.Y+gy-dr.Min.Y).RGBA()
			if a < 0x8000 {
				continue
			}
			c.FillRect(at.X+gx*size, at.Y+gy*size, size, size, c.textColor)
		}
	}
}
