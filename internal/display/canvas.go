// Package display provides a 1-bit drawing surface for small monochrome
// OLED panels and the sinks a finished frame can be flushed to.
package display

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
)

// Colors of a monochrome panel.
const (
	White = image1bit.On
	Black = image1bit.Off
)

// Default panel geometry and I²C address.
const (
	Width   = 128
	Height  = 64
	I2CAddr = 0x3C
)

// Sink receives finished frames. *ssd1306.Dev satisfies it.
type Sink interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Canvas is an off-screen 1-bit framebuffer with Adafruit-GFX style
// primitives. Nothing reaches the panel until Flush.
//
// Coordinates outside the canvas are clipped silently.
type Canvas struct {
	img  *image1bit.VerticalLSB
	sink Sink

	cursor    image.Point
	textSize  int
	textColor image1bit.Bit
	wrap      bool
}

// NewCanvas returns a cleared w×h canvas that flushes to sink.
func NewCanvas(w, h int, sink Sink) *Canvas {
	return &Canvas{
		img:       image1bit.NewVerticalLSB(image.Rect(0, 0, w, h)),
		sink:      sink,
		textSize:  1,
		textColor: White,
		wrap:      true,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Image returns the backing framebuffer.
func (c *Canvas) Image() *image1bit.VerticalLSB { return c.img }

// Clear turns every pixel off and homes the text cursor.
func (c *Canvas) Clear() {
	for i := range c.img.Pix {
		c.img.Pix[i] = 0
	}
	c.cursor = image.Point{}
}

// Flush sends the whole frame to the sink.
func (c *Canvas) Flush() error {
	return c.sink.Draw(c.img.Bounds(), c.img, image.Point{})
}

// PixelAt reports the color of a pixel. Off-canvas pixels are Black.
func (c *Canvas) PixelAt(x, y int) image1bit.Bit {
	if !image.Pt(x, y).In(c.img.Rect) {
		return Black
	}
	return c.img.BitAt(x, y)
}

// DrawPixel sets one pixel.
func (c *Canvas) DrawPixel(x, y int, col image1bit.Bit) {
	if !image.Pt(x, y).In(c.img.Rect) {
		return
	}
	c.img.SetBit(x, y, col)
}

// Size, SetPixel and Display make the canvas a drivers.Displayer so the
// shape primitives can be drawn by tinydraw.
var _ drivers.Displayer = (*Canvas)(nil)

// Size returns the canvas size.
func (c *Canvas) Size() (int16, int16) {
	return int16(c.Width()), int16(c.Height())
}

// SetPixel sets one pixel. Any non-black color lights it.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.DrawPixel(int(x), int(y), col.R|col.G|col.B != 0)
}

// Display is Flush.
func (c *Canvas) Display() error {
	return c.Flush()
}

func rgba(col image1bit.Bit) color.RGBA {
	if col == White {
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return color.RGBA{A: 0xFF}
}

// DrawLine draws a line with Bresenham's algorithm, both ends inclusive.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col image1bit.Bit) {
	tinydraw.Line(c, int16(x0), int16(y0), int16(x1), int16(y1), rgba(col))
}

// FillRect fills a w×h rectangle whose top-left corner is (x, y). Empty
// rectangles draw nothing.
func (c *Canvas) FillRect(x, y, w, h int, col image1bit.Bit) {
	if w <= 0 || h <= 0 {
		return
	}
	tinydraw.FilledRectangle(c, int16(x), int16(y), int16(w), int16(h), rgba(col))
}

// FillCircle fills a circle of radius r centered on (x0, y0).
func (c *Canvas) FillCircle(x0, y0, r int, col image1bit.Bit) {
	tinydraw.FilledCircle(c, int16(x0), int16(y0), int16(r), rgba(col))
}

// DrawTriangle outlines a triangle.
func (c *Canvas) DrawTriangle(x0, y0, x1, y1, x2, y2 int, col image1bit.Bit) {
	tinydraw.Triangle(c, int16(x0), int16(y0), int16(x1), int16(y1), int16(x2), int16(y2), rgba(col))
}

// FillTriangle fills a triangle one scanline at a time.
func (c *Canvas) FillTriangle(x0, y0, x1, y1, x2, y2 int, col image1bit.Bit) {
	tinydraw.FilledTriangle(c, int16(x0), int16(y0), int16(x1), int16(y1), int16(x2), int16(y2), rgba(col))
}
