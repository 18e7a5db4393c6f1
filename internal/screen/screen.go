// Package screen defines the fixed pictures shown on the panel and the
// binding from button channel to picture.
package screen

import (
	"fmt"
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Surface is the drawing capability a screen needs: GFX-style primitives
// plus Flush to push the frame to the panel.
type Surface interface {
	Width() int
	Height() int

	Clear()
	SetTextSize(size int)
	SetTextColor(col image1bit.Bit)
	TextBounds(s string, x, y int) image.Rectangle
	SetCursor(x, y int)
	Println(s string)

	DrawPixel(x, y int, col image1bit.Bit)
	DrawLine(x0, y0, x1, y1 int, col image1bit.Bit)
	FillRect(x, y, w, h int, col image1bit.Bit)
	FillCircle(x0, y0, r int, col image1bit.Bit)
	DrawTriangle(x0, y0, x1, y1, x2, y2 int, col image1bit.Bit)
	FillTriangle(x0, y0, x1, y1, x2, y2 int, col image1bit.Bit)

	Flush() error
}

// Screen is one fixed picture.
type Screen struct {
	Name string
	Draw func(s Surface)
}

// Render clears the surface, draws scr and flushes the frame.
func Render(s Surface, scr Screen) error {
	s.Clear()
	scr.Draw(s)
	if err := s.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", scr.Name, err)
	}
	return nil
}

// Default is the button binding, indexed by channel. Adding a button means
// adding a line here and a pin.
var Default = []Screen{
	HelloWorld,
	Ship,
	Lol,
	Dinosaur,
	Maksimka,
	Artemka,
}

// Names returns the screen names of a binding in channel order.
func Names(screens []Screen) []string {
	names := make([]string, len(screens))
	for i, scr := range screens {
		names[i] = scr.Name
	}
	return names
}
