package display

import (
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// FakeSink records flushed frames for test assertions.
type FakeSink struct {
	// Frames holds a copy of every frame that was drawn.
	Frames []*image1bit.VerticalLSB

	// DrawError, if set, will be returned by Draw.
	DrawError error
}

// NewFakeSink creates a FakeSink for testing.
func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

// Draw records a copy of src.
func (f *FakeSink) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if f.DrawError != nil {
		return f.DrawError
	}
	frame := image1bit.NewVerticalLSB(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			frame.Set(x, y, src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y))
		}
	}
	f.Frames = append(f.Frames, frame)
	return nil
}

// Last returns the most recent frame, or nil.
func (f *FakeSink) Last() *image1bit.VerticalLSB {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

// Reset clears recorded frames.
func (f *FakeSink) Reset() {
	f.Frames = nil
	f.DrawError = nil
}
