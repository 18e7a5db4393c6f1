package display

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/fogleman/gg"
)

// PNGSink writes every frame to a PNG file, scaled up so single pixels are
// visible. It stands in for the panel on development machines.
type PNGSink struct {
	dir   string
	scale int
	n     int
}

// NewPNGSink writes frames into dir. Scale values below 1 are treated as 1.
func NewPNGSink(dir string, scale int) *PNGSink {
	if scale < 1 {
		scale = 1
	}
	return &PNGSink{dir: dir, scale: scale}
}

// Draw renders lit pixels white on black and saves the frame as both
// frame-NNNN.png and latest.png.
func (p *PNGSink) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	s := float64(p.scale)
	dc := gg.NewContext(r.Dx()*p.scale, r.Dy()*p.scale)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)

	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if cr, _, _, _ := src.At(sp.X+x, sp.Y+y).RGBA(); cr < 0x8000 {
				continue
			}
			dc.DrawRectangle(float64(x)*s, float64(y)*s, s, s)
		}
	}
	dc.Fill()

	name := filepath.Join(p.dir, fmt.Sprintf("frame-%04d.png", p.n))
	if err := dc.SavePNG(name); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	p.n++
	if err := dc.SavePNG(filepath.Join(p.dir, "latest.png")); err != nil {
		return fmt.Errorf("save latest.png: %w", err)
	}
	return nil
}

// Frames returns the number of frames written.
func (p *PNGSink) Frames() int {
	return p.n
}
