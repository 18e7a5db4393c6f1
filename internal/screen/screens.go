package screen

import "periph.io/x/devices/v3/ssd1306/image1bit"

const (
	white = image1bit.On
	black = image1bit.Off
)

// The pictures, named after what they show.
var (
	HelloWorld = centeredText("hello", "Hello world!", 2)
	Lol        = centeredText("lol", "lol", 4)
	Maksimka   = centeredText("maksimka", "Maksimka", 2)
	Artemka    = centeredText("artemka", "Artemka", 2)

	Ship     = Screen{Name: "ship", Draw: drawShip}
	Dinosaur = Screen{Name: "dinosaur", Draw: drawDinosaur}
)

// centeredText prints text in the middle of the surface. The bounds are
// measured from the origin, so wrapped text is centered as a block.
func centeredText(name, text string, size int) Screen {
	return Screen{
		Name: name,
		Draw: func(s Surface) {
			s.SetTextSize(size)
			s.SetTextColor(white)
			b := s.TextBounds(text, 0, 0)
			s.SetCursor((s.Width()-b.Dx())/2, (s.Height()-b.Dy())/2)
			s.Println(text)
		},
	}
}

func drawShip(s Surface) {
	cx, cy := s.Width()/2, s.Height()/2

	// Hull outline
	s.DrawLine(cx-25, cy+5, cx+25, cy+5, white)
	s.DrawLine(cx-25, cy+5, cx-15, cy+15, white)
	s.DrawLine(cx+25, cy+5, cx+15, cy+15, white)
	s.DrawLine(cx-15, cy+15, cx+15, cy+15, white)

	// Hull fill, narrowing towards the keel
	for y := cy + 6; y < cy+15; y++ {
		w := 20 - (y-cy-6)*2
		s.DrawLine(cx-w/2, y, cx+w/2, y, white)
	}

	// Masts
	s.DrawLine(cx-5, cy-15, cx-5, cy+5, white)
	s.DrawLine(cx+5, cy-10, cx+5, cy+5, white)

	// Sails
	s.FillTriangle(cx-5, cy-15, cx-20, cy-10, cx-5, cy-5, white)
	s.FillTriangle(cx+5, cy-10, cx+18, cy-8, cx+5, cy-2, white)

	// Flag
	s.FillRect(cx-5, cy-20, 8, 5, white)
}

func drawDinosaur(s Surface) {
	cx, cy := s.Width()/2, s.Height()/2

	// Body and head
	s.FillRect(cx-15, cy-5, 25, 15, white)
	s.FillRect(cx-20, cy-10, 15, 10, white)

	// Tail
	s.FillTriangle(cx+10, cy-5, cx+20, cy-8, cx+10, cy+5, white)

	// Legs
	s.FillRect(cx-10, cy+10, 4, 8, white)
	s.FillRect(cx+2, cy+10, 4, 8, white)

	// Eye with a lit pupil
	s.FillCircle(cx-15, cy-7, 2, black)
	s.DrawPixel(cx-15, cy-7, white)

	// Mouth
	s.DrawLine(cx-20, cy-2, cx-17, cy-2, black)

	// Back spikes
	s.DrawTriangle(cx-8, cy-5, cx-5, cy-10, cx-2, cy-5, white)
	s.DrawTriangle(cx+2, cy-5, cx+5, cy-8, cx+8, cy-5, white)

	// Front paws
	s.FillRect(cx-8, cy+5, 3, 6, white)
	s.FillRect(cx+2, cy+5, 3, 6, white)
}
