package display

import (
	"image"
	"testing"
)

func TestTextBounds(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want image.Rectangle
	}{
		{"single line", "lol", 4, image.Rect(0, 0, 84, 52)},
		{"size one", "Maksimka", 1, image.Rect(0, 0, 56, 13)},
		{"size two", "Artemka", 2, image.Rect(0, 0, 98, 26)},
		// 9 cells of 14px fit in 128, the rest wraps
		{"wrapped", "Hello world!", 2, image.Rect(0, 0, 126, 52)},
		{"newline", "ab\ncde", 1, image.Rect(0, 0, 21, 26)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCanvas()
			c.SetTextSize(tc.size)
			if got := c.TextBounds(tc.text, 0, 0); got != tc.want {
				t.Errorf("TextBounds(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestTextBoundsEmpty(t *testing.T) {
	c, _ := newTestCanvas()
	got := c.TextBounds("", 5, 6)
	if !got.Empty() || got.Min != image.Pt(5, 6) {
		t.Errorf("expected empty rectangle at (5,6), got %v", got)
	}
}

func TestTextBoundsDoesNotDraw(t *testing.T) {
	c, _ := newTestCanvas()
	c.TextBounds("Hello", 0, 0)
	if n := len(lit(c)); n != 0 {
		t.Errorf("TextBounds must not draw, %d pixels lit", n)
	}
}

func TestSetTextSizeMinimum(t *testing.T) {
	c, _ := newTestCanvas()
	c.SetTextSize(0)
	if got := c.TextBounds("x", 0, 0); got != image.Rect(0, 0, 7, 13) {
		t.Errorf("size 0 should behave like size 1, got %v", got)
	}
}

func TestPrintDrawsInsideCell(t *testing.T) {
	c, _ := newTestCanvas()
	c.SetTextSize(2)
	c.SetCursor(20, 10)
	c.Print("H")

	pts := lit(c)
	if len(pts) == 0 {
		t.Fatal("expected glyph pixels")
	}
	cell := image.Rect(20, 10, 34, 36)
	for _, p := range pts {
		if !p.In(cell) {
			t.Fatalf("pixel %v outside glyph cell %v", p, cell)
		}
	}
	if c.Cursor() != image.Pt(34, 10) {
		t.Errorf("expected cursor advanced to (34,10), got %v", c.Cursor())
	}
}

func TestPrintScalesGlyph(t *testing.T) {
	small, _ := newTestCanvas()
	small.Print("H")

	big, _ := newTestCanvas()
	big.SetTextSize(3)
	big.Print("H")

	if got, want := len(lit(big)), 9*len(lit(small)); got != want {
		t.Errorf("size 3 glyph should light 9x the pixels: got %d, want %d", got, want)
	}
}

func TestPrintTextColor(t *testing.T) {
	c, _ := newTestCanvas()
	c.FillRect(0, 0, 7, 13, White)
	c.SetTextColor(Black)
	c.Print("H")

	if n := len(lit(c)); n == 0 || n == 7*13 {
		t.Errorf("black glyph should punch out part of the cell, %d lit", n)
	}
}

func TestPrintln(t *testing.T) {
	c, _ := newTestCanvas()
	c.SetTextSize(2)
	c.SetCursor(15, 19)
	c.Println("Artemka")

	if c.Cursor() != image.Pt(0, 19+26) {
		t.Errorf("expected cursor at start of next line, got %v", c.Cursor())
	}
}

func TestPrintWraps(t *testing.T) {
	c, _ := newTestCanvas()
	c.SetTextSize(2)
	c.SetCursor(1, 6)
	c.Print("Hello world!")

	// "Hello wor" fills the first line, "ld!" ends on the second
	if c.Cursor() != image.Pt(3*14, 6+26) {
		t.Errorf("unexpected cursor after wrap: %v", c.Cursor())
	}
}

func TestPrintNoWrap(t *testing.T) {
	c, _ := newTestCanvas()
	c.SetTextWrap(false)
	c.SetCursor(120, 0)
	c.Print("ab")

	if c.Cursor() != image.Pt(134, 0) {
		t.Errorf("expected cursor past the edge, got %v", c.Cursor())
	}
	for _, p := range lit(c) {
		if p.Y >= 13 {
			t.Fatalf("unwrapped text drew on line two at %v", p)
		}
	}
}
