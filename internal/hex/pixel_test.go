package hex

import (
	"math"
	"testing"
)

func TestToPixel(t *testing.T) {
	tests := []struct {
		c    Coord
		x, y float64
	}{
		{New(0, 0), 0, 0},
		{New(1, 0), 1.5, math.Sqrt(3) / 2},
		{New(0, 1), 0, math.Sqrt(3)},
		{New(0, -1), 0, -math.Sqrt(3)},
	}

	for _, tt := range tests {
		x, y := tt.c.ToPixel()
		if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
			t.Errorf("%v.ToPixel() = (%f, %f), want (%f, %f)", tt.c, x, y, tt.x, tt.y)
		}
	}
}

func TestPixelRoundTrip(t *testing.T) {
	for q := -50; q <= 50; q++ {
		for r := -50; r <= 50; r++ {
			c := New(q, r)
			if got := FromPixel(c.ToPixel()); got != c {
				t.Fatalf("FromPixel(%v.ToPixel()) = %v", c, got)
			}
		}
	}
}

func TestFromPixelInsideHex(t *testing.T) {
	c := New(2, -1)
	x, y := c.ToPixel()
	// Points well inside the unit hex map back to it.
	for _, off := range [][2]float64{{0.4, 0}, {-0.4, 0}, {0, 0.4}, {0, -0.4}, {0.3, 0.3}} {
		if got := FromPixel(x+off[0], y+off[1]); got != c {
			t.Errorf("FromPixel(%f, %f) = %v, want %v", x+off[0], y+off[1], got, c)
		}
	}
}
