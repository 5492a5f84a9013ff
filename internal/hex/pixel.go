package hex

import "math"

var sqrt3 = math.Sqrt(3)

// ToPixel projects c onto the plane for a flat-top layout with unit hex size
// (centre to corner = 1), origin at (0,0), y growing downwards:
//
//	x = 3/2 * q
//	y = sqrt(3)/2 * q + sqrt(3) * r
//
// Decreasing r therefore moves up the screen.
func (c Coord) ToPixel() (x, y float64) {
	x = 1.5 * float64(c.Q)
	y = sqrt3/2*float64(c.Q) + sqrt3*float64(c.R)
	return x, y
}

// FromPixel is the inverse of ToPixel:
//
//	q = 2/3 * x
//	r = -1/3 * x + sqrt(3)/3 * y
//
// followed by cube rounding, so any point inside a hex maps to that hex and
// FromPixel(c.ToPixel()) == c.
func FromPixel(x, y float64) Coord {
	qf := 2.0 / 3.0 * x
	rf := -1.0/3.0*x + sqrt3/3.0*y
	return cubeRound(qf, rf, -qf-rf)
}
