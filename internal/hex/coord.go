// Package hex provides axial hexagonal coordinates, board shapes and the
// geometry queries the rules engine is built on.
//
// A cell is addressed by axial (q, r); the derived cube form (q, r, s) with
// s = -q-r is used wherever a symmetric formula is simpler.
package hex

import (
	"fmt"
	"math"
)

// Coord is an axial hex coordinate. It is a comparable value type and may be
// used directly as a map key.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// New returns the coordinate (q, r).
func New(q, r int) Coord {
	return Coord{Q: q, R: r}
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Cube returns the cube form (q, r, s); q+r+s is always 0.
func (c Coord) Cube() (q, r, s int) {
	return c.Q, c.R, c.S()
}

// Add returns c + d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Q: c.Q + d.Q, R: c.R + d.R}
}

// Sub returns c - d.
func (c Coord) Sub(d Coord) Coord {
	return Coord{Q: c.Q - d.Q, R: c.R - d.R}
}

// Scale returns c multiplied by k.
func (c Coord) Scale(k int) Coord {
	return Coord{Q: c.Q * k, R: c.R * k}
}

// Mirror reflects c across the board's horizontal centre line by swapping
// r and s. It maps White's ranks onto Black's on a regular hexagon.
func (c Coord) Mirror() Coord {
	return Coord{Q: c.Q, R: c.S()}
}

// String returns "(q,r)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Directions are the six edge-adjacent offsets: E, NE, NW, W, SW, SE.
// The order is fixed; move generation and tests rely on it.
var Directions = [6]Coord{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// Diagonals are the six across-corner offsets (hex distance 2).
var Diagonals = [6]Coord{
	{2, -1}, {1, -2}, {-1, -1},
	{-2, 1}, {-1, 2}, {1, 1},
}

// Neighbors returns the six edge-adjacent cells in Directions order.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// DiagonalNeighbors returns the six across-corner cells in Diagonals order.
func (c Coord) DiagonalNeighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Diagonals {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the hex distance between a and b.
func Distance(a, b Coord) int {
	d := a.Sub(b)
	return (abs(d.Q) + abs(d.R) + abs(d.S())) / 2
}

// DistanceTo returns the hex distance from c to other.
func (c Coord) DistanceTo(other Coord) int {
	return Distance(c, other)
}

// InHexagon reports whether c lies in the regular hexagon of the given radius
// centred on the origin.
func (c Coord) InHexagon(radius int) bool {
	q, r, s := c.Cube()
	return abs(q) <= radius && abs(r) <= radius && abs(s) <= radius
}

// lineNudge breaks ties when a lerp lands exactly on a cell edge, so that
// every step rounds the same way.
const lineNudge = 1e-6

// Line returns the cells from a to b inclusive, one per unit of distance.
// Consecutive cells are adjacent; Line(a, a) is [a].
func Line(a, b Coord) []Coord {
	n := Distance(a, b)
	if n == 0 {
		return []Coord{a}
	}

	aq, ar, as := float64(a.Q)+lineNudge, float64(a.R)+lineNudge, float64(a.S())-2*lineNudge
	bq, br, bs := float64(b.Q)+lineNudge, float64(b.R)+lineNudge, float64(b.S())-2*lineNudge

	out := make([]Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, cubeRound(aq+(bq-aq)*t, ar+(br-ar)*t, as+(bs-as)*t))
	}
	return out
}

// LineTo returns Line(c, other).
func (c Coord) LineTo(other Coord) []Coord {
	return Line(c, other)
}

// cubeRound rounds fractional cube coordinates to the nearest cell, fixing the
// component with the largest rounding error so that q+r+s stays 0.
func cubeRound(qf, rf, sf float64) Coord {
	q := math.Round(qf)
	r := math.Round(rf)
	s := math.Round(sf)

	dq := math.Abs(q - qf)
	dr := math.Abs(r - rf)
	ds := math.Abs(s - sf)

	if dq > dr && dq > ds {
		q = -r - s
	} else if dr > ds {
		r = -q - s
	}
	return Coord{Q: int(q), R: int(r)}
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
