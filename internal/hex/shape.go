package hex

import (
	"fmt"
	"sort"
)

// ShapeKind distinguishes the supported board topologies.
type ShapeKind int

const (
	Regular   ShapeKind = iota // Regular hexagon of a given radius
	Small                      // Fixed 37-cell hexagon
	Irregular                  // Cell set supplied from outside
)

// SmallRadius is the radius of the 37-cell Small board.
const SmallRadius = 3

// String returns the name of the shape kind.
func (k ShapeKind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Small:
		return "small"
	case Irregular:
		return "irregular"
	default:
		return "unknown"
	}
}

// CellColour is the display colour of a cell. Hex boards use three colours so
// that no two adjacent cells share one.
type CellColour int

const (
	Light CellColour = iota
	Medium
	Dark
)

// String returns the name of the cell colour.
func (c CellColour) String() string {
	switch c {
	case Light:
		return "light"
	case Medium:
		return "medium"
	default:
		return "dark"
	}
}

// Shape describes the set of cells a board has.
type Shape struct {
	Kind   ShapeKind `json:"kind"`
	Radius int       `json:"radius,omitempty"`
	// Cells is only used by Irregular shapes.
	Cells []Coord `json:"cells,omitempty"`
}

// RegularShape returns a regular hexagon of the given radius.
func RegularShape(radius int) Shape {
	return Shape{Kind: Regular, Radius: radius}
}

// SmallShape returns the 37-cell board.
func SmallShape() Shape {
	return Shape{Kind: Small, Radius: SmallRadius}
}

// IrregularShape returns a shape made of exactly the given cells. Duplicates
// are dropped and the slice is copied.
func IrregularShape(cells ...Coord) Shape {
	seen := make(map[Coord]struct{}, len(cells))
	own := make([]Coord, 0, len(cells))
	for _, c := range cells {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		own = append(own, c)
	}
	sortCoords(own)
	return Shape{Kind: Irregular, Cells: own}
}

// String returns a short description such as "regular(5)".
func (s Shape) String() string {
	switch s.Kind {
	case Regular:
		return fmt.Sprintf("regular(%d)", s.Radius)
	case Irregular:
		return fmt.Sprintf("irregular(%d cells)", len(s.Cells))
	default:
		return s.Kind.String()
	}
}

// ValidCoords returns every cell of the shape ordered by q, then r.
// A Regular shape of radius n has 3n²+3n+1 cells; Small has 37; Irregular has
// whatever was supplied, which may be nothing.
func (s Shape) ValidCoords() []Coord {
	switch s.Kind {
	case Regular:
		return hexagon(s.Radius)
	case Small:
		return hexagon(SmallRadius)
	case Irregular:
		out := make([]Coord, len(s.Cells))
		copy(out, s.Cells)
		return out
	default:
		return nil
	}
}

// CellColour returns the display colour of c. Regular and Small boards use
// the three-colouring (q-r) mod 3, not (q+r+s) mod 3, which is zero on every
// cell. Irregular boards are uniformly Light.
func (s Shape) CellColour(c Coord) CellColour {
	if s.Kind == Irregular {
		return Light
	}
	return CellColour(((c.Q-c.R)%3 + 3) % 3)
}

// Center returns the centre cell. Every shape is centred on the origin.
func (s Shape) Center() Coord {
	return Coord{}
}

// hexagon enumerates the regular hexagon of the given radius.
func hexagon(radius int) []Coord {
	if radius < 0 {
		return nil
	}
	out := make([]Coord, 0, 3*radius*radius+3*radius+1)
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := Coord{Q: q, R: r}
			if c.InHexagon(radius) {
				out = append(out, c)
			}
		}
	}
	return out
}

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Q != cs[j].Q {
			return cs[i].Q < cs[j].Q
		}
		return cs[i].R < cs[j].R
	})
}
