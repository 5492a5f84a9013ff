package hex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Coord
		want int
	}{
		{"same cell", New(2, -1), New(2, -1), 0},
		{"neighbour", New(0, 0), New(1, -1), 1},
		{"diagonal", New(0, 0), New(1, 1), 2},
		{"straight line", New(-3, 0), New(3, 0), 6},
		{"corner to corner", New(5, -5), New(-5, 5), 10},
		{"knight leap", New(0, 0), New(1, -3), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.DistanceTo(tt.a); got != tt.want {
				t.Errorf("DistanceTo is not symmetric: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	origin := New(3, -2)
	ns := origin.Neighbors()

	seen := make(map[Coord]bool)
	for i, n := range ns {
		if d := Distance(origin, n); d != 1 {
			t.Errorf("neighbour %d %v at distance %d, want 1", i, n, d)
		}
		seen[n] = true
	}
	if len(seen) != 6 {
		t.Errorf("Neighbors() gave %d distinct cells, want 6", len(seen))
	}

	want := [6]Coord{{4, -2}, {4, -3}, {3, -3}, {2, -2}, {2, -1}, {3, -1}}
	if diff := cmp.Diff(want, ns); diff != "" {
		t.Errorf("Neighbors() order mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagonalNeighbors(t *testing.T) {
	for _, d := range New(0, 0).DiagonalNeighbors() {
		if got := Distance(Coord{}, d); got != 2 {
			t.Errorf("diagonal %v at distance %d, want 2", d, got)
		}
	}
}

func TestInHexagon(t *testing.T) {
	for radius := 0; radius <= 6; radius++ {
		for q := -8; q <= 8; q++ {
			for r := -8; r <= 8; r++ {
				c := New(q, r)
				want := Distance(Coord{}, c) <= radius
				if got := c.InHexagon(radius); got != want {
					t.Fatalf("%v.InHexagon(%d) = %v, want %v", c, radius, got, want)
				}
			}
		}
	}
}

func TestCube(t *testing.T) {
	q, r, s := New(2, -5).Cube()
	if q+r+s != 0 {
		t.Errorf("Cube() = (%d,%d,%d), components do not sum to 0", q, r, s)
	}
}

func TestMirror(t *testing.T) {
	c := New(2, -4)
	m := c.Mirror()
	if m != New(2, 2) {
		t.Errorf("Mirror(%v) = %v, want (2,2)", c, m)
	}
	if m.Mirror() != c {
		t.Errorf("Mirror is not an involution for %v", c)
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name string
		a, b Coord
	}{
		{"single cell", New(1, 1), New(1, 1)},
		{"straight", New(0, 0), New(0, -4)},
		{"diagonal", New(0, 0), New(2, 2)},
		{"off-axis", New(-3, 1), New(2, -4)},
		{"long", New(-5, 5), New(4, -1)},
		{"knight", New(0, 0), New(1, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := Line(tt.a, tt.b)
			n := Distance(tt.a, tt.b)
			if len(line) != n+1 {
				t.Fatalf("len(Line) = %d, want %d", len(line), n+1)
			}
			if line[0] != tt.a {
				t.Errorf("Line starts at %v, want %v", line[0], tt.a)
			}
			if line[len(line)-1] != tt.b {
				t.Errorf("Line ends at %v, want %v", line[len(line)-1], tt.b)
			}
			for i := 1; i < len(line); i++ {
				if d := Distance(line[i-1], line[i]); d != 1 {
					t.Errorf("step %d: %v -> %v has distance %d", i, line[i-1], line[i], d)
				}
			}
		})
	}
}

func TestLineAlongAxis(t *testing.T) {
	want := []Coord{{0, 0}, {1, -1}, {2, -2}, {3, -3}}
	if diff := cmp.Diff(want, New(0, 0).LineTo(New(3, -3))); diff != "" {
		t.Errorf("LineTo mismatch (-want +got):\n%s", diff)
	}
}
