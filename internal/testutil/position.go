package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/hex"
	"github.com/parallaxisjones/hex-chess/internal/parser"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

// Position builds a variant config holding only the given pieces. Each spec
// is a piece symbol and a cell, e.g. "K 0,0" for a White King on (0,0) or
// "r f7" for a Black Rook on f7.
func Position(shape hex.Shape, specs ...string) (variants.Config, error) {
	placements := make(map[hex.Coord]chess.Piece, len(specs))
	for _, spec := range specs {
		fields := strings.Fields(spec)
		if len(fields) != 2 || len(fields[0]) != 1 {
			return variants.Config{}, fmt.Errorf("piece spec %q: want \"<symbol> <cell>\"", spec)
		}
		p, ok := chess.ParseSymbol(fields[0][0])
		if !ok {
			return variants.Config{}, fmt.Errorf("piece spec %q: unknown piece", spec)
		}
		c, err := parser.ParseCoord(fields[1])
		if err != nil {
			return variants.Config{}, fmt.Errorf("piece spec %q: %w", spec, err)
		}
		if _, dup := placements[c]; dup {
			return variants.Config{}, fmt.Errorf("piece spec %q: cell already taken", spec)
		}
		placements[c] = p
	}
	return variants.Config{
		Name:        "Test Position",
		Slug:        "test",
		Description: fmt.Sprintf("%d pieces on %s", len(placements), shape),
		Shape:       shape,
		Placements:  placements,
	}, nil
}

// MustPosition is Position that fails the test on a bad spec.
func MustPosition(t *testing.T, shape hex.Shape, specs ...string) variants.Config {
	t.Helper()
	cfg, err := Position(shape, specs...)
	if err != nil {
		t.Fatalf("bad test position: %v", err)
	}
	return cfg
}

// Regular is MustPosition on a regular hexagon of the given radius.
func Regular(t *testing.T, radius int, specs ...string) variants.Config {
	t.Helper()
	return MustPosition(t, hex.RegularShape(radius), specs...)
}

// Coords parses a list of cells, failing the test on a bad one.
func Coords(t *testing.T, cells ...string) []hex.Coord {
	t.Helper()
	out := make([]hex.Coord, 0, len(cells))
	for _, s := range cells {
		c, err := parser.ParseCoord(s)
		if err != nil {
			t.Fatalf("bad test cell %q: %v", s, err)
		}
		out = append(out, c)
	}
	return out
}
