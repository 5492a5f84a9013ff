package hex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Gliński notation covers only the 91-cell board (a regular hexagon of radius
// 5). Files run a..l without j, left to right; f is the central file (q=0).
// Rank 1 is the bottom cell of each file and file q has 11-|q| ranks.
const (
	NotationRadius = 5
	files          = "abcdefghikl"
)

// FileRankToAxial converts a Gliński cell name to axial coordinates. It
// reports false for an unknown file (including 'j'), a rank outside 1..11, or
// a rank the file does not reach (rank 11 exists only on file 'f').
func FileRankToAxial(file rune, rank int) (Coord, bool) {
	idx := strings.IndexRune(files, unicode.ToLower(file))
	if idx < 0 {
		return Coord{}, false
	}
	q := idx - NotationRadius
	if rank < 1 || rank > 2*NotationRadius+1-abs(q) {
		return Coord{}, false
	}
	return Coord{Q: q, R: bottomRank(q) - (rank - 1)}, true
}

// AxialToFileRank is the inverse of FileRankToAxial. It reports false for a
// cell outside the 91-cell board.
func AxialToFileRank(c Coord) (rune, int, bool) {
	if !c.InHexagon(NotationRadius) {
		return 0, 0, false
	}
	file := rune(files[c.Q+NotationRadius])
	return file, bottomRank(c.Q) - c.R + 1, true
}

// bottomRank returns the r of rank 1 on file q.
func bottomRank(q int) int {
	if q < 0 {
		return NotationRadius
	}
	return NotationRadius - q
}

// ParseCell parses a cell name such as "f5" or "F11".
func ParseCell(s string) (Coord, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coord{}, fmt.Errorf("cell %q: too short", s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coord{}, fmt.Errorf("cell %q: bad rank", s)
	}
	c, ok := FileRankToAxial(rune(s[0]), rank)
	if !ok {
		return Coord{}, fmt.Errorf("cell %q: not on the board", s)
	}
	return c, nil
}

// MustCell is ParseCell for fixed tables; it panics on a bad name.
func MustCell(s string) Coord {
	c, err := ParseCell(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CellName returns the Gliński name of c, or "" when c is off the 91-cell board.
func CellName(c Coord) string {
	file, rank, ok := AxialToFileRank(c)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%c%d", file, rank)
}
