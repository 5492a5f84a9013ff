package chess

import "github.com/parallaxisjones/hex-chess/internal/hex"

// Occupancy is the view of a position that move generation needs.
type Occupancy interface {
	// Contains reports whether c is a cell of the board.
	Contains(c hex.Coord) bool
	// PieceAt returns the piece on c, if any.
	PieceAt(c hex.Coord) (Piece, bool)
}

// KnightLeaps are the twelve knight offsets: six short leaps at distance 2
// followed by six long leaps at distance 3. Each offset's negation is also a
// leap, so knight attacks are symmetric.
var KnightLeaps = [12]hex.Coord{
	{Q: 2, R: -1}, {Q: 1, R: -2}, {Q: -1, R: -1}, {Q: -2, R: 1}, {Q: -1, R: 2}, {Q: 1, R: 1},
	{Q: 3, R: -2}, {Q: 2, R: -3}, {Q: -2, R: -1}, {Q: -3, R: 2}, {Q: -2, R: 3}, {Q: 2, R: 1},
}

// PawnForward returns the direction a pawn of the given colour moves in.
// White moves towards decreasing r, Black towards increasing r.
func PawnForward(c Colour) hex.Coord {
	if c == White {
		return hex.Coord{Q: 0, R: -1}
	}
	return hex.Coord{Q: 0, R: 1}
}

// PawnCaptures returns the two forward capture directions for a pawn. Black's
// are White's negated.
func PawnCaptures(c Colour) [2]hex.Coord {
	if c == White {
		return [2]hex.Coord{{Q: -1, R: -1}, {Q: 1, R: -1}}
	}
	return [2]hex.Coord{{Q: 1, R: 1}, {Q: -1, R: 1}}
}

// Destinations returns the cells a piece standing on from can reach, given the
// occupancy of the board. Sliders stop on the first occupied cell and include
// it; pawns need an empty cell to step forward and an occupied one to capture.
// Whether an occupied destination belongs to the mover is not checked here.
func Destinations(p Piece, from hex.Coord, occ Occupancy) []hex.Coord {
	switch p.Kind {
	case King:
		return steps(from, hex.Directions[:], occ)
	case Rook:
		return slides(from, hex.Directions[:], occ)
	case Bishop:
		return slides(from, hex.Diagonals[:], occ)
	case Queen:
		return append(slides(from, hex.Directions[:], occ), slides(from, hex.Diagonals[:], occ)...)
	case Knight:
		return steps(from, KnightLeaps[:], occ)
	case Chancellor:
		return union(slides(from, hex.Directions[:], occ), steps(from, KnightLeaps[:], occ))
	case Archbishop:
		return union(slides(from, hex.Diagonals[:], occ), steps(from, KnightLeaps[:], occ))
	case Pawn:
		return pawnMoves(p.Colour, from, occ)
	}
	return nil
}

// union appends the cells of b missing from a. The short knight leaps are the
// first cells of the diagonal rays.
func union(a, b []hex.Coord) []hex.Coord {
	seen := make(map[hex.Coord]bool, len(a))
	for _, c := range a {
		seen[c] = true
	}
	for _, c := range b {
		if !seen[c] {
			seen[c] = true
			a = append(a, c)
		}
	}
	return a
}

// steps returns from+d for each offset that lands on the board.
func steps(from hex.Coord, offsets []hex.Coord, occ Occupancy) []hex.Coord {
	out := make([]hex.Coord, 0, len(offsets))
	for _, d := range offsets {
		to := from.Add(d)
		if occ.Contains(to) {
			out = append(out, to)
		}
	}
	return out
}

// slides walks each ray until it leaves the board or hits a piece.
func slides(from hex.Coord, dirs []hex.Coord, occ Occupancy) []hex.Coord {
	var out []hex.Coord
	for _, d := range dirs {
		for to := from.Add(d); occ.Contains(to); to = to.Add(d) {
			out = append(out, to)
			if _, occupied := occ.PieceAt(to); occupied {
				break
			}
		}
	}
	return out
}

func pawnMoves(colour Colour, from hex.Coord, occ Occupancy) []hex.Coord {
	var out []hex.Coord
	fwd := from.Add(PawnForward(colour))
	if occ.Contains(fwd) {
		if _, occupied := occ.PieceAt(fwd); !occupied {
			out = append(out, fwd)
		}
	}
	for _, d := range PawnCaptures(colour) {
		to := from.Add(d)
		if !occ.Contains(to) {
			continue
		}
		if _, occupied := occ.PieceAt(to); occupied {
			out = append(out, to)
		}
	}
	return out
}
