package chess

import (
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// Placement is a piece on a cell.
type Placement struct {
	Coord hex.Coord `json:"coord"`
	Piece Piece     `json:"piece"`
}

// Board holds the cells of a board shape and the pieces standing on them.
// Every piece sits on a cell of the shape.
type Board struct {
	shape   hex.Shape
	coords  []hex.Coord
	legal   map[hex.Coord]struct{}
	colours map[hex.Coord]hex.CellColour
	pieces  map[hex.Coord]Piece
}

// NewBoard creates an empty board of the given shape.
func NewBoard(shape hex.Shape) *Board {
	coords := shape.ValidCoords()
	b := &Board{
		shape:   shape,
		coords:  coords,
		legal:   make(map[hex.Coord]struct{}, len(coords)),
		colours: make(map[hex.Coord]hex.CellColour, len(coords)),
		pieces:  make(map[hex.Coord]Piece),
	}
	for _, c := range coords {
		b.legal[c] = struct{}{}
		b.colours[c] = shape.CellColour(c)
	}
	return b
}

// Shape returns the board's shape.
func (b *Board) Shape() hex.Shape {
	return b.shape
}

// Coords returns the board's cells in a stable order.
func (b *Board) Coords() []hex.Coord {
	out := make([]hex.Coord, len(b.coords))
	copy(out, b.coords)
	return out
}

// Contains reports whether c is a cell of the board.
func (b *Board) Contains(c hex.Coord) bool {
	_, ok := b.legal[c]
	return ok
}

// CellColour returns the display colour of c.
func (b *Board) CellColour(c hex.Coord) (hex.CellColour, bool) {
	col, ok := b.colours[c]
	return col, ok
}

// PieceAt returns the piece on c, if any.
func (b *Board) PieceAt(c hex.Coord) (Piece, bool) {
	p, ok := b.pieces[c]
	return p, ok
}

// Len returns the number of pieces on the board.
func (b *Board) Len() int {
	return len(b.pieces)
}

// Pieces returns a copy of the piece map.
func (b *Board) Pieces() map[hex.Coord]Piece {
	out := make(map[hex.Coord]Piece, len(b.pieces))
	for c, p := range b.pieces {
		out[c] = p
	}
	return out
}

// Placements returns every piece in board order.
func (b *Board) Placements() []Placement {
	out := make([]Placement, 0, len(b.pieces))
	for _, c := range b.coords {
		if p, ok := b.pieces[c]; ok {
			out = append(out, Placement{Coord: c, Piece: p})
		}
	}
	return out
}

// PiecesOf returns the pieces of one colour in board order.
func (b *Board) PiecesOf(colour Colour) []Placement {
	var out []Placement
	for _, c := range b.coords {
		if p, ok := b.pieces[c]; ok && p.Colour == colour {
			out = append(out, Placement{Coord: c, Piece: p})
		}
	}
	return out
}

// Place puts p on c, replacing any piece already there.
func (b *Board) Place(c hex.Coord, p Piece) error {
	if !b.Contains(c) {
		return &errors.BoardError{Op: "place", Coord: c.String(), Err: errors.ErrInvalidCoordinate}
	}
	b.pieces[c] = p
	return nil
}

// Remove takes the piece off c and returns it.
func (b *Board) Remove(c hex.Coord) (Piece, bool) {
	p, ok := b.pieces[c]
	if ok {
		delete(b.pieces, c)
	}
	return p, ok
}

// MovePiece moves the piece on from to to. It returns the piece that stood on
// to, if any. The board is unchanged when an error is returned.
func (b *Board) MovePiece(from, to hex.Coord) (captured Piece, ok bool, err error) {
	if !b.Contains(from) {
		return Piece{}, false, &errors.BoardError{Op: "move", Coord: from.String(), Err: errors.ErrInvalidCoordinate}
	}
	if !b.Contains(to) {
		return Piece{}, false, &errors.BoardError{Op: "move", Coord: to.String(), Err: errors.ErrInvalidCoordinate}
	}
	p, present := b.pieces[from]
	if !present {
		return Piece{}, false, &errors.BoardError{Op: "move", Coord: from.String(), Err: errors.ErrNoPieceAtCoordinate}
	}
	captured, ok = b.pieces[to]
	delete(b.pieces, from)
	b.pieces[to] = p
	return captured, ok, nil
}

// ValidMoves returns the pseudo-legal destinations of the piece on c: cells it
// can reach that are not held by a piece of its own colour. Whether the move
// exposes the mover's king is not considered. An empty cell has no moves.
func (b *Board) ValidMoves(c hex.Coord) []hex.Coord {
	p, ok := b.pieces[c]
	if !ok {
		return nil
	}
	reach := Destinations(p, c, b)
	out := reach[:0]
	for _, to := range reach {
		if !b.Contains(to) {
			continue
		}
		if q, occupied := b.pieces[to]; occupied && q.Colour == p.Colour {
			continue
		}
		out = append(out, to)
	}
	return out
}

// CanMove reports whether to is among ValidMoves(from).
func (b *Board) CanMove(from, to hex.Coord) bool {
	for _, c := range b.ValidMoves(from) {
		if c == to {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the board. The cell tables never change after
// NewBoard and are shared.
func (b *Board) Clone() *Board {
	nb := &Board{
		shape:   b.shape,
		coords:  b.coords,
		legal:   b.legal,
		colours: b.colours,
		pieces:  make(map[hex.Coord]Piece, len(b.pieces)),
	}
	for c, p := range b.pieces {
		nb.pieces[c] = p
	}
	return nb
}

// WithMove returns a copy of the board with the move applied, leaving b
// untouched.
func (b *Board) WithMove(from, to hex.Coord) (*Board, error) {
	nb := b.Clone()
	if _, _, err := nb.MovePiece(from, to); err != nil {
		return nil, err
	}
	return nb, nil
}

// King returns the cell of the first king of the given colour in board order.
func (b *Board) King(colour Colour) (hex.Coord, bool) {
	for _, c := range b.coords {
		if p, ok := b.pieces[c]; ok && p.Kind == King && p.Colour == colour {
			return c, true
		}
	}
	return hex.Coord{}, false
}
