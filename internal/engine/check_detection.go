package engine

import (
	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// IsInCheck returns true if the given colour's king is attacked. A side
// without a king is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := board.King(colour)
	if !ok {
		return false
	}
	return IsAttacked(board, king, colour.Opposite())
}

// IsAttacked returns true if any piece of colour by has c among its
// pseudo-legal destinations.
func IsAttacked(board *chess.Board, c hex.Coord, by chess.Colour) bool {
	for _, pl := range board.PiecesOf(by) {
		for _, to := range board.ValidMoves(pl.Coord) {
			if to == c {
				return true
			}
		}
	}
	return false
}

// Checkers returns the cells of the pieces giving check to colour's king.
func Checkers(board *chess.Board, colour chess.Colour) []hex.Coord {
	king, ok := board.King(colour)
	if !ok {
		return nil
	}
	var out []hex.Coord
	for _, pl := range board.PiecesOf(colour.Opposite()) {
		for _, to := range board.ValidMoves(pl.Coord) {
			if to == king {
				out = append(out, pl.Coord)
				break
			}
		}
	}
	return out
}
