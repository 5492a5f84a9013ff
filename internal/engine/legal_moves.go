package engine

import (
	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// LegalMoves returns the pseudo-legal destinations of the piece on from that
// do not leave its own king in check.
func LegalMoves(board *chess.Board, from hex.Coord) []hex.Coord {
	p, ok := board.PieceAt(from)
	if !ok {
		return nil
	}
	var out []hex.Coord
	for _, to := range board.ValidMoves(from) {
		if keepsKingSafe(board, from, to, p.Colour) {
			out = append(out, to)
		}
	}
	return out
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for _, pl := range board.PiecesOf(colour) {
		for _, to := range board.ValidMoves(pl.Coord) {
			if keepsKingSafe(board, pl.Coord, to, colour) {
				return true
			}
		}
	}
	return false
}

// keepsKingSafe plays the move on a copy of the board and reports whether
// colour's king is out of check afterwards.
func keepsKingSafe(board *chess.Board, from, to hex.Coord, colour chess.Colour) bool {
	next, err := board.WithMove(from, to)
	if err != nil {
		return false
	}
	return !IsInCheck(next, colour)
}
