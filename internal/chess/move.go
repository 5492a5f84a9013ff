package chess

import (
	"fmt"

	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// Move is a played move as recorded in a game's history.
type Move struct {
	From  hex.Coord `json:"from"`
	To    hex.Coord `json:"to"`
	Piece Piece     `json:"piece"`

	// Captured is the piece taken by the move, nil when nothing was taken.
	Captured *Piece `json:"captured,omitempty"`

	// Full-move number; White's and Black's moves share one.
	Number int `json:"number"`
}

// IsCapture reports whether the move took a piece.
func (m Move) IsCapture() bool {
	return m.Captured != nil
}

// String returns the move in axial form, e.g. "(0,1)-(0,0)" or "(0,1)x(1,0)".
func (m Move) String() string {
	return m.From.String() + m.separator() + m.To.String()
}

// Notation returns the move in cell names, e.g. "f5-f6". It reports false when
// either cell has no name.
func (m Move) Notation() (string, bool) {
	from, to := hex.CellName(m.From), hex.CellName(m.To)
	if from == "" || to == "" {
		return "", false
	}
	return from + m.separator() + to, true
}

func (m Move) separator() string {
	if m.IsCapture() {
		return "x"
	}
	return "-"
}

// Describe returns e.g. "1. White Pawn (0,1)-(0,0)".
func (m Move) Describe() string {
	return fmt.Sprintf("%d. %s %s", m.Number, m.Piece, m)
}
