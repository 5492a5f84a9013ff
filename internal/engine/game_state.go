package engine

import (
	"fmt"

	"github.com/parallaxisjones/hex-chess/internal/chess"
)

// StateKind is the phase a game is in.
type StateKind int

const (
	Playing StateKind = iota
	Check
	Checkmate
	Stalemate
	// Draw is terminal but nothing in the engine reaches it yet.
	Draw
)

var stateNames = [...]string{"Playing", "Check", "Checkmate", "Stalemate", "Draw"}

// String returns the name of the state kind.
func (k StateKind) String() string {
	if k >= 0 && int(k) < len(stateNames) {
		return stateNames[k]
	}
	return "Unknown"
}

// State is the status of a game. For Check, Colour is the side in check; for
// Checkmate it is the winner. It is unused otherwise.
type State struct {
	Kind   StateKind
	Colour chess.Colour
}

// String returns e.g. "Playing", "Check(White)" or "Checkmate(Black)".
func (s State) String() string {
	switch s.Kind {
	case Check, Checkmate:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Colour)
	default:
		return s.Kind.String()
	}
}

// MarshalText encodes the state as its String form.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether the game is over.
func (s State) IsTerminal() bool {
	return s.Kind == Checkmate || s.Kind == Stalemate || s.Kind == Draw
}

// Result returns the human-readable outcome of a finished game.
func (s State) Result() (string, bool) {
	switch s.Kind {
	case Checkmate:
		return s.Colour.String() + " wins by checkmate", true
	case Stalemate:
		return "Draw by stalemate", true
	case Draw:
		return "Draw", true
	}
	return "", false
}

// Evaluate computes the state of the position for the side to move.
func Evaluate(board *chess.Board, toMove chess.Colour) State {
	inCheck := IsInCheck(board, toMove)
	canMove := HasLegalMoves(board, toMove)
	switch {
	case inCheck && !canMove:
		return State{Kind: Checkmate, Colour: toMove.Opposite()}
	case inCheck:
		return State{Kind: Check, Colour: toMove}
	case !canMove:
		return State{Kind: Stalemate}
	}
	return State{Kind: Playing}
}

// IsCheckmate returns true if colour is in check and has no legal move.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if colour is not in check and has no legal move.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	return !IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}
