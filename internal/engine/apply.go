package engine

import (
	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hashing"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// MakeMove plays the piece on from to to for the side to move. The checks run
// in order: a piece must stand on from, it must belong to the side to move, to
// must be one of its pseudo-legal destinations, and the move must not leave
// the mover's king in check. A rejected move leaves the game unchanged.
func (g *Game) MakeMove(from, to hex.Coord) error {
	fail := func(err error) error {
		return &errors.MoveError{Err: err, From: from.String(), To: to.String(), Ply: len(g.history) + 1}
	}

	p, ok := g.board.PieceAt(from)
	if !ok {
		return fail(errors.ErrNoPieceAtCoordinate)
	}
	if p.Colour != g.toMove {
		return fail(errors.ErrNotYourPiece)
	}
	if !g.board.CanMove(from, to) {
		return fail(errors.ErrInvalidMove)
	}
	next, err := g.board.WithMove(from, to)
	if err != nil {
		return fail(err)
	}
	if IsInCheck(next, g.toMove) {
		return fail(errors.ErrMoveWouldPutKingInCheck)
	}

	captured, took, err := g.board.MovePiece(from, to)
	if err != nil {
		return fail(err)
	}

	m := chess.Move{From: from, To: to, Piece: p, Number: g.MoveNumber()}
	if took {
		m.Captured = &captured
	}
	g.history = append(g.history, m)
	g.hash = hashing.UpdateZobrist(g.hash, from, to, p, m.Captured)
	g.positions.Add(g.hash)
	g.toMove = g.toMove.Opposite()
	g.updateState()

	g.logger.Debug("move played",
		"ply", len(g.history),
		"move", m.String(),
		"piece", p.String(),
		"capture", m.IsCapture(),
		"state", g.state.String())
	return nil
}

// UndoMove takes back the last move, restoring any captured piece.
func (g *Game) UndoMove() error {
	if len(g.history) == 0 {
		return &errors.MoveError{Err: errors.ErrNoMovesToUndo}
	}
	last := g.history[len(g.history)-1]

	if _, _, err := g.board.MovePiece(last.To, last.From); err != nil {
		return &errors.MoveError{Err: err, From: last.From.String(), To: last.To.String(), Ply: len(g.history)}
	}
	if last.Captured != nil {
		if err := g.board.Place(last.To, *last.Captured); err != nil {
			return &errors.MoveError{Err: err, From: last.From.String(), To: last.To.String(), Ply: len(g.history)}
		}
	}

	g.positions.Remove(g.hash)
	g.hash = hashing.UpdateZobrist(g.hash, last.From, last.To, last.Piece, last.Captured)
	g.history = g.history[:len(g.history)-1]
	g.toMove = g.toMove.Opposite()
	g.updateState()

	g.logger.Debug("move undone", "move", last.String(), "state", g.state.String())
	return nil
}

func (g *Game) updateState() {
	prev := g.state
	g.state = Evaluate(g.board, g.toMove)
	if g.state.IsTerminal() && !prev.IsTerminal() {
		result, _ := g.state.Result()
		g.logger.Info("game over", "variant", g.variant.Name, "result", result, "plies", len(g.history))
	}
}
