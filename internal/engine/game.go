// Package engine implements the hex chess rules: check detection, legal move
// filtering and the game state machine.
package engine

import (
	"log/slog"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hashing"
	"github.com/parallaxisjones/hex-chess/internal/hex"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

// Game is one game of hex chess. It is not safe for concurrent use; give each
// goroutine its own Game.
type Game struct {
	variant variants.Config
	board   *chess.Board
	toMove  chess.Colour
	state   State
	history []chess.Move

	hash      uint64
	positions *hashing.PositionCounter

	logger *slog.Logger
}

// NewGame sets up the starting position of a variant. It fails with
// ErrUnsupportedVariant when the variant has no board layout.
func NewGame(cfg variants.Config, opts ...Option) (*Game, error) {
	if !cfg.Playable() {
		return nil, errors.Wrapf(errors.ErrUnsupportedVariant, "variant %q has no board layout", cfg.Name)
	}

	g := &Game{
		variant:   cfg.Clone(),
		toMove:    chess.White,
		positions: hashing.NewPositionCounter(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.board = g.variant.CreateBoard(g.logger)
	g.hash = hashing.Zobrist(g.board, g.toMove)
	g.positions.Add(g.hash)
	g.state = Evaluate(g.board, g.toMove)

	g.logger.Debug("game created",
		"variant", g.variant.Name,
		"pieces", g.board.Len(),
		"state", g.state.String())
	return g, nil
}

// Variant returns the config the game was created from.
func (g *Game) Variant() variants.Config {
	return g.variant.Clone()
}

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board {
	return g.board.Clone()
}

// ValidCoords returns the cells of the board.
func (g *Game) ValidCoords() []hex.Coord {
	return g.board.Coords()
}

// CellColour returns the display colour of c.
func (g *Game) CellColour(c hex.Coord) (hex.CellColour, bool) {
	return g.board.CellColour(c)
}

// PieceAt returns the piece on c, if any.
func (g *Game) PieceAt(c hex.Coord) (chess.Piece, bool) {
	return g.board.PieceAt(c)
}

// Pieces returns every piece in board order.
func (g *Game) Pieces() []chess.Placement {
	return g.board.Placements()
}

// ValidMoves returns the pseudo-legal destinations of the piece on c.
func (g *Game) ValidMoves(c hex.Coord) []hex.Coord {
	return g.board.ValidMoves(c)
}

// LegalMoves returns the destinations of the piece on c that keep its king safe.
func (g *Game) LegalMoves(c hex.Coord) []hex.Coord {
	return LegalMoves(g.board, c)
}

// AllLegalMoves returns every legal move of the side to move, in board order.
func (g *Game) AllLegalMoves() []chess.Move {
	var out []chess.Move
	number := g.MoveNumber()
	for _, pl := range g.board.PiecesOf(g.toMove) {
		for _, to := range LegalMoves(g.board, pl.Coord) {
			m := chess.Move{From: pl.Coord, To: to, Piece: pl.Piece, Number: number}
			if captured, ok := g.board.PieceAt(to); ok {
				m.Captured = &captured
			}
			out = append(out, m)
		}
	}
	return out
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	return g.toMove
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Result returns the outcome text once the game is over.
func (g *Game) Result() (string, bool) {
	return g.state.Result()
}

// History returns a copy of the moves played so far, oldest first.
func (g *Game) History() []chess.Move {
	out := make([]chess.Move, len(g.history))
	copy(out, g.history)
	return out
}

// LastMove returns the most recent move, if any.
func (g *Game) LastMove() (chess.Move, bool) {
	if len(g.history) == 0 {
		return chess.Move{}, false
	}
	return g.history[len(g.history)-1], true
}

// Plies returns the number of half-moves played.
func (g *Game) Plies() int {
	return len(g.history)
}

// MoveNumber returns the full-move number of the next move.
func (g *Game) MoveNumber() int {
	return len(g.history)/2 + 1
}

// PositionHash returns the Zobrist hash of the current position.
func (g *Game) PositionHash() uint64 {
	return g.hash
}

// RepetitionCount returns how many times the current position has occurred,
// counting this one. Repetition does not end the game.
func (g *Game) RepetitionCount() int {
	return g.positions.Count(g.hash)
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	cp := *g
	cp.variant = g.variant.Clone()
	cp.board = g.board.Clone()
	cp.history = g.History()
	cp.positions = g.positions.Clone()
	return &cp
}

// Snapshot is a copy of a game's observable state.
type Snapshot struct {
	Variant   string            `json:"variant"`
	ToMove    chess.Colour      `json:"to_move"`
	State     State             `json:"state"`
	Result    string            `json:"result,omitempty"`
	Pieces    []chess.Placement `json:"pieces"`
	History   []chess.Move      `json:"history"`
	Hash      uint64            `json:"hash"`
	Repeated  int               `json:"repetitions"`
	MoveCount int               `json:"move_number"`
}

// Snapshot captures the current state of the game.
func (g *Game) Snapshot() Snapshot {
	result, _ := g.Result()
	return Snapshot{
		Variant:   g.variant.Name,
		ToMove:    g.toMove,
		State:     g.state,
		Result:    result,
		Pieces:    g.board.Placements(),
		History:   g.History(),
		Hash:      g.hash,
		Repeated:  g.RepetitionCount(),
		MoveCount: g.MoveNumber(),
	}
}
