package engine

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hex"
	"github.com/parallaxisjones/hex-chess/internal/testutil"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGame(t *testing.T, cfg variants.Config, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	g, err := NewGame(cfg, opts...)
	if err != nil {
		t.Fatalf("NewGame(%s): %v", cfg.Name, err)
	}
	return g
}

func TestNewGame(t *testing.T) {
	g := newGame(t, variants.Glinski())

	if g.ToMove() != chess.White {
		t.Errorf("ToMove() = %v, want White", g.ToMove())
	}
	if g.State() != (State{Kind: Playing}) {
		t.Errorf("State() = %v, want Playing", g.State())
	}
	if len(g.Pieces()) != 36 {
		t.Errorf("len(Pieces()) = %d, want 36", len(g.Pieces()))
	}
	if len(g.ValidCoords()) != 91 {
		t.Errorf("len(ValidCoords()) = %d, want 91", len(g.ValidCoords()))
	}
	if g.MoveNumber() != 1 || g.Plies() != 0 {
		t.Errorf("MoveNumber() = %d, Plies() = %d", g.MoveNumber(), g.Plies())
	}
	if _, ok := g.Result(); ok {
		t.Error("new game already has a result")
	}
	if g.RepetitionCount() != 1 {
		t.Errorf("RepetitionCount() = %d, want 1", g.RepetitionCount())
	}
}

func TestNewGameEveryPlayableVariant(t *testing.T) {
	for _, cfg := range variants.All() {
		g, err := NewGame(cfg, WithLogger(quietLogger()))
		if !cfg.Playable() {
			testutil.AssertErrorIs(t, err, errors.ErrUnsupportedVariant, cfg.Name)
			continue
		}
		if err != nil {
			t.Errorf("NewGame(%s): %v", cfg.Name, err)
			continue
		}
		if g.State().IsTerminal() {
			t.Errorf("%s starts in state %v", cfg.Name, g.State())
		}
		if len(g.AllLegalMoves()) == 0 {
			t.Errorf("%s: White has no opening moves", cfg.Name)
		}
	}
}

func TestMakeMoveErrors(t *testing.T) {
	cfg := testutil.Regular(t, 3, "K 0,2", "R 0,1", "r 0,-2", "k 3,-3")

	tests := []struct {
		name     string
		from, to hex.Coord
		want     error
	}{
		{"empty origin", hex.New(1, 1), hex.New(1, 0), errors.ErrNoPieceAtCoordinate},
		{"off-board origin", hex.New(9, 9), hex.New(0, 0), errors.ErrNoPieceAtCoordinate},
		{"opponent's piece", hex.New(0, -2), hex.New(0, -1), errors.ErrNotYourPiece},
		{"unreachable cell", hex.New(0, 1), hex.New(2, 0), errors.ErrInvalidMove},
		{"off-board destination", hex.New(0, 1), hex.New(0, 9), errors.ErrInvalidMove},
		{"own piece", hex.New(0, 2), hex.New(0, 1), errors.ErrInvalidMove},
		{"pinned piece", hex.New(0, 1), hex.New(1, 0), errors.ErrMoveWouldPutKingInCheck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, cfg)
			before := g.Snapshot()

			err := g.MakeMove(tt.from, tt.to)
			testutil.AssertErrorIs(t, err, tt.want)

			var me *errors.MoveError
			if !errors.As(err, &me) || me.Ply != 1 {
				t.Errorf("error %v is not a MoveError for ply 1", err)
			}
			if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
				t.Errorf("failed move changed the game (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMakeMoveRecordsHistory(t *testing.T) {
	g := newGame(t, variants.Glinski())

	moves := []struct{ from, to string }{
		{"f5", "f6"},
		{"e7", "e6"},
		{"g4", "g5"},
	}
	for _, m := range moves {
		if err := g.MakeMove(hex.MustCell(m.from), hex.MustCell(m.to)); err != nil {
			t.Fatalf("MakeMove(%s-%s): %v", m.from, m.to, err)
		}
	}

	h := g.History()
	if len(h) != 3 {
		t.Fatalf("len(History()) = %d, want 3", len(h))
	}
	numbers := []int{h[0].Number, h[1].Number, h[2].Number}
	testutil.AssertEqual(t, numbers, []int{1, 1, 2})
	if h[1].Piece != chess.B(chess.Pawn) {
		t.Errorf("second move piece = %v, want Black Pawn", h[1].Piece)
	}
	if g.ToMove() != chess.Black {
		t.Errorf("ToMove() = %v, want Black", g.ToMove())
	}

	h[0].Number = 99
	if g.History()[0].Number != 1 {
		t.Error("History() exposes internal state")
	}
}

func TestUndoMove(t *testing.T) {
	g := newGame(t, testutil.Regular(t, 2, "R 0,0", "n 0,-2", "K 2,0", "k -2,0"))
	before := g.Snapshot()

	if err := g.MakeMove(hex.New(0, 0), hex.New(0, -2)); err != nil {
		t.Fatal(err)
	}
	last := g.History()[0]
	if last.Captured == nil || *last.Captured != chess.B(chess.Knight) {
		t.Fatalf("Captured = %v, want Black Knight", last.Captured)
	}
	if g.PositionHash() == before.Hash {
		t.Error("hash did not change after a move")
	}

	if err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("undo did not restore the game (-want +got):\n%s", diff)
	}

	testutil.AssertErrorIs(t, g.UndoMove(), errors.ErrNoMovesToUndo)
}

func TestUndoAfterSeveralMoves(t *testing.T) {
	g := newGame(t, variants.GlinskiCapablanca())
	start := g.Snapshot()

	for i := 0; i < 6; i++ {
		moves := g.AllLegalMoves()
		if len(moves) == 0 {
			t.Fatalf("no legal moves at ply %d", i+1)
		}
		m := moves[(i*7)%len(moves)]
		if err := g.MakeMove(m.From, m.To); err != nil {
			t.Fatalf("MakeMove(%v): %v", m, err)
		}
	}
	for g.Plies() > 0 {
		if err := g.UndoMove(); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff(start, g.Snapshot()); diff != "" {
		t.Errorf("undoing every move did not restore the start (-want +got):\n%s", diff)
	}
}

func TestCheckmateScenario(t *testing.T) {
	specs := []string{"K 0,0"}
	for _, n := range hex.New(0, 0).Neighbors() {
		specs = append(specs, "r "+strings.Trim(n.String(), "()"))
	}
	g := newGame(t, testutil.Regular(t, 1, specs...))

	for _, n := range hex.New(0, 0).Neighbors() {
		testutil.AssertErrorIs(t, g.MakeMove(hex.New(0, 0), n), errors.ErrMoveWouldPutKingInCheck, "king to %v", n)
	}

	want := State{Kind: Checkmate, Colour: chess.Black}
	if g.State() != want {
		t.Errorf("State() = %v, want %v", g.State(), want)
	}
	if res, ok := g.Result(); !ok || res != "Black wins by checkmate" {
		t.Errorf("Result() = %q, %v", res, ok)
	}
}

func TestCheckmateByMove(t *testing.T) {
	var logs bytes.Buffer
	cfg := testutil.Regular(t, 1, "K 0,0", "r 1,0", "r 1,-1", "r 0,-1", "r -1,0", "r -1,1")
	g, err := NewGame(cfg, WithSideToMove(chess.Black), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	if err != nil {
		t.Fatal(err)
	}
	if g.State().Kind != Playing {
		t.Fatalf("State() = %v, want Playing", g.State())
	}

	if err := g.MakeMove(hex.New(-1, 1), hex.New(0, 1)); err != nil {
		t.Fatal(err)
	}
	if want := (State{Kind: Checkmate, Colour: chess.Black}); g.State() != want {
		t.Errorf("State() = %v, want %v", g.State(), want)
	}
	testutil.AssertContains(t, logs.String(), "game over")
	testutil.AssertContains(t, logs.String(), "Black wins by checkmate")

	if err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if g.State().Kind != Playing || g.ToMove() != chess.Black {
		t.Errorf("after undo State() = %v, ToMove() = %v", g.State(), g.ToMove())
	}
}

func TestStalemateScenario(t *testing.T) {
	g := newGame(t, testutil.Regular(t, 2, "K 2,0", "r -1,-1", "r -2,1", "r 1,-2"))

	if IsInCheck(g.Board(), chess.White) {
		t.Fatal("White should not be in check")
	}
	if g.State().Kind != Stalemate {
		t.Errorf("State() = %v, want Stalemate", g.State())
	}
	if res, _ := g.Result(); res != "Draw by stalemate" {
		t.Errorf("Result() = %q, want %q", res, "Draw by stalemate")
	}
	if len(g.AllLegalMoves()) != 0 {
		t.Errorf("AllLegalMoves() = %v, want none", g.AllLegalMoves())
	}
}

func TestCheckState(t *testing.T) {
	g := newGame(t, testutil.Regular(t, 3, "K 0,2", "R 1,-1", "k 0,-3"))
	if err := g.MakeMove(hex.New(1, -1), hex.New(0, -1)); err != nil {
		t.Fatal(err)
	}
	if want := (State{Kind: Check, Colour: chess.Black}); g.State() != want {
		t.Errorf("State() = %v, want %v", g.State(), want)
	}
	if g.State().String() != "Check(Black)" {
		t.Errorf("String() = %q", g.State().String())
	}

	// Black must answer the check.
	testutil.AssertErrorIs(t, g.MakeMove(hex.New(0, -3), hex.New(0, -2)), errors.ErrMoveWouldPutKingInCheck)
	if err := g.MakeMove(hex.New(0, -3), hex.New(1, -3)); err != nil {
		t.Errorf("escape rejected: %v", err)
	}
}

func TestPawnScenario(t *testing.T) {
	g := newGame(t, testutil.Regular(t, 2, "P 0,1", "n 1,0", "n -1,0", "N -1,1"))
	want := []hex.Coord{hex.New(-1, 0), hex.New(0, 0), hex.New(1, 0)}
	testutil.AssertCoords(t, g.ValidMoves(hex.New(0, 1)), want)
	testutil.AssertCoords(t, g.LegalMoves(hex.New(0, 1)), want)

	if err := g.MakeMove(hex.New(0, 1), hex.New(-1, 0)); err != nil {
		t.Fatalf("MakeMove(capture on (-1,0)): %v", err)
	}
	if p, ok := g.PieceAt(hex.New(-1, 0)); !ok || p != chess.W(chess.Pawn) {
		t.Errorf("PieceAt(-1,0) = %v, %v; want White Pawn", p, ok)
	}
}

func TestBlackPawnScenario(t *testing.T) {
	g := newGame(t, testutil.Regular(t, 2, "p 0,-1", "R 1,0", "R -1,0", "R 1,-1"), WithSideToMove(chess.Black))
	want := []hex.Coord{hex.New(-1, 0), hex.New(0, 0), hex.New(1, 0)}
	testutil.AssertCoords(t, g.LegalMoves(hex.New(0, -1)), want)
}

func TestRepetitionCount(t *testing.T) {
	g := newGame(t, testutil.Regular(t, 3, "K 0,3", "R 1,1", "k 0,-3", "r -1,-1"))
	shuffle := [][2]hex.Coord{
		{hex.New(1, 1), hex.New(1, 0)},
		{hex.New(-1, -1), hex.New(-1, 0)},
		{hex.New(1, 0), hex.New(1, 1)},
		{hex.New(-1, 0), hex.New(-1, -1)},
	}
	start := g.PositionHash()
	for _, m := range shuffle {
		if err := g.MakeMove(m[0], m[1]); err != nil {
			t.Fatalf("MakeMove(%v-%v): %v", m[0], m[1], err)
		}
	}
	if g.PositionHash() != start {
		t.Error("returning to the start position gave a different hash")
	}
	if g.RepetitionCount() != 2 {
		t.Errorf("RepetitionCount() = %d, want 2", g.RepetitionCount())
	}
	if g.State().IsTerminal() {
		t.Error("repetition must not end the game")
	}

	if err := g.UndoMove(); err != nil {
		t.Fatal(err)
	}
	if g.RepetitionCount() != 1 {
		t.Errorf("after undo RepetitionCount() = %d, want 1", g.RepetitionCount())
	}
}

func TestClone(t *testing.T) {
	g := newGame(t, variants.Glinski())
	cp := g.Clone()
	if err := cp.MakeMove(hex.MustCell("f5"), hex.MustCell("f6")); err != nil {
		t.Fatal(err)
	}
	if g.Plies() != 0 || g.ToMove() != chess.White {
		t.Error("moving in a clone changed the original")
	}
	if _, ok := g.PieceAt(hex.MustCell("f5")); !ok {
		t.Error("original lost its f5 pawn")
	}
}

func TestStateResult(t *testing.T) {
	tests := []struct {
		state State
		want  string
		ok    bool
	}{
		{State{Kind: Playing}, "", false},
		{State{Kind: Check, Colour: chess.White}, "", false},
		{State{Kind: Checkmate, Colour: chess.White}, "White wins by checkmate", true},
		{State{Kind: Stalemate}, "Draw by stalemate", true},
		{State{Kind: Draw}, "Draw", true},
	}
	for _, tt := range tests {
		got, ok := tt.state.Result()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%v.Result() = %q, %v; want %q, %v", tt.state, got, ok, tt.want, tt.ok)
		}
	}
}

func BenchmarkAllLegalMoves(b *testing.B) {
	g, err := NewGame(variants.Glinski(), WithLogger(quietLogger()))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.AllLegalMoves()
	}
}
