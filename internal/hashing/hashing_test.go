package hashing

import (
	"testing"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

func testBoard(t *testing.T) *chess.Board {
	t.Helper()
	b := chess.NewBoard(hex.RegularShape(3))
	for c, p := range map[hex.Coord]chess.Piece{
		hex.New(0, 2):  chess.W(chess.King),
		hex.New(0, -2): chess.B(chess.King),
		hex.New(1, 1):  chess.W(chess.Rook),
		hex.New(-1, 0): chess.B(chess.Knight),
	} {
		if err := b.Place(c, p); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func TestZobristHashConsistency(t *testing.T) {
	b1 := testBoard(t)
	b2 := testBoard(t)
	if Zobrist(b1, chess.White) != Zobrist(b2, chess.White) {
		t.Error("identical positions produced different hashes")
	}
}

func TestZobristHashDifferentPositions(t *testing.T) {
	b1 := testBoard(t)
	b2 := testBoard(t)
	if _, _, err := b2.MovePiece(hex.New(1, 1), hex.New(1, 0)); err != nil {
		t.Fatal(err)
	}
	if Zobrist(b1, chess.White) == Zobrist(b2, chess.White) {
		t.Error("different positions produced the same hash")
	}
}

func TestSideToMoveAffectsHash(t *testing.T) {
	b := testBoard(t)
	if Zobrist(b, chess.White) == Zobrist(b, chess.Black) {
		t.Error("side to move does not affect the hash")
	}
}

func TestPieceKeysDistinct(t *testing.T) {
	seen := make(map[uint64]bool)
	for _, c := range hex.RegularShape(5).ValidCoords() {
		for k := chess.King; k <= chess.Archbishop; k++ {
			for _, col := range []chess.Colour{chess.White, chess.Black} {
				key := PieceKey(c, chess.Piece{Kind: k, Colour: col})
				if seen[key] {
					t.Fatalf("key collision at %v %v %v", c, col, k)
				}
				seen[key] = true
			}
		}
	}
}

func TestUpdateZobrist(t *testing.T) {
	tests := []struct {
		name     string
		from, to hex.Coord
		victim   bool
	}{
		{"quiet move", hex.New(1, 1), hex.New(1, 0), false},
		{"capture", hex.New(1, 1), hex.New(-1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBoard(t)
			if tt.victim {
				if err := b.Place(hex.New(-1, 1), chess.B(chess.Pawn)); err != nil {
					t.Fatal(err)
				}
			}
			before := Zobrist(b, chess.White)
			p, _ := b.PieceAt(tt.from)

			captured, ok, err := b.MovePiece(tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			var cp *chess.Piece
			if ok {
				cp = &captured
			}

			got := UpdateZobrist(before, tt.from, tt.to, p, cp)
			if want := Zobrist(b, chess.Black); got != want {
				t.Errorf("UpdateZobrist() = %x, want %x", got, want)
			}
		})
	}
}

func TestWeakHashConsistency(t *testing.T) {
	if WeakHash(testBoard(t)) != WeakHash(testBoard(t)) {
		t.Error("WeakHash is not deterministic")
	}
	if WeakHash(chess.NewBoard(hex.RegularShape(3))) != 0 {
		t.Error("WeakHash of an empty board should be 0")
	}
}

func TestPositionCounter(t *testing.T) {
	pc := NewPositionCounter()
	if got := pc.Add(42); got != 1 {
		t.Errorf("Add() = %d, want 1", got)
	}
	if got := pc.Add(42); got != 2 {
		t.Errorf("Add() = %d, want 2", got)
	}
	pc.Add(7)

	clone := pc.Clone()
	pc.Remove(42)
	if pc.Count(42) != 1 {
		t.Errorf("Count(42) = %d, want 1", pc.Count(42))
	}
	if clone.Count(42) != 2 {
		t.Errorf("clone Count(42) = %d, want 2", clone.Count(42))
	}

	pc.Remove(42)
	pc.Remove(42)
	if pc.Count(42) != 0 || pc.Len() != 1 {
		t.Errorf("after removals Count(42) = %d, Len() = %d", pc.Count(42), pc.Len())
	}
}

func TestDuplicateDetector(t *testing.T) {
	d := NewDuplicateDetector(false, 0)
	sig := GameSignature{Variant: "glinski", Hash: 1, WeakHash: 2, Plies: 10}

	if d.CheckAndAdd(sig) {
		t.Error("first game reported as duplicate")
	}
	if !d.CheckAndAdd(sig) {
		t.Error("second identical game not reported as duplicate")
	}

	other := sig
	other.Plies = 12
	if !d.CheckAndAdd(other) {
		t.Error("ply count should not matter without exact matching")
	}

	other.Variant = "mccooey"
	if d.CheckAndAdd(other) {
		t.Error("game from another variant reported as duplicate")
	}

	if d.DuplicateCount() != 2 || d.UniqueCount() != 2 {
		t.Errorf("DuplicateCount() = %d, UniqueCount() = %d; want 2, 2", d.DuplicateCount(), d.UniqueCount())
	}
}

func TestDuplicateDetectorExactMatch(t *testing.T) {
	d := NewDuplicateDetector(true, 0)
	sig := GameSignature{Hash: 1, WeakHash: 2, Plies: 10}
	d.CheckAndAdd(sig)
	sig.Plies = 11
	if d.CheckAndAdd(sig) {
		t.Error("different ply count reported as duplicate with exact matching")
	}
}

func TestDuplicateDetectorCapacity(t *testing.T) {
	d := NewDuplicateDetector(false, 2)
	for h := uint64(1); h <= 3; h++ {
		d.CheckAndAdd(GameSignature{Hash: h})
	}
	if !d.IsFull() || d.UniqueCount() != 2 {
		t.Errorf("IsFull() = %v, UniqueCount() = %d; want true, 2", d.IsFull(), d.UniqueCount())
	}
	if !d.CheckAndAdd(GameSignature{Hash: 1}) {
		t.Error("stored game not found once full")
	}
}

func TestDuplicateDetectorReset(t *testing.T) {
	d := NewDuplicateDetector(false, 0)
	d.CheckAndAdd(GameSignature{Hash: 1})
	d.CheckAndAdd(GameSignature{Hash: 1})
	d.Reset()
	if d.DuplicateCount() != 0 || d.UniqueCount() != 0 {
		t.Error("Reset() did not clear the detector")
	}
}
