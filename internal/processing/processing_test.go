package processing

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/engine"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/parser"
	"github.com/parallaxisjones/hex-chess/internal/testutil"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

func parseRecord(t *testing.T, text string) *parser.GameRecord {
	t.Helper()
	rec, err := parser.NewParser(strings.NewReader(text), "test").ParseGame()
	if err != nil {
		t.Fatalf("ParseGame: %v", err)
	}
	if rec == nil {
		t.Fatal("ParseGame returned no game")
	}
	return rec
}

// testRegistry adds small hand-built positions to the built-in catalogue.
func testRegistry(t *testing.T) *variants.Registry {
	t.Helper()
	reg := variants.Builtin()
	add := func(slug string, cfg variants.Config) {
		cfg.Slug = slug
		cfg.Name = "Test " + slug
		if err := reg.Register(slug, func() variants.Config { return cfg.Clone() }); err != nil {
			t.Fatal(err)
		}
	}
	add("mate", testutil.Regular(t, 1, "k 0,0", "R 1,0", "R 1,-1", "R 0,-1", "R -1,0", "R -1,1"))
	add("shuffle", testutil.Regular(t, 3, "K 0,3", "R 1,1", "k 0,-3", "r -1,-1"))
	add("capture", testutil.Regular(t, 2, "R 0,0", "n 0,-2", "K 2,0", "k -2,0"))
	return reg
}

func quietOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Registry:    testRegistry(t),
		StopOnError: true,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// TestAnalyzeGame verifies a clean replay
func TestAnalyzeGame(t *testing.T) {
	rec := parseRecord(t, `[Variant "glinski"]
1. f5-f6 e7-e6 2. g4-g5 *`)

	ga, err := AnalyzeGame(rec, quietOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if !ga.Valid() || ga.Err() != nil {
		t.Errorf("Rejected = %v", ga.Rejected)
	}
	if ga.Applied != 3 || ga.Game.Plies() != 3 {
		t.Errorf("Applied = %d, Plies = %d, want 3", ga.Applied, ga.Game.Plies())
	}
	if ga.Variant.Slug != "glinski" {
		t.Errorf("Variant = %q", ga.Variant.Slug)
	}
	if ga.ResultMismatch {
		t.Error("unfinished game flagged as a result mismatch")
	}
}

// TestAnalyzeGame_DefaultVariant verifies the fallback variant
func TestAnalyzeGame_DefaultVariant(t *testing.T) {
	rec := parseRecord(t, "*")

	opts := quietOptions(t)
	ga, err := AnalyzeGame(rec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if ga.Variant.Slug != variants.DefaultVariant {
		t.Errorf("Variant = %q, want %q", ga.Variant.Slug, variants.DefaultVariant)
	}

	opts.Variant = "Mini Hexchess"
	if ga, err = AnalyzeGame(rec, opts); err != nil {
		t.Fatal(err)
	}
	if ga.Variant.Slug != "mini" {
		t.Errorf("Variant = %q, want mini", ga.Variant.Slug)
	}
}

// TestAnalyzeGame_VariantErrors verifies games that cannot be set up
func TestAnalyzeGame_VariantErrors(t *testing.T) {
	tests := []struct {
		variant string
		want    error
	}{
		{"chess960", errors.ErrUnknownVariant},
		{"shafran", errors.ErrUnsupportedVariant},
	}
	for _, tt := range tests {
		rec := parseRecord(t, `[Variant "`+tt.variant+`"] f5-f6`)
		_, err := AnalyzeGame(rec, quietOptions(t))
		testutil.AssertErrorIs(t, err, tt.want, tt.variant)
	}
}

// TestAnalyzeGame_Rejected verifies rejected moves are collected
func TestAnalyzeGame_Rejected(t *testing.T) {
	rec := parseRecord(t, "f5-f6 f6-f7 e7-e6")

	opts := quietOptions(t)
	ga, err := AnalyzeGame(rec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if ga.Applied != 1 || len(ga.Rejected) != 1 {
		t.Errorf("stop on error: Applied = %d, Rejected = %d", ga.Applied, len(ga.Rejected))
	}
	testutil.AssertErrorIs(t, ga.Err(), errors.ErrNotYourPiece)

	opts.StopOnError = false
	if ga, err = AnalyzeGame(rec, opts); err != nil {
		t.Fatal(err)
	}
	if ga.Applied != 2 || len(ga.Rejected) != 1 {
		t.Errorf("keep going: Applied = %d, Rejected = %d", ga.Applied, len(ga.Rejected))
	}
	if ga.Game.ToMove() != chess.White {
		t.Errorf("ToMove() = %v, want White", ga.Game.ToMove())
	}
}

// TestAnalyzeGame_Checkmate verifies check counting and result checks
func TestAnalyzeGame_Checkmate(t *testing.T) {
	tests := []struct {
		result   string
		mismatch bool
	}{
		{"1-0", false},
		{"*", false},
		{"0-1", true},
		{"1/2-1/2", true},
	}
	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			rec := parseRecord(t, `[Variant "mate"] (-1,1)-(0,1) `+tt.result)
			ga, err := AnalyzeGame(rec, quietOptions(t))
			if err != nil {
				t.Fatal(err)
			}
			if want := (engine.State{Kind: engine.Checkmate, Colour: chess.White}); ga.Game.State() != want {
				t.Errorf("State() = %v, want %v", ga.Game.State(), want)
			}
			if ga.Checks != 1 {
				t.Errorf("Checks = %d, want 1", ga.Checks)
			}
			if ga.ResultMismatch != tt.mismatch {
				t.Errorf("ResultMismatch = %v, want %v", ga.ResultMismatch, tt.mismatch)
			}
		})
	}
}

// TestAnalyzeGame_Repetition verifies repetition detection
func TestAnalyzeGame_Repetition(t *testing.T) {
	rec := parseRecord(t, `[Variant "shuffle"]
(1,1)-(1,0) (-1,-1)-(-1,0) (1,0)-(1,1) (-1,0)-(-1,-1)
(1,1)-(1,0) (-1,-1)-(-1,0) (1,0)-(1,1) (-1,0)-(-1,-1)`)

	ga, err := AnalyzeGame(rec, quietOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if ga.MaxRepetitions != 3 {
		t.Errorf("MaxRepetitions = %d, want 3", ga.MaxRepetitions)
	}
	if ga.Game.State().IsTerminal() {
		t.Error("repetition ended the game")
	}
}

// TestAnalyzeGame_CapturesAndUndo verifies capture and undo bookkeeping
func TestAnalyzeGame_CapturesAndUndo(t *testing.T) {
	rec := parseRecord(t, `[Variant "capture"] (0,0)x(0,-2) undo (0,0)-(0,-1)`)

	ga, err := AnalyzeGame(rec, quietOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	if ga.Captures != 1 || ga.Undone != 1 || ga.Applied != 2 {
		t.Errorf("Captures = %d, Undone = %d, Applied = %d", ga.Captures, ga.Undone, ga.Applied)
	}
	if ga.Game.Plies() != 1 {
		t.Errorf("Plies() = %d, want 1", ga.Game.Plies())
	}
	if got := CountPlies(rec); got != 1 {
		t.Errorf("CountPlies() = %d, want 1", got)
	}
}

// TestAnalyzeGame_PlyLimit verifies the ply limit
func TestAnalyzeGame_PlyLimit(t *testing.T) {
	rec := parseRecord(t, "f5-f6 e7-e6 g4-g5")

	opts := quietOptions(t)
	opts.MaxPlies = 2
	ga, err := AnalyzeGame(rec, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !ga.Truncated || ga.Game.Plies() != 2 {
		t.Errorf("Truncated = %v, Plies = %d", ga.Truncated, ga.Game.Plies())
	}
}

// TestReplayGame verifies the first rejected move is returned
func TestReplayGame(t *testing.T) {
	game, err := ReplayGame(parseRecord(t, "f5-f6 e7-e6"), quietOptions(t))
	if err != nil {
		t.Fatalf("ReplayGame() error = %v", err)
	}
	if game.Plies() != 2 {
		t.Errorf("Plies() = %d, want 2", game.Plies())
	}

	_, err = ReplayGame(parseRecord(t, "f5-f7"), quietOptions(t))
	testutil.AssertErrorIs(t, err, errors.ErrInvalidMove)
}

// TestValidateGame verifies game validation
func TestValidateGame(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		valid    bool
		errorPly int
		problems int
	}{
		{"legal", "f5-f6 e7-e6 *", true, 0, 0},
		{"illegal second move", "f5-f6 f6-f7", false, 2, 0},
		{"bad result tag", `[Result "2-0"] f5-f6`, true, 0, 1},
		{"wrong result", `[Variant "mate"] (-1,1)-(0,1) 0-1`, true, 0, 1},
		{"unknown variant", `[Variant "nope"] f5-f6`, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateGame(parseRecord(t, tt.text), quietOptions(t))
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (%s)", res.Valid, tt.valid, res.ErrorMsg)
			}
			if res.ErrorPly != tt.errorPly {
				t.Errorf("ErrorPly = %d, want %d", res.ErrorPly, tt.errorPly)
			}
			if len(res.Problems) != tt.problems {
				t.Errorf("Problems = %v, want %d", res.Problems, tt.problems)
			}
		})
	}
}

// TestSignature verifies transposed games share a signature
func TestSignature(t *testing.T) {
	a, err := AnalyzeGame(parseRecord(t, "f5-f6 e7-e6 g4-g5 d7-d6"), quietOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	b, err := AnalyzeGame(parseRecord(t, "g4-g5 d7-d6 f5-f6 e7-e6"), quietOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	c, err := AnalyzeGame(parseRecord(t, "g4-g5 d7-d6 f5-f6"), quietOptions(t))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, a.Signature(), b.Signature())
	if a.Signature() == c.Signature() {
		t.Error("different positions share a signature")
	}
}

// TestResultToken verifies result tokens for final states
func TestResultToken(t *testing.T) {
	tests := []struct {
		state engine.State
		want  string
	}{
		{engine.State{Kind: engine.Playing}, "*"},
		{engine.State{Kind: engine.Check, Colour: chess.Black}, "*"},
		{engine.State{Kind: engine.Checkmate, Colour: chess.White}, "1-0"},
		{engine.State{Kind: engine.Checkmate, Colour: chess.Black}, "0-1"},
		{engine.State{Kind: engine.Stalemate}, "1/2-1/2"},
	}
	for _, tt := range tests {
		if got := ResultToken(tt.state); got != tt.want {
			t.Errorf("ResultToken(%v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
