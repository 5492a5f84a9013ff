// Package processing replays move lists through the rules engine and
// analyses the games they produce.
package processing

import (
	"fmt"
	"log/slog"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/engine"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hashing"
	"github.com/parallaxisjones/hex-chess/internal/parser"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

// Options control a replay.
type Options struct {
	// Registry resolves variant names; nil means the built-in catalogue.
	Registry *variants.Registry
	// Variant is used when a record has no Variant tag.
	Variant string
	// StopOnError abandons the replay at the first rejected move.
	StopOnError bool
	// MaxPlies stops the replay after this many moves (0 = no limit).
	MaxPlies int
	Logger   *slog.Logger
}

func (o Options) registry() *variants.Registry {
	if o.Registry == nil {
		return variants.Builtin()
	}
	return o.Registry
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// GameAnalysis holds the results of replaying one move list.
type GameAnalysis struct {
	Record  *parser.GameRecord
	Variant variants.Config
	Game    *engine.Game

	Applied  int // moves played, including those later undone
	Undone   int
	Rejected []error

	// States and Hashes follow the game history: the state and position
	// hash after each move still on the board.
	States []engine.State
	Hashes []uint64

	Captures       int
	Checks         int
	MaxRepetitions int
	Truncated      bool // the ply limit was reached

	// ResultMismatch is set when the record's result contradicts the
	// final position.
	ResultMismatch bool
}

// Valid reports whether every move of the record was accepted.
func (ga *GameAnalysis) Valid() bool {
	return len(ga.Rejected) == 0
}

// Err returns the first rejected move, or nil.
func (ga *GameAnalysis) Err() error {
	if len(ga.Rejected) == 0 {
		return nil
	}
	return ga.Rejected[0]
}

// Signature returns the duplicate-detection key of the final position.
func (ga *GameAnalysis) Signature() hashing.GameSignature {
	return hashing.GameSignature{
		Variant:  ga.Variant.Slug,
		Hash:     ga.Game.PositionHash(),
		WeakHash: hashing.WeakHash(ga.Game.Board()),
		Plies:    ga.Game.Plies(),
	}
}

// ResolveVariant finds the variant a record is played in.
func ResolveVariant(rec *parser.GameRecord, opts Options) (variants.Config, error) {
	name := rec.Variant()
	if name == "" {
		name = opts.Variant
	}
	if name == "" {
		name = variants.DefaultVariant
	}
	return opts.registry().Lookup(name)
}

// AnalyzeGame replays a record. Rejected moves are collected in the
// analysis; an error is returned only when the game cannot be set up.
func AnalyzeGame(rec *parser.GameRecord, opts Options) (*GameAnalysis, error) {
	cfg, err := ResolveVariant(rec, opts)
	if err != nil {
		return nil, err
	}
	logger := opts.logger().With("source", rec.Source, "line", rec.StartLine, "variant", cfg.Slug)
	game, err := engine.NewGame(cfg, engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	ga := &GameAnalysis{
		Record:         rec,
		Variant:        cfg,
		Game:           game,
		MaxRepetitions: game.RepetitionCount(),
	}

	for _, m := range rec.Moves {
		if opts.MaxPlies > 0 && game.Plies() >= opts.MaxPlies && !m.Undo {
			ga.Truncated = true
			break
		}
		if err := ga.apply(m, logger); err != nil {
			ga.Rejected = append(ga.Rejected, err)
			logger.Warn("move rejected", "move", m.String(), "at", fmt.Sprintf("%d:%d", m.Line, m.Column), "err", err)
			if opts.StopOnError {
				break
			}
		}
	}

	ga.ResultMismatch = !resultConsistent(declaredResult(rec), game.State())
	return ga, nil
}

func (ga *GameAnalysis) apply(m parser.MoveText, logger *slog.Logger) error {
	if m.Undo {
		if err := ga.Game.UndoMove(); err != nil {
			return err
		}
		ga.Undone++
		ga.States = ga.States[:len(ga.States)-1]
		ga.Hashes = ga.Hashes[:len(ga.Hashes)-1]
		return nil
	}

	if err := ga.Game.MakeMove(m.From, m.To); err != nil {
		return err
	}
	ga.Applied++
	ga.States = append(ga.States, ga.Game.State())
	ga.Hashes = append(ga.Hashes, ga.Game.PositionHash())

	if last, _ := ga.Game.LastMove(); last.IsCapture() {
		ga.Captures++
	} else if m.Capture {
		logger.Warn("capture marker on a quiet move", "move", m.String())
	}
	if st := ga.Game.State(); st.Kind == engine.Check || st.Kind == engine.Checkmate {
		ga.Checks++
	}
	if n := ga.Game.RepetitionCount(); n > ga.MaxRepetitions {
		ga.MaxRepetitions = n
	}
	return nil
}

// ReplayGame replays a record and returns the final game, failing at the
// first rejected move.
func ReplayGame(rec *parser.GameRecord, opts Options) (*engine.Game, error) {
	opts.StopOnError = true
	ga, err := AnalyzeGame(rec, opts)
	if err != nil {
		return nil, err
	}
	return ga.Game, ga.Err()
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool
	ErrorPly int
	ErrorMsg string
	Problems []string
}

// ValidateGame checks that a record names a known variant, carries a
// well-formed result and that all its moves are legal.
func ValidateGame(rec *parser.GameRecord, opts Options) *ValidationResult {
	result := &ValidationResult{Valid: true}

	declared := declaredResult(rec)
	if declared != "" && !isValidResult(declared) {
		result.Problems = append(result.Problems, fmt.Sprintf("invalid result: %s", declared))
	}

	opts.StopOnError = true
	ga, err := AnalyzeGame(rec, opts)
	if err != nil {
		result.Valid = false
		result.ErrorMsg = err.Error()
		return result
	}
	if err := ga.Err(); err != nil {
		result.Valid = false
		var me *errors.MoveError
		if errors.As(err, &me) {
			result.ErrorPly = me.Ply
		}
		result.ErrorMsg = err.Error()
	}
	if ga.ResultMismatch {
		result.Problems = append(result.Problems,
			fmt.Sprintf("result %s does not match final state %s", declared, ga.Game.State()))
	}
	return result
}

// CountPlies counts the moves of a record, net of undos.
func CountPlies(rec *parser.GameRecord) int {
	count := 0
	for _, m := range rec.Moves {
		if m.Undo {
			if count > 0 {
				count--
			}
			continue
		}
		count++
	}
	return count
}

// declaredResult prefers the result token over the Result tag.
func declaredResult(rec *parser.GameRecord) string {
	if rec.Result != "" {
		return rec.Result
	}
	return rec.Tag("Result")
}

// isValidResult checks if a result string is a recognised game result.
func isValidResult(result string) bool {
	switch result {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	default:
		return false
	}
}

// resultConsistent reports whether a declared result agrees with the final
// state. Only decisive engine outcomes can contradict a declaration.
func resultConsistent(declared string, st engine.State) bool {
	switch st.Kind {
	case engine.Checkmate:
		want := "1-0"
		if st.Colour == chess.Black {
			want = "0-1"
		}
		return declared == "" || declared == "*" || declared == want
	case engine.Stalemate, engine.Draw:
		return declared == "" || declared == "*" || declared == "1/2-1/2"
	}
	return true
}

// ResultToken returns the result token for a finished game, or "*".
func ResultToken(st engine.State) string {
	switch st.Kind {
	case engine.Checkmate:
		if st.Colour == chess.White {
			return "1-0"
		}
		return "0-1"
	case engine.Stalemate, engine.Draw:
		return "1/2-1/2"
	}
	return "*"
}
