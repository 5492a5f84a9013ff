package matching

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/processing"
)

// MaterialMatcher matches games that reach a given material balance.
type MaterialMatcher struct {
	pattern string
	exact   bool
	want    map[chess.Piece]int
}

// NewMaterialMatcher parses a pattern such as "QR:qrr": White's pieces before
// the colon, Black's after, one letter per piece. Any piece letter is
// accepted on either side; its case gives the colour. With exact set the
// board must hold nothing else; otherwise the pattern is a minimum.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{
		pattern: pattern,
		exact:   exact,
		want:    make(map[chess.Piece]int),
	}
	for _, r := range strings.ReplaceAll(pattern, ":", "") {
		if r == ' ' {
			continue
		}
		if r > 0x7f {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "material pattern %q: unknown piece %q", pattern, r)
		}
		p, ok := chess.ParseSymbol(byte(r))
		if !ok {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "material pattern %q: unknown piece %q", pattern, r)
		}
		mm.want[p]++
	}
	return mm, nil
}

// Match implements GameMatcher. Every position on the game's line is tried,
// from the starting position to the last move still on the board.
func (mm *MaterialMatcher) Match(ga *processing.GameAnalysis) bool {
	if ga.Game == nil {
		return false
	}
	board := ga.Variant.CreateBoard(discard)
	if mm.matchBoard(board) {
		return true
	}
	for _, m := range ga.Game.History() {
		if _, _, err := board.MovePiece(m.From, m.To); err != nil {
			return false
		}
		if mm.matchBoard(board) {
			return true
		}
	}
	return false
}

// Name implements GameMatcher.
func (mm *MaterialMatcher) Name() string {
	if mm.exact {
		return fmt.Sprintf("material(=%s)", mm.pattern)
	}
	return fmt.Sprintf("material(%s)", mm.pattern)
}

func (mm *MaterialMatcher) matchBoard(board *chess.Board) bool {
	have := make(map[chess.Piece]int)
	for _, pl := range board.Placements() {
		have[pl.Piece]++
	}
	for p, n := range mm.want {
		if have[p] < n || (mm.exact && have[p] != n) {
			return false
		}
	}
	if mm.exact {
		for p := range have {
			if mm.want[p] == 0 {
				return false
			}
		}
	}
	return true
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
