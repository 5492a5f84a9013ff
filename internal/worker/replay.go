package worker

import (
	"context"

	"github.com/parallaxisjones/hex-chess/internal/engine"
	"github.com/parallaxisjones/hex-chess/internal/matching"
	"github.com/parallaxisjones/hex-chess/internal/parser"
	"github.com/parallaxisjones/hex-chess/internal/processing"
)

// Filter decides which replayed games are reported.
type Filter struct {
	MatchCheckmate bool
	MatchStalemate bool
	// KeepBroken reports games with rejected moves.
	KeepBroken bool
	// Matcher, when set, must also accept the game.
	Matcher matching.GameMatcher
}

// Keep reports whether ga passes the filter. With both match flags off every
// game passes the result test.
func (f Filter) Keep(ga *processing.GameAnalysis) bool {
	if !ga.Valid() && !f.KeepBroken {
		return false
	}
	if f.MatchCheckmate || f.MatchStalemate {
		kind := ga.Game.State().Kind
		if !(f.MatchCheckmate && kind == engine.Checkmate) && !(f.MatchStalemate && kind == engine.Stalemate) {
			return false
		}
	}
	return f.Matcher == nil || f.Matcher.Match(ga)
}

// ReplayFunc returns a ProcessFunc that replays each record in a game of its
// own and applies the filter.
func ReplayFunc(opts processing.Options, filter Filter) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		res := ProcessResult{Record: item.Record, Index: item.Index}
		ga, err := processing.AnalyzeGame(item.Record, opts)
		if err != nil {
			res.Error = err
			return res
		}
		res.Analysis = ga
		res.ShouldOutput = filter.Keep(ga)
		return res
	}
}

// Run processes records on a pool and returns the results in input order.
// When ctx is cancelled the pool is stopped; records not processed by then
// leave a zero ProcessResult in their slot.
func Run(ctx context.Context, records []*parser.GameRecord, fn ProcessFunc, opts ...PoolOption) []ProcessResult {
	pool := NewPool(ctx, fn, opts...)
	defer pool.Stop()
	pool.Start()

	go func() {
		defer pool.Close()
		for i, rec := range records {
			if !pool.Submit(WorkItem{Record: rec, Index: i}) {
				return
			}
		}
	}()

	results := make([]ProcessResult, len(records))
	for res := range pool.Results() {
		results[res.Index] = res
	}
	return results
}
