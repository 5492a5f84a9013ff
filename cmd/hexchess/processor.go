// processor.go - Reading, replaying and writing games
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/parallaxisjones/hex-chess/internal/config"
	"github.com/parallaxisjones/hex-chess/internal/hashing"
	"github.com/parallaxisjones/hex-chess/internal/matching"
	"github.com/parallaxisjones/hex-chess/internal/output"
	"github.com/parallaxisjones/hex-chess/internal/parser"
	"github.com/parallaxisjones/hex-chess/internal/processing"
	"github.com/parallaxisjones/hex-chess/internal/variants"
	"github.com/parallaxisjones/hex-chess/internal/variantscript"
	"github.com/parallaxisjones/hex-chess/internal/worker"
)

// Stats counts what happened to the games of a run.
type Stats struct {
	Games      int // records read
	Output     int
	Duplicates int
	Broken     int // games with rejected moves
	Skipped    int // games whose variant could not be set up
}

// loadRegistry returns the built-in variants plus the scripted one, if any.
// A scripted variant becomes the default when no variant was chosen.
func loadRegistry(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*variants.Registry, error) {
	reg := variants.Builtin()
	if cfg.ScriptFile != "" {
		loader := variantscript.NewLoader(variantscript.WithLogger(logger))
		scripted, err := loader.Register(ctx, reg, cfg.ScriptFile)
		if err != nil {
			return nil, err
		}
		if cfg.Variant == "" {
			cfg.Variant = scripted.Slug
		}
	}
	if cfg.Variant != "" {
		if _, err := reg.Lookup(cfg.Variant); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// listVariants writes one line per registered variant.
func listVariants(w io.Writer, reg *variants.Registry) error {
	for _, v := range reg.All() {
		detail := "no board layout"
		if v.Playable() {
			detail = fmt.Sprintf("%s, %d pieces", v.Shape, len(v.Placements))
		}
		if _, err := fmt.Fprintf(w, "%-20s %s (%s)\n", v.Slug, v.Name, detail); err != nil {
			return err
		}
	}
	return nil
}

// processInput parses every game in r. Games that fail to parse are logged
// and skipped.
func processInput(r io.Reader, name string, logger *slog.Logger) []*parser.GameRecord {
	p := parser.NewParser(r, name)
	var records []*parser.GameRecord
	for {
		rec, err := p.ParseGame()
		if err != nil {
			logger.Warn("skipping unreadable game", "err", err)
			continue
		}
		if rec == nil {
			return records
		}
		records = append(records, rec)
	}
}

// movesRecord wraps a command-line move list as a game record.
func movesRecord(text string) (*parser.GameRecord, error) {
	moves, err := parser.ParseMoves(text)
	if err != nil {
		return nil, err
	}
	return &parser.GameRecord{
		Tags:      make(map[string]string),
		Moves:     moves,
		Source:    "command line",
		StartLine: 1,
		EndLine:   1,
	}, nil
}

// collectRecords reads the games named by args, or stdin when there are none.
// Files that cannot be opened are logged and skipped.
func collectRecords(args []string, stdin io.Reader, logger *slog.Logger) []*parser.GameRecord {
	if len(args) == 0 {
		return processInput(stdin, "stdin", logger)
	}

	var records []*parser.GameRecord
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			logger.Error("cannot open input", "file", filename, "err", err)
			continue
		}
		records = append(records, processInput(file, filename, logger)...)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
	}
	return records
}

// setupDuplicateDetector returns nil when duplicates are not being tracked.
func setupDuplicateDetector(cfg *config.Config) *hashing.DuplicateDetector {
	if !cfg.Duplicate.Suppress && cfg.Duplicate.DuplicateFile == nil {
		return nil
	}
	return hashing.NewDuplicateDetector(cfg.Duplicate.Exact, cfg.Duplicate.MaxGames)
}

// processGames replays records on the worker pool and writes the reports in
// input order. Duplicate detection runs here, after the pool, so the first
// copy of a game is always the one kept.
func processGames(ctx context.Context, records []*parser.GameRecord, reg *variants.Registry, cfg *config.Config, logger *slog.Logger) (Stats, error) {
	opts := processing.Options{
		Registry:    reg,
		Variant:     cfg.Variant,
		StopOnError: cfg.Replay.StopOnError,
		MaxPlies:    cfg.Replay.MaxPlies,
		Logger:      logger,
	}
	matcher, err := matching.NewGameFilter(cfg.Filter)
	if err != nil {
		return Stats{}, err
	}
	filter := worker.Filter{
		MatchCheckmate: cfg.Replay.MatchCheckmate,
		MatchStalemate: cfg.Replay.MatchStalemate,
		KeepBroken:     cfg.Replay.KeepBrokenGames,
		Matcher:        matcher,
	}
	if matcher != nil {
		logger.Debug("selecting games", "matcher", matcher.Name())
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	results := worker.Run(ctx, records, worker.ReplayFunc(opts, filter), worker.WithWorkers(workers))

	out := output.NewWriter(cfg.OutputFile, cfg)
	var dups output.GameWriter
	if cfg.Duplicate.DuplicateFile != nil {
		dups = output.NewWriter(cfg.Duplicate.DuplicateFile, cfg)
	}
	detector := setupDuplicateDetector(cfg)

	stats := Stats{Games: len(records)}
	for _, res := range results {
		if res.Record == nil {
			continue // not reached before cancellation
		}
		if res.Error != nil {
			stats.Skipped++
			logger.Error("game skipped", "source", res.Record.Source, "line", res.Record.StartLine, "err", res.Error)
			continue
		}
		ga := res.Analysis
		if !ga.Valid() {
			stats.Broken++
		}
		if !res.ShouldOutput {
			continue
		}
		if detector != nil && detector.CheckAndAdd(ga.Signature()) {
			stats.Duplicates++
			if dups != nil {
				if err := dups.WriteGame(ga); err != nil {
					return stats, err
				}
			}
			if cfg.Duplicate.Suppress {
				continue
			}
		}
		if err := out.WriteGame(ga); err != nil {
			return stats, err
		}
		stats.Output++
	}

	if err := out.Close(); err != nil {
		return stats, err
	}
	if dups != nil {
		if err := dups.Close(); err != nil {
			return stats, err
		}
	}
	return stats, ctx.Err()
}

// reportStatistics prints the final statistics.
func reportStatistics(w io.Writer, stats Stats, duplicates bool) {
	if duplicates {
		fmt.Fprintf(w, "%d game(s) output, %d duplicate(s) out of %d.\n", stats.Output, stats.Duplicates, stats.Games)
	} else {
		fmt.Fprintf(w, "%d game(s) output out of %d.\n", stats.Output, stats.Games)
	}
	if stats.Broken > 0 {
		fmt.Fprintf(w, "%d game(s) with rejected moves.\n", stats.Broken)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(w, "%d game(s) skipped.\n", stats.Skipped)
	}
}
