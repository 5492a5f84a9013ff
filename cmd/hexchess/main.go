// hexchess replays hexagonal chess games, checking every move against the
// rules of the game's variant.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/parallaxisjones/hex-chess/internal/config"
	"github.com/parallaxisjones/hex-chess/internal/parser"
)

const programVersion = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		return 0
	}

	if *version {
		fmt.Printf("hexchess version %s\n", programVersion)
		return 0
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	// Set up logging and output files
	if !setupLogFile(cfg) || !setupOutputFile(cfg) || !setupDuplicateFile(cfg) {
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg, err := loadRegistry(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.ListOnly {
		if err := listVariants(cfg.OutputFile, reg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing variant list: %v\n", err)
			return 1
		}
		return 0
	}

	var records []*parser.GameRecord
	if *movesArg != "" {
		rec, err := movesRecord(*movesArg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing moves: %v\n", err)
			return 1
		}
		records = []*parser.GameRecord{rec}
	} else {
		records = collectRecords(flag.Args(), os.Stdin, logger)
	}

	stats, err := processGames(ctx, records, reg, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Verbosity > 0 && !*quiet {
		reportStatistics(os.Stderr, stats, cfg.Duplicate.Suppress)
	}
	return 0
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) bool {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			return false
		}
		cfg.SetLog(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			return false
		}
		cfg.SetLog(file)
	}
	return true
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) bool {
	if *outputFile == "" {
		return true
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		return false
	}
	cfg.SetOutput(file)
	return true
}

// setupDuplicateFile configures the duplicate output file.
func setupDuplicateFile(cfg *config.Config) bool {
	if *duplicateFile == "" {
		return true
	}

	file, err := os.Create(*duplicateFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating duplicate file %s: %v\n", *duplicateFile, err)
		return false
	}
	cfg.Duplicate.DuplicateFile = file
	return true
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: hexchess [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays hexagonal chess games and reports their outcome.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nMoves are written from-to, with cells either in Gliński notation\n")
	fmt.Fprintf(os.Stderr, "(f5-f6) or as axial pairs ((0,1)-(0,0)). An x marks a capture and\n")
	fmt.Fprintf(os.Stderr, "UNDO takes back the last move. Tag a game with [Variant \"name\"]\n")
	fmt.Fprintf(os.Stderr, "to pick its variant; -list shows the names.\n")
}
