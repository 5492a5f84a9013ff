// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/config"
)

var (
	// Variant selection
	variantName = flag.String("variant", "", "Variant for games without a Variant tag (default: glinski)")
	scriptFile  = flag.String("script", "", "Lua file defining an extra variant")
	listOnly    = flag.Bool("list", false, "List the known variants and exit")

	// Input
	movesArg = flag.String("moves", "", "Replay this move list instead of reading files")

	// Output options
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	appendOutput = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength   = flag.Int("w", 80, "Maximum line length")
	jsonOutput   = flag.Bool("J", false, "Output in JSON format")
	axialCells   = flag.Bool("axial", false, "Write cells as axial q,r pairs instead of Gliński notation")
	showBoard    = flag.Bool("board", false, "List the pieces left on the board")
	showLegal    = flag.Bool("legal", false, "List the legal moves of the side to move")

	// Annotations
	noStates     = flag.Bool("nostates", false, "Don't mark checks and mates on moves")
	hashComments = flag.Bool("hashcomments", false, "Add a position hash comment after each move")
	plyCount     = flag.Bool("plycount", false, "Report the number of plies played")
	repetitions  = flag.Bool("repetitions", false, "Report the most repeated position")

	// Replay options
	keepGoing  = flag.Bool("keepgoing", false, "Keep replaying after a rejected move")
	dropBroken = flag.Bool("nobroken", false, "Don't output games with rejected moves")
	plyLimit   = flag.Int("plylimit", 0, "Stop each game after N plies (0 = no limit)")
	checkmates = flag.Bool("checkmate", false, "Only output games ending in checkmate")
	stalemates = flag.Bool("stalemate", false, "Only output games ending in stalemate")
	numWorkers = flag.Int("j", 1, "Number of replay workers (0 = one per CPU)")

	// Game selection
	tagFile       = flag.String("t", "", "Tag criteria file for filtering")
	tagCriteria   stringList
	playerFilter  = flag.String("p", "", "Filter by player name (either colour)")
	tagSubstring  = flag.Bool("tagsubstr", false, "Match tag values anywhere (substring)")
	materialMatch = flag.String("z", "", "Material reached at some point, e.g. QR:qn (at least)")
	materialExact = flag.String("y", "", "Material reached at some point, exactly")
	matchAny      = flag.Bool("any", false, "Output games meeting any criterion instead of all")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress duplicate games")
	duplicateFile      = flag.String("d", "", "Output duplicates to this file")
	weakDuplicates     = flag.Bool("weakdups", false, "Treat games reaching the same position as duplicates whatever their length")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Logging
	logFile   = flag.String("l", "", "Write the log to this file (default: stderr)")
	appendLog = flag.String("L", "", "Append the log to this file")
	verbosity = flag.Int("v", 1, "Log verbosity: 0 warnings, 1 game summaries, 2 every move")
	quiet     = flag.Bool("s", false, "Don't report statistics")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

func init() {
	flag.Var(&tagCriteria, "tag", "Tag criterion such as 'Round >= 3' (repeatable)")
}

// stringList collects a repeated string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// applyFlags copies the parsed flags into cfg.
func applyFlags(cfg *config.Config) {
	cfg.Verbosity = *verbosity
	cfg.Variant = *variantName
	cfg.ScriptFile = *scriptFile
	cfg.ListOnly = *listOnly
	cfg.Workers = *numWorkers
	cfg.OutputFilename = *outputFile

	applyOutputFlags(cfg)
	applyAnnotationFlags(cfg)
	applyReplayFlags(cfg)
	applyFilterFlags(cfg)
	applyDuplicateFlags(cfg)
}

func applyOutputFlags(cfg *config.Config) {
	if *jsonOutput {
		cfg.Output.Format = config.JSONFormat
	}
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
	cfg.Output.Notation = !*axialCells
	cfg.Output.ShowBoard = *showBoard
	cfg.Output.ShowLegal = *showLegal
}

func applyAnnotationFlags(cfg *config.Config) {
	cfg.Annotation.AddStates = !*noStates
	cfg.Annotation.AddHashes = *hashComments
	cfg.Annotation.AddPlyCount = *plyCount
	cfg.Annotation.AddRepetitions = *repetitions
}

func applyReplayFlags(cfg *config.Config) {
	cfg.Replay.StopOnError = !*keepGoing
	cfg.Replay.KeepBrokenGames = !*dropBroken
	cfg.Replay.MaxPlies = *plyLimit
	cfg.Replay.MatchCheckmate = *checkmates
	cfg.Replay.MatchStalemate = *stalemates
}

func applyFilterFlags(cfg *config.Config) {
	cfg.Filter.TagFile = *tagFile
	cfg.Filter.Tags = append([]string(nil), tagCriteria...)
	cfg.Filter.Player = *playerFilter
	cfg.Filter.TagSubstring = *tagSubstring
	cfg.Filter.MatchAny = *matchAny
	if *materialExact != "" {
		cfg.Filter.Material = *materialExact
		cfg.Filter.MaterialExact = true
	} else {
		cfg.Filter.Material = *materialMatch
	}
}

// applyDuplicateFlags turns on suppression when a duplicate file is named, so
// duplicates go to that file only.
func applyDuplicateFlags(cfg *config.Config) {
	cfg.Duplicate.Suppress = *suppressDuplicates || *duplicateFile != ""
	cfg.Duplicate.Exact = !*weakDuplicates
	cfg.Duplicate.MaxGames = *duplicateCapacity
}
