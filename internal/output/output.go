// Package output writes replayed games as text or JSON reports.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/config"
	"github.com/parallaxisjones/hex-chess/internal/engine"
	"github.com/parallaxisjones/hex-chess/internal/hex"
	"github.com/parallaxisjones/hex-chess/internal/processing"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame writes a text report of a replayed game to w.
func OutputGame(ga *processing.GameAnalysis, cfg *config.Config, w io.Writer) {
	outputTags(ga, w)
	fmt.Fprintln(w)

	outputMoves(ga, cfg, w)
	outputSummary(ga, cfg, w)

	// Blank line between games
	fmt.Fprintln(w)
}

// outputTags writes the Variant tag first, then the record's other tags in
// name order.
func outputTags(ga *processing.GameAnalysis, w io.Writer) {
	fmt.Fprintf(w, "[Variant \"%s\"]\n", escapeTagValue(ga.Variant.Name))

	names := make([]string, 0, len(ga.Record.Tags))
	for name := range ga.Record.Tags {
		if name != "Variant" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "[%s \"%s\"]\n", name, escapeTagValue(ga.Record.Tags[name]))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func outputMoves(ga *processing.GameAnalysis, cfg *config.Config, w io.Writer) {
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))
	names := useNotation(ga.Variant.Shape, cfg)

	for i, m := range ga.Game.History() {
		if m.Piece.Colour == chess.White {
			ow.Write(fmt.Sprintf("%d.", m.Number))
		} else if i == 0 {
			ow.Write(fmt.Sprintf("%d...", m.Number))
		}
		text := FormatMove(m, names)
		if cfg.Annotation.AddStates && i < len(ga.States) {
			text += stateSuffix(ga.States[i])
		}
		ow.Write(text)
		if cfg.Annotation.AddHashes && i < len(ga.Hashes) {
			ow.Write(fmt.Sprintf("{%016x}", ga.Hashes[i]))
		}
	}
	ow.Write(processing.ResultToken(ga.Game.State()))
	ow.NewLine()
}

func outputSummary(ga *processing.GameAnalysis, cfg *config.Config, w io.Writer) {
	names := useNotation(ga.Variant.Shape, cfg)

	for _, err := range ga.Rejected {
		fmt.Fprintf(w, "Rejected: %v\n", err)
	}
	if ga.Truncated {
		fmt.Fprintf(w, "Truncated after %d plies\n", ga.Game.Plies())
	}
	if ga.ResultMismatch {
		fmt.Fprintf(w, "Result mismatch: recorded %q\n", ga.Record.Result)
	}

	st := ga.Game.State()
	fmt.Fprintf(w, "State: %s\n", st)
	if result, ok := st.Result(); ok {
		fmt.Fprintf(w, "Result: %s\n", result)
	} else {
		fmt.Fprintf(w, "To move: %s\n", ga.Game.ToMove())
	}
	if cfg.Annotation.AddPlyCount {
		fmt.Fprintf(w, "PlyCount: %d\n", ga.Game.Plies())
	}
	if cfg.Annotation.AddRepetitions && ga.MaxRepetitions > 1 {
		fmt.Fprintf(w, "Repetitions: %d\n", ga.MaxRepetitions)
	}

	if cfg.Output.ShowBoard {
		ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))
		ow.Write("Pieces:")
		for _, pl := range ga.Game.Pieces() {
			ow.Write(fmt.Sprintf("%c%s", pl.Piece.Symbol(), FormatCell(pl.Coord, names)))
		}
		ow.NewLine()
	}
	if cfg.Output.ShowLegal && !st.IsTerminal() {
		ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))
		ow.Write("Legal:")
		for _, m := range ga.Game.AllLegalMoves() {
			ow.Write(FormatMove(m, names))
		}
		ow.NewLine()
	}
}

// useNotation reports whether cells should be written as Gliński names.
func useNotation(shape hex.Shape, cfg *config.Config) bool {
	return cfg.Output.Notation && shape.Kind == hex.Regular && shape.Radius == hex.NotationRadius
}

// FormatMove writes a move as cell names when names is set, else axially.
func FormatMove(m chess.Move, names bool) string {
	if names {
		if s, ok := m.Notation(); ok {
			return s
		}
	}
	return m.String()
}

// FormatCell writes a cell as its name when names is set, else axially.
func FormatCell(c hex.Coord, names bool) string {
	if names {
		if s := hex.CellName(c); s != "" {
			return s
		}
	}
	return c.String()
}

func stateSuffix(st engine.State) string {
	switch st.Kind {
	case engine.Check:
		return "+"
	case engine.Checkmate:
		return "#"
	}
	return ""
}
