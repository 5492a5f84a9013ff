package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/parallaxisjones/hex-chess/internal/config"
	"github.com/parallaxisjones/hex-chess/internal/processing"
)

// JSONGame represents a replayed game in JSON format.
type JSONGame struct {
	Variant     string            `json:"variant"`
	Slug        string            `json:"slug"`
	Source      string            `json:"source,omitempty"`
	Line        int               `json:"line,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Moves       []JSONMove        `json:"moves"`
	State       string            `json:"state"`
	Result      string            `json:"result"`
	Outcome     string            `json:"outcome,omitempty"`
	ToMove      string            `json:"toMove"`
	PlyCount    int               `json:"plyCount"`
	Hash        string            `json:"hash"`
	Repetitions int               `json:"repetitions,omitempty"`
	Rejected    []string          `json:"rejected,omitempty"`
	Truncated   bool              `json:"truncated,omitempty"`
	Mismatch    bool              `json:"resultMismatch,omitempty"`
	Pieces      []JSONPiece       `json:"pieces,omitempty"`
	Legal       []string          `json:"legal,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Colour     string `json:"colour"`
	Text       string `json:"text"`
	From       [2]int `json:"from"`
	To         [2]int `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	State      string `json:"state,omitempty"`
	Hash       string `json:"hash,omitempty"`
}

// JSONPiece is one piece of the final position.
type JSONPiece struct {
	Cell   string `json:"cell"`
	Q      int    `json:"q"`
	R      int    `json:"r"`
	Symbol string `json:"symbol"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// OutputGameJSON writes a single game as a JSON document.
func OutputGameJSON(ga *processing.GameAnalysis, cfg *config.Config, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(ga, cfg))
}

// OutputGamesJSON writes several games as one JSON document.
func OutputGamesJSON(games []*processing.GameAnalysis, cfg *config.Config, w io.Writer) error {
	out := &JSONOutput{Games: make([]*JSONGame, len(games))}
	for i, ga := range games {
		out.Games[i] = GameToJSON(ga, cfg)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// GameToJSON converts a replayed game to its JSON form.
func GameToJSON(ga *processing.GameAnalysis, cfg *config.Config) *JSONGame {
	names := useNotation(ga.Variant.Shape, cfg)
	st := ga.Game.State()

	jg := &JSONGame{
		Variant:   ga.Variant.Name,
		Slug:      ga.Variant.Slug,
		Source:    ga.Record.Source,
		Line:      ga.Record.StartLine,
		Tags:      copyTags(ga.Record.Tags),
		Moves:     make([]JSONMove, 0, ga.Game.Plies()),
		State:     st.String(),
		Result:    processing.ResultToken(st),
		ToMove:    ga.Game.ToMove().String(),
		PlyCount:  ga.Game.Plies(),
		Hash:      fmt.Sprintf("%016x", ga.Game.PositionHash()),
		Truncated: ga.Truncated,
		Mismatch:  ga.ResultMismatch,
	}
	jg.Outcome, _ = st.Result()
	if ga.MaxRepetitions > 1 {
		jg.Repetitions = ga.MaxRepetitions
	}
	for _, err := range ga.Rejected {
		jg.Rejected = append(jg.Rejected, err.Error())
	}

	for i, m := range ga.Game.History() {
		jm := JSONMove{
			MoveNumber: m.Number,
			Colour:     m.Piece.Colour.String(),
			Text:       FormatMove(m, names),
			From:       [2]int{m.From.Q, m.From.R},
			To:         [2]int{m.To.Q, m.To.R},
			Piece:      m.Piece.Kind.String(),
		}
		if m.Captured != nil {
			jm.Captured = m.Captured.Kind.String()
		}
		if i < len(ga.States) {
			jm.State = ga.States[i].String()
		}
		if cfg.Annotation.AddHashes && i < len(ga.Hashes) {
			jm.Hash = fmt.Sprintf("%016x", ga.Hashes[i])
		}
		jg.Moves = append(jg.Moves, jm)
	}

	if cfg.Output.ShowBoard {
		for _, pl := range ga.Game.Pieces() {
			jg.Pieces = append(jg.Pieces, JSONPiece{
				Cell:   FormatCell(pl.Coord, names),
				Q:      pl.Coord.Q,
				R:      pl.Coord.R,
				Symbol: string(pl.Piece.Symbol()),
			})
		}
	}
	if cfg.Output.ShowLegal && !st.IsTerminal() {
		for _, m := range ga.Game.AllLegalMoves() {
			jg.Legal = append(jg.Legal, FormatMove(m, names))
		}
	}
	return jg
}

func copyTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
