// Package variants describes hex chess variants: their board shape, starting
// position and rule flags, and the catalogue of built-in variants.
package variants

import (
	"log/slog"
	"sort"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// PawnMode selects how pawns move in a variant.
type PawnMode int

const (
	// StandardPawns step straight forward and capture on the two cells beside that step.
	StandardPawns PawnMode = iota
	// ThreeDirectionPawns is McCooey-style movement. Recorded only.
	ThreeDirectionPawns
	// CustomPawns carries its own directions. Recorded only.
	CustomPawns
)

// String returns the name of the pawn mode.
func (m PawnMode) String() string {
	switch m {
	case StandardPawns:
		return "standard"
	case ThreeDirectionPawns:
		return "three-direction"
	case CustomPawns:
		return "custom"
	}
	return "unknown"
}

// PawnMovement is a pawn mode plus, for CustomPawns, its directions.
type PawnMovement struct {
	Mode       PawnMode    `json:"mode"`
	Directions []hex.Coord `json:"directions,omitempty"`
}

// RuleKind identifies a special rule flag.
type RuleKind int

const (
	EnPassant RuleKind = iota
	Castling
	CustomRule
)

// SpecialRule is a rule flag carried by a variant. The engine does not
// enforce special rules; they are reported so callers can show them.
type SpecialRule struct {
	Kind RuleKind `json:"kind"`
	// Name is set for CustomRule.
	Name string `json:"name,omitempty"`
}

// String returns the rule's display name.
func (r SpecialRule) String() string {
	switch r.Kind {
	case EnPassant:
		return "en passant"
	case Castling:
		return "castling"
	default:
		return r.Name
	}
}

// Config is everything needed to set up a game of one variant.
type Config struct {
	// Name is the display name, e.g. "Gliński's Chess".
	Name string `json:"name"`
	// Slug is the short registry key, e.g. "glinski".
	Slug        string                    `json:"slug"`
	Description string                    `json:"description"`
	Shape       hex.Shape                 `json:"shape"`
	Placements  map[hex.Coord]chess.Piece `json:"-"`
	Pawn        PawnMovement              `json:"pawn"`
	Rules       []SpecialRule             `json:"rules,omitempty"`
}

// Playable reports whether the variant's board has any cells. Catalogued
// variants without a board layout are not playable.
func (c Config) Playable() bool {
	return len(c.Shape.ValidCoords()) > 0
}

// HasRule reports whether the variant carries a rule of the given kind.
func (c Config) HasRule(kind RuleKind) bool {
	for _, r := range c.Rules {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// StartingPlacements returns the starting position in a stable order.
func (c Config) StartingPlacements() []chess.Placement {
	out := make([]chess.Placement, 0, len(c.Placements))
	for coord, p := range c.Placements {
		out = append(out, chess.Placement{Coord: coord, Piece: p})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coord, out[j].Coord
		if a.Q != b.Q {
			return a.Q < b.Q
		}
		return a.R < b.R
	})
	return out
}

// Clone returns a copy that shares no maps or slices with c.
func (c Config) Clone() Config {
	out := c
	out.Placements = make(map[hex.Coord]chess.Piece, len(c.Placements))
	for coord, p := range c.Placements {
		out.Placements[coord] = p
	}
	out.Rules = append([]SpecialRule(nil), c.Rules...)
	out.Pawn.Directions = append([]hex.Coord(nil), c.Pawn.Directions...)
	out.Shape.Cells = append([]hex.Coord(nil), c.Shape.Cells...)
	return out
}

// CreateBoard builds a board of the variant's shape with the starting position
// on it. Placements that fall outside the shape are skipped and logged.
func (c Config) CreateBoard(logger *slog.Logger) *chess.Board {
	if logger == nil {
		logger = slog.Default()
	}
	b := chess.NewBoard(c.Shape)
	for _, pl := range c.StartingPlacements() {
		if err := b.Place(pl.Coord, pl.Piece); err != nil {
			logger.Warn("skipping starting piece outside the board",
				"variant", c.Name,
				"coord", pl.Coord.String(),
				"piece", pl.Piece.String())
		}
	}
	return b
}
