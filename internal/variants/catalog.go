package variants

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hex"
)

// Constructor builds a fresh variant config.
type Constructor func() Config

type entry struct {
	slug string
	ctor Constructor
}

// builtins is the catalogue in display order.
var builtins = []entry{
	{"glinski", Glinski},
	{"mccooey", McCooey},
	{"shafran", Shafran},
	{"brusky", Brusky},
	{"de-vasa", DeVasa},
	{"mini", MiniHexchess},
	{"glinski-capablanca", GlinskiCapablanca},
	{"mccooey-capablanca", McCooeyCapablanca},
}

// DefaultVariant is the slug used when none is chosen.
const DefaultVariant = "glinski"

// Registry maps variant names to constructors. Lookups build a new Config
// each time, so callers never share state through the registry.
type Registry struct {
	order []string
	ctors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Builtin returns a registry holding the built-in variants. It panics if
// the built-in table registers the same name twice.
func Builtin() *Registry {
	return mustRegistry(builtins)
}

func mustRegistry(entries []entry) *Registry {
	r := NewRegistry()
	for _, e := range entries {
		if err := r.Register(e.slug, e.ctor); err != nil {
			panic(fmt.Sprintf("variants: built-in %q: %v", e.slug, err))
		}
	}
	return r
}

// Register adds a constructor under slug. Slugs are case-insensitive and must
// not collide with a registered slug or display name.
func (r *Registry) Register(slug string, ctor Constructor) error {
	key := normalise(slug)
	if key == "" {
		return errors.Wrapf(errors.ErrInvalidConfig, "empty variant name")
	}
	if _, err := r.Lookup(slug); err == nil {
		return errors.Wrapf(errors.ErrDuplicateVariant, "variant %q", slug)
	}
	r.order = append(r.order, key)
	r.ctors[key] = ctor
	return nil
}

// Lookup builds the variant registered under name, matching either its slug
// or its display name, ignoring case.
func (r *Registry) Lookup(name string) (Config, error) {
	key := normalise(name)
	if ctor, ok := r.ctors[key]; ok {
		return r.build(key, ctor), nil
	}
	for _, slug := range r.order {
		cfg := r.build(slug, r.ctors[slug])
		if normalise(cfg.Name) == key {
			return cfg, nil
		}
	}
	return Config{}, errors.Wrapf(errors.ErrUnknownVariant, "variant %q", name)
}

func (r *Registry) build(slug string, ctor Constructor) Config {
	cfg := ctor()
	if cfg.Slug == "" {
		cfg.Slug = slug
	}
	return cfg
}

// Names returns the registered slugs in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All builds every registered variant in registration order.
func (r *Registry) All() []Config {
	out := make([]Config, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.build(slug, r.ctors[slug]))
	}
	return out
}

// Lookup finds a built-in variant by slug or display name.
func Lookup(name string) (Config, error) {
	return Builtin().Lookup(name)
}

// Names returns the built-in slugs.
func Names() []string {
	return Builtin().Names()
}

// All builds every built-in variant.
func All() []Config {
	return Builtin().All()
}

// normalise folds case and accents, so "glinski's chess" finds "Gliński's Chess".
func normalise(name string) string {
	name = strings.TrimSpace(name)
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, name); err == nil {
		name = folded
	}
	return strings.ToLower(name)
}

// mirrored places White's pieces by cell name and Black's on the mirrored cells.
func mirrored(white map[string]chess.Kind) map[hex.Coord]chess.Piece {
	out := make(map[hex.Coord]chess.Piece, 2*len(white))
	for name, k := range white {
		c := hex.MustCell(name)
		out[c] = chess.W(k)
		out[c.Mirror()] = chess.B(k)
	}
	return out
}

func glinskiSetup() map[string]chess.Kind {
	return map[string]chess.Kind{
		"f1": chess.Bishop, "f2": chess.Bishop, "f3": chess.Bishop,
		"e1": chess.Queen, "g1": chess.King,
		"d1": chess.Knight, "h1": chess.Knight,
		"c1": chess.Rook, "i1": chess.Rook,
		"b1": chess.Pawn, "c2": chess.Pawn, "d3": chess.Pawn, "e4": chess.Pawn, "f5": chess.Pawn,
		"g4": chess.Pawn, "h3": chess.Pawn, "i2": chess.Pawn, "k1": chess.Pawn,
	}
}

func mccooeySetup() map[string]chess.Kind {
	return map[string]chess.Kind{
		"f1": chess.Bishop, "f2": chess.Bishop, "f3": chess.Bishop,
		"e1": chess.Queen, "g1": chess.King,
		"e2": chess.Knight, "g2": chess.Knight,
		"d1": chess.Rook, "h1": chess.Rook,
		"c1": chess.Pawn, "d2": chess.Pawn, "e3": chess.Pawn, "f4": chess.Pawn,
		"g3": chess.Pawn, "h2": chess.Pawn, "i1": chess.Pawn,
	}
}

// Glinski is Gliński's hexagonal chess on the 91-cell board.
func Glinski() Config {
	return Config{
		Name:        "Gliński's Chess",
		Slug:        "glinski",
		Description: "91 cells, regular hexagon",
		Shape:       hex.RegularShape(5),
		Placements:  mirrored(glinskiSetup()),
		Pawn:        PawnMovement{Mode: StandardPawns},
		Rules:       []SpecialRule{{Kind: EnPassant}},
	}
}

// McCooey is McCooey's hexagonal chess on the 91-cell board.
func McCooey() Config {
	return Config{
		Name:        "McCooey's Chess",
		Slug:        "mccooey",
		Description: "91 cells, regular hexagon",
		Shape:       hex.RegularShape(5),
		Placements:  mirrored(mccooeySetup()),
		Pawn:        PawnMovement{Mode: StandardPawns},
		Rules:       []SpecialRule{{Kind: EnPassant}},
	}
}

func irregular(name, slug string) Config {
	return Config{
		Name:        name,
		Slug:        slug,
		Description: "Irregular board layout (not yet playable)",
		Shape:       hex.IrregularShape(),
		Placements:  map[hex.Coord]chess.Piece{},
		Pawn:        PawnMovement{Mode: StandardPawns},
	}
}

// Shafran is catalogued without a board layout.
func Shafran() Config {
	return irregular("Shafran's Chess", "shafran")
}

// Brusky is catalogued without a board layout.
func Brusky() Config {
	return irregular("Brusky's Chess", "brusky")
}

// DeVasa is catalogued without a board layout.
func DeVasa() Config {
	return irregular("De Vasa's Chess", "de-vasa")
}

// MiniHexchess is played on the 37-cell board. Some back-rank pieces of its
// historical layout fall outside that board and are skipped by CreateBoard.
func MiniHexchess() Config {
	p := make(map[hex.Coord]chess.Piece)
	for q := -2; q <= 2; q++ {
		for r := 1; r <= 2; r++ {
			if c := hex.New(q, r); c.InHexagon(2) {
				p[c] = chess.W(chess.Pawn)
			}
		}
		for r := -2; r <= -1; r++ {
			if c := hex.New(q, r); c.InHexagon(2) {
				p[c] = chess.B(chess.Pawn)
			}
		}
	}

	p[hex.New(0, 3)] = chess.W(chess.King)
	p[hex.New(1, 3)] = chess.W(chess.Queen)
	p[hex.New(-1, 3)] = chess.W(chess.Bishop)
	p[hex.New(2, 3)] = chess.W(chess.Knight)
	p[hex.New(-2, 3)] = chess.W(chess.Rook)

	p[hex.New(0, -3)] = chess.B(chess.King)
	p[hex.New(-1, -3)] = chess.B(chess.Queen)
	p[hex.New(1, -3)] = chess.B(chess.Bishop)
	p[hex.New(-2, -3)] = chess.B(chess.Knight)
	p[hex.New(2, -3)] = chess.B(chess.Rook)

	return Config{
		Name:        "Mini Hexchess",
		Slug:        "mini",
		Description: "37 cells, small hexagon",
		Shape:       hex.SmallShape(),
		Placements:  p,
		Pawn:        PawnMovement{Mode: StandardPawns},
	}
}

// GlinskiCapablanca adds an Archbishop and a Chancellor per side to Gliński's setup.
func GlinskiCapablanca() Config {
	setup := glinskiSetup()
	setup["d2"] = chess.Archbishop
	setup["h2"] = chess.Chancellor

	cfg := Glinski()
	cfg.Name = "Gliński-Capablanca Chess"
	cfg.Slug = "glinski-capablanca"
	cfg.Description = "91 cells with fairy pieces"
	cfg.Placements = mirrored(setup)
	return cfg
}

// McCooeyCapablanca replaces McCooey's knights with an Archbishop and a Chancellor.
func McCooeyCapablanca() Config {
	setup := mccooeySetup()
	setup["e2"] = chess.Archbishop
	setup["g2"] = chess.Chancellor

	cfg := McCooey()
	cfg.Name = "McCooey-Capablanca Chess"
	cfg.Slug = "mccooey-capablanca"
	cfg.Description = "91 cells with fairy pieces"
	cfg.Placements = mirrored(setup)
	return cfg
}

