package variantscript

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/hex"
	"github.com/parallaxisjones/hex-chess/internal/parser"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

func decodeVariant(t *lua.LTable, slug string) (variants.Config, error) {
	cfg := variants.Config{
		Name:        stringField(t, "name"),
		Slug:        stringField(t, "slug"),
		Description: stringField(t, "description"),
	}
	if cfg.Name == "" {
		return cfg, fmt.Errorf("variant has no name")
	}
	if cfg.Slug == "" {
		cfg.Slug = slug
	}

	shape, err := decodeShape(t.RawGetString("shape"))
	if err != nil {
		return cfg, fmt.Errorf("shape: %w", err)
	}
	cfg.Shape = shape

	placements, err := decodePieces(t.RawGetString("pieces"), lua.LVAsBool(t.RawGetString("mirror")))
	if err != nil {
		return cfg, fmt.Errorf("pieces: %w", err)
	}
	cfg.Placements = placements

	if cfg.Pawn, err = decodePawns(t.RawGetString("pawns")); err != nil {
		return cfg, fmt.Errorf("pawns: %w", err)
	}
	if cfg.Rules, err = decodeRules(t.RawGetString("rules")); err != nil {
		return cfg, fmt.Errorf("rules: %w", err)
	}
	return cfg, nil
}

// decodeShape accepts "small", "regular" (radius 5), a radius number, or a
// table with kind, radius and cells fields. Missing means a radius-5 board.
func decodeShape(v lua.LValue) (hex.Shape, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return hex.RegularShape(hex.NotationRadius), nil
	case lua.LNumber:
		return regular(int(v))
	case lua.LString:
		return namedShape(string(v), hex.NotationRadius)
	case *lua.LTable:
		kind := strings.ToLower(stringField(v, "kind"))
		radius := hex.NotationRadius
		if n, ok := v.RawGetString("radius").(lua.LNumber); ok {
			radius = int(n)
		}
		if kind == "irregular" || (kind == "" && v.RawGetString("cells") != lua.LNil) {
			cells, err := decodeCells(v.RawGetString("cells"))
			if err != nil {
				return hex.Shape{}, err
			}
			if len(cells) == 0 {
				return hex.Shape{}, fmt.Errorf("irregular shape has no cells")
			}
			return hex.IrregularShape(cells...), nil
		}
		return namedShape(kind, radius)
	}
	return hex.Shape{}, fmt.Errorf("unexpected %s", v.Type())
}

func namedShape(kind string, radius int) (hex.Shape, error) {
	switch strings.ToLower(kind) {
	case "", "regular":
		return regular(radius)
	case "small":
		return hex.SmallShape(), nil
	}
	return hex.Shape{}, fmt.Errorf("unknown shape kind %q", kind)
}

func regular(radius int) (hex.Shape, error) {
	if radius < 1 {
		return hex.Shape{}, fmt.Errorf("radius %d must be at least 1", radius)
	}
	return hex.RegularShape(radius), nil
}

// decodePieces reads a table of piece symbol to list of cells. With mirror
// set, every White piece also gets a Black twin on the mirrored cell.
func decodePieces(v lua.LValue, mirror bool) (map[hex.Coord]chess.Piece, error) {
	out := make(map[hex.Coord]chess.Piece)
	if v == lua.LNil {
		return out, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("want a table, got %s", v.Type())
	}

	put := func(c hex.Coord, p chess.Piece) error {
		if prev, taken := out[c]; taken {
			return fmt.Errorf("cell %v holds both %v and %v", c, prev, p)
		}
		out[c] = p
		return nil
	}

	var err error
	t.ForEach(func(k, cells lua.LValue) {
		if err != nil {
			return
		}
		sym := lua.LVAsString(k)
		if len(sym) != 1 {
			err = fmt.Errorf("piece key %q is not a single symbol", sym)
			return
		}
		p, ok := chess.ParseSymbol(sym[0])
		if !ok {
			err = fmt.Errorf("unknown piece symbol %q", sym)
			return
		}
		var coords []hex.Coord
		if coords, err = decodeCells(cells); err != nil {
			err = fmt.Errorf("%s: %w", sym, err)
			return
		}
		for _, c := range coords {
			if err = put(c, p); err != nil {
				return
			}
			if mirror && p.Colour == chess.White {
				if err = put(c.Mirror(), chess.B(p.Kind)); err != nil {
					return
				}
			}
		}
	})
	return out, err
}

// decodeCells reads an array of cells.
func decodeCells(v lua.LValue) ([]hex.Coord, error) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("want a list of cells, got %s", v.Type())
	}
	out := make([]hex.Coord, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		c, err := decodeCell(t.RawGetInt(i))
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeCell(v lua.LValue) (hex.Coord, error) {
	switch v := v.(type) {
	case lua.LString:
		return parser.ParseCoord(string(v))
	case *lua.LTable:
		q, qok := v.RawGetInt(1).(lua.LNumber)
		r, rok := v.RawGetInt(2).(lua.LNumber)
		if !qok || !rok {
			return hex.Coord{}, fmt.Errorf("want {q, r}")
		}
		return hex.New(int(q), int(r)), nil
	}
	return hex.Coord{}, fmt.Errorf("unexpected %s", v.Type())
}

func decodePawns(v lua.LValue) (variants.PawnMovement, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return variants.PawnMovement{Mode: variants.StandardPawns}, nil
	case lua.LString:
		return pawnMode(string(v))
	case *lua.LTable:
		pm, err := pawnMode(stringField(v, "mode"))
		if err != nil {
			return pm, err
		}
		if dirs := v.RawGetString("directions"); dirs != lua.LNil {
			if pm.Directions, err = decodeCells(dirs); err != nil {
				return pm, fmt.Errorf("directions: %w", err)
			}
		}
		return pm, nil
	}
	return variants.PawnMovement{}, fmt.Errorf("unexpected %s", v.Type())
}

func pawnMode(s string) (variants.PawnMovement, error) {
	switch strings.ToLower(s) {
	case "", "standard":
		return variants.PawnMovement{Mode: variants.StandardPawns}, nil
	case "three-direction", "mccooey":
		return variants.PawnMovement{Mode: variants.ThreeDirectionPawns}, nil
	case "custom":
		return variants.PawnMovement{Mode: variants.CustomPawns}, nil
	}
	return variants.PawnMovement{}, fmt.Errorf("unknown pawn mode %q", s)
}

func decodeRules(v lua.LValue) ([]variants.SpecialRule, error) {
	if v == lua.LNil {
		return nil, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("want a list of rule names, got %s", v.Type())
	}
	var out []variants.SpecialRule
	for i := 1; i <= t.Len(); i++ {
		name, ok := t.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("rule %d is not a string", i)
		}
		switch strings.ToLower(strings.ReplaceAll(string(name), "-", " ")) {
		case "en passant", "enpassant":
			out = append(out, variants.SpecialRule{Kind: variants.EnPassant})
		case "castling":
			out = append(out, variants.SpecialRule{Kind: variants.Castling})
		default:
			out = append(out, variants.SpecialRule{Kind: variants.CustomRule, Name: string(name)})
		}
	}
	return out, nil
}

func stringField(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}
