package variantscript

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/parallaxisjones/hex-chess/internal/chess"
	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hex"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

func quietLoader() *Loader {
	return NewLoader(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func load(t *testing.T, src string) variants.Config {
	t.Helper()
	cfg, err := quietLoader().Load(context.Background(), "test.lua", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestLoadIrregularVariant(t *testing.T) {
	cfg := load(t, `
variant = {
  name = "Triangle",
  description = "three cells",
  shape = { kind = "irregular", cells = { {0, 0}, {1, -1}, "0,-1" } },
  pieces = { K = { {0, 0} }, r = { cell("f7") } },
  rules = { "castling", "en-passant", "sudden death" },
}
`)
	if cfg.Name != "Triangle" || cfg.Slug != "test" {
		t.Errorf("Name, Slug = %q, %q", cfg.Name, cfg.Slug)
	}
	if cfg.Shape.Kind != hex.Irregular {
		t.Errorf("Shape.Kind = %v, want Irregular", cfg.Shape.Kind)
	}
	want := []hex.Coord{hex.New(0, -1), hex.New(0, 0), hex.New(1, -1)}
	if diff := cmp.Diff(want, cfg.Shape.ValidCoords()); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}

	wantPieces := map[hex.Coord]chess.Piece{
		hex.New(0, 0):  chess.W(chess.King),
		hex.New(0, -1): chess.B(chess.Rook),
	}
	if diff := cmp.Diff(wantPieces, cfg.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}

	wantRules := []variants.SpecialRule{
		{Kind: variants.Castling},
		{Kind: variants.EnPassant},
		{Kind: variants.CustomRule, Name: "sudden death"},
	}
	if diff := cmp.Diff(wantRules, cfg.Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Playable() {
		t.Error("scripted irregular variant is not playable")
	}
}

func TestLoadMirroredVariant(t *testing.T) {
	cfg := load(t, `
return {
  name = "Kings and Rooks",
  slug = "kr",
  shape = "regular",
  mirror = true,
  pieces = { K = { "g1" }, R = { "c1", "i1" } },
  pawns = { mode = "custom", directions = { {0, -1} } },
}
`)
	if cfg.Slug != "kr" {
		t.Errorf("Slug = %q, want kr", cfg.Slug)
	}
	if cfg.Shape.Kind != hex.Regular || cfg.Shape.Radius != hex.NotationRadius {
		t.Errorf("Shape = %v", cfg.Shape)
	}
	if len(cfg.Placements) != 6 {
		t.Fatalf("len(Placements) = %d, want 6", len(cfg.Placements))
	}
	if p := cfg.Placements[hex.MustCell("g10")]; p != chess.B(chess.King) {
		t.Errorf("g10 = %v, want Black King", p)
	}
	if cfg.Pawn.Mode != variants.CustomPawns || len(cfg.Pawn.Directions) != 1 {
		t.Errorf("Pawn = %+v", cfg.Pawn)
	}
}

func TestLoadShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape string
		cells int
	}{
		{"default", "nil", 91},
		{"radius number", "2", 19},
		{"small", `"small"`, 37},
		{"table", `{ kind = "regular", radius = 1 }`, 7},
		{"cells only", `{ cells = { {0, 0} } }`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := load(t, `variant = { name = "x", shape = `+tt.shape+` }`)
			if got := len(cfg.Shape.ValidCoords()); got != tt.cells {
				t.Errorf("cells = %d, want %d", got, tt.cells)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax error", `variant = {`, ""},
		{"runtime error", `error("boom")`, "boom"},
		{"no table", `x = 1`, "no variant table"},
		{"no name", `variant = {}`, "no name"},
		{"bad shape", `variant = { name = "x", shape = "square" }`, "unknown shape kind"},
		{"zero radius", `variant = { name = "x", shape = 0 }`, "at least 1"},
		{"empty irregular", `variant = { name = "x", shape = { kind = "irregular", cells = {} } }`, "no cells"},
		{"bad symbol", `variant = { name = "x", pieces = { Z = { "f1" } } }`, "unknown piece symbol"},
		{"bad cell", `variant = { name = "x", pieces = { K = { "j1" } } }`, "K"},
		{"double booked", `variant = { name = "x", mirror = true, pieces = { K = { "f1" }, k = { "f11" } } }`, "holds both"},
		{"bad pawns", `variant = { name = "x", pawns = "sideways" }`, "unknown pawn mode"},
		{"bad cell helper", `variant = { name = "x", pieces = { K = { cell("z9") } } }`, "bad argument"},
		{"no io library", `io.open("/etc/passwd")`, ""},
		{"no require", `require("os")`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietLoader().Load(context.Background(), "bad.lua", strings.NewReader(tt.src))
			if !errors.Is(err, errors.ErrScript) {
				t.Fatalf("Load() error = %v, want ErrScript", err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := quietLoader().Load(ctx, "spin.lua", strings.NewReader(`while true do end`))
	if !errors.Is(err, errors.ErrScript) {
		t.Fatalf("Load() error = %v, want ErrScript", err)
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	_, err := l.Load(context.Background(), "p.lua", strings.NewReader(`print("hello", 42) variant = { name = "x" }`))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "hello\t42") && !strings.Contains(buf.String(), `hello\t42`) {
		t.Errorf("log output %q does not contain the printed text", buf.String())
	}
}

func TestRegister(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Tiny.lua")
	src := `variant = { name = "Tiny Chess", shape = 1, pieces = { K = { {0, 1} }, k = { {0, -1} } } }`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := variants.Builtin()
	cfg, err := quietLoader().Register(context.Background(), reg, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Slug != "tiny" {
		t.Errorf("Slug = %q, want tiny", cfg.Slug)
	}

	got, err := reg.Lookup("Tiny Chess")
	if err != nil {
		t.Fatal(err)
	}
	got.Placements[hex.New(0, 0)] = chess.W(chess.Queen)
	again, _ := reg.Lookup("tiny")
	if len(again.Placements) != 2 {
		t.Error("registry handed out a shared placements map")
	}

	_, err = quietLoader().Register(context.Background(), reg, path)
	if !errors.Is(err, errors.ErrDuplicateVariant) {
		t.Errorf("second Register() error = %v, want ErrDuplicateVariant", err)
	}

	_, err = quietLoader().LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	if !errors.Is(err, errors.ErrScript) {
		t.Errorf("LoadFile(missing) error = %v, want ErrScript", err)
	}
}
