// Package variantscript loads variant definitions written in Lua.
//
// A script describes one variant by assigning a table to the global
// "variant" (or by returning it):
//
//	variant = {
//	  name = "Triangle",
//	  shape = { kind = "irregular", cells = { "f5", {0, 0}, {1, -1} } },
//	  pieces = { K = { "f5" }, r = { {1, -1} } },
//	  mirror = false,
//	  pawns = "standard",
//	  rules = { "castling" },
//	}
//
// Cells are either Gliński names ("f5"), axial strings ("0,-1") or {q, r}
// pairs. The helper cell("f5") returns the {q, r} pair of a named cell.
package variantscript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/hex"
	"github.com/parallaxisjones/hex-chess/internal/variants"
)

// Loader runs variant scripts in a sandboxed Lua state.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger routes script print() output and load events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and runs the script at path. The file name without its
// extension is the default slug.
func (l *Loader) LoadFile(ctx context.Context, path string) (variants.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return variants.Config{}, errors.Wrapf(errors.ErrScript, "open %s: %v", path, err)
	}
	defer f.Close()
	return l.Load(ctx, path, f)
}

// Load runs the script read from r. name identifies the script in errors and
// supplies the default slug.
func (l *Loader) Load(ctx context.Context, name string, r io.Reader) (variants.Config, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return variants.Config{}, errors.Wrapf(errors.ErrScript, "read %s: %v", name, err)
	}

	L := l.newState(name)
	defer L.Close()
	L.SetContext(ctx)

	fn, err := L.Load(bytes.NewReader(src), name)
	if err != nil {
		return variants.Config{}, errors.Wrapf(errors.ErrScript, "%v", err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return variants.Config{}, errors.Wrapf(errors.ErrScript, "%v", err)
	}

	def := L.GetGlobal("variant")
	if def.Type() == lua.LTNil && L.GetTop() > 0 {
		def = L.Get(-1)
	}
	tbl, ok := def.(*lua.LTable)
	if !ok {
		return variants.Config{}, errors.Wrapf(errors.ErrScript, "%s: no variant table defined", name)
	}

	cfg, err := decodeVariant(tbl, defaultSlug(name))
	if err != nil {
		return variants.Config{}, errors.Wrapf(errors.ErrScript, "%s: %v", name, err)
	}

	l.logger.Debug("variant script loaded",
		"script", name,
		"variant", cfg.Name,
		"shape", cfg.Shape.String(),
		"pieces", len(cfg.Placements))
	return cfg, nil
}

// Register loads the script at path and adds the variant to reg under its
// slug.
func (l *Loader) Register(ctx context.Context, reg *variants.Registry, path string) (variants.Config, error) {
	cfg, err := l.LoadFile(ctx, path)
	if err != nil {
		return variants.Config{}, err
	}
	if err := reg.Register(cfg.Slug, func() variants.Config { return cfg.Clone() }); err != nil {
		return variants.Config{}, err
	}
	return cfg, nil
}

// newState opens only the libraries a data script needs: no io, os or
// module loading.
func (l *Loader) newState(name string) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			panic(fmt.Sprintf("opening lua %s library: %v", lib.name, err))
		}
	}
	for _, unsafe := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(unsafe, lua.LNil)
	}

	L.SetGlobal("cell", L.NewFunction(luaCell))
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		l.logger.Info("variant script output", "script", name, "msg", strings.Join(parts, "\t"))
		return 0
	}))
	return L
}

// luaCell implements cell(name), returning {q, r}.
func luaCell(L *lua.LState) int {
	c, err := hex.ParseCell(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(coordTable(L, c))
	return 1
}

func coordTable(L *lua.LState, c hex.Coord) *lua.LTable {
	t := L.CreateTable(2, 0)
	t.RawSetInt(1, lua.LNumber(c.Q))
	t.RawSetInt(2, lua.LNumber(c.R))
	return t
}

func defaultSlug(name string) string {
	base := filepath.Base(name)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
