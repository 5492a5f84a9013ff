package engine

import (
	"log/slog"

	"github.com/parallaxisjones/hex-chess/internal/chess"
)

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for game events. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithSideToMove sets who moves first. The default is White.
func WithSideToMove(c chess.Colour) Option {
	return func(g *Game) {
		g.toMove = c
	}
}
