package config

import (
	"fmt"

	"github.com/parallaxisjones/hex-chess/internal/errors"
)

// ReplayConfig holds settings for replaying move lists.
type ReplayConfig struct {
	// StopOnError abandons a game at its first rejected move
	StopOnError bool

	// MaxPlies stops a replay after this many moves (0 = no limit)
	MaxPlies int

	// Report only games that end in checkmate or stalemate
	MatchCheckmate bool
	MatchStalemate bool

	// KeepBrokenGames reports games with rejected moves
	KeepBrokenGames bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		StopOnError:     true,
		KeepBrokenGames: true,
	}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.MaxPlies < 0 {
		return fmt.Errorf("ply limit %d is negative: %w", r.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}
