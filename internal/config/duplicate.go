package config

import (
	"fmt"
	"io"

	"github.com/parallaxisjones/hex-chess/internal/errors"
)

// DuplicateConfig holds settings for duplicate game detection.
type DuplicateConfig struct {
	// Suppress drops games whose final position was already reported
	Suppress bool

	// Exact compares full position hashes as well as the weak hash
	Exact bool

	// MaxGames bounds the detector's memory (0 = unbounded)
	MaxGames int

	// DuplicateFile receives the reports of suppressed games
	DuplicateFile io.Writer
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{
		Exact: true,
	}
}

// Validate checks that the duplicate configuration is valid.
func (d *DuplicateConfig) Validate() error {
	if d.MaxGames < 0 {
		return fmt.Errorf("duplicate table size %d is negative: %w", d.MaxGames, errors.ErrInvalidConfig)
	}
	return nil
}
