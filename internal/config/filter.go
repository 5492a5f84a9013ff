package config

import (
	"fmt"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/errors"
)

// FilterConfig holds settings for selecting games by tag and material.
type FilterConfig struct {
	// TagFile holds one criterion per line, e.g. `Round >= "3"`.
	TagFile string
	// Tags are criteria given directly.
	Tags []string
	// Player matches either the White or the Black tag.
	Player string
	// TagSubstring makes = criteria match anywhere in the value.
	TagSubstring bool

	// Material is a pattern such as "QR:qn", White's pieces before the colon.
	Material      string
	MaterialExact bool

	// MatchAny keeps games meeting any criterion instead of all of them.
	MatchAny bool
}

// NewFilterConfig creates a FilterConfig with default values.
// All filters are disabled by default.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

// Active reports whether any criterion is set.
func (f *FilterConfig) Active() bool {
	return f.TagFile != "" || len(f.Tags) > 0 || f.Player != "" || f.Material != ""
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	if strings.Count(f.Material, ":") > 1 {
		return fmt.Errorf("material pattern %q has more than one colon: %w", f.Material, errors.ErrInvalidConfig)
	}
	return nil
}
