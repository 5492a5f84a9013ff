// Package matching selects replayed games by their tags and by the material
// on the board.
package matching

import (
	"fmt"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/processing"
)

// GameMatcher decides whether a replayed game is wanted.
type GameMatcher interface {
	// Match returns true if the game meets the matcher's criteria.
	Match(ga *processing.GameAnalysis) bool

	// Name describes the matcher in logs.
	Name() string
}

// MatchMode specifies how multiple matchers are combined.
type MatchMode int

const (
	// MatchAll requires every matcher to match.
	MatchAll MatchMode = iota

	// MatchAny requires at least one matcher to match.
	MatchAny
)

// CompositeMatcher combines several GameMatchers.
type CompositeMatcher struct {
	matchers []GameMatcher
	mode     MatchMode
}

// NewCompositeMatcher creates a CompositeMatcher with the given mode and matchers.
func NewCompositeMatcher(mode MatchMode, matchers ...GameMatcher) *CompositeMatcher {
	return &CompositeMatcher{
		matchers: matchers,
		mode:     mode,
	}
}

// Match implements GameMatcher. An empty composite matches in MatchAll mode
// and fails in MatchAny mode.
func (c *CompositeMatcher) Match(ga *processing.GameAnalysis) bool {
	for _, m := range c.matchers {
		if m.Match(ga) == (c.mode == MatchAny) {
			return c.mode == MatchAny
		}
	}
	return c.mode == MatchAll
}

// Name implements GameMatcher.
func (c *CompositeMatcher) Name() string {
	if len(c.matchers) == 0 {
		return "composite(empty)"
	}
	names := make([]string, len(c.matchers))
	for i, m := range c.matchers {
		names[i] = m.Name()
	}
	join := " and "
	if c.mode == MatchAny {
		join = " or "
	}
	return fmt.Sprintf("composite(%s)", strings.Join(names, join))
}

// Add adds a matcher to the composite.
func (c *CompositeMatcher) Add(m GameMatcher) {
	c.matchers = append(c.matchers, m)
}

// Len returns the number of matchers combined.
func (c *CompositeMatcher) Len() int {
	return len(c.matchers)
}
