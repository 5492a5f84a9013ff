package matching

import (
	"os"

	"github.com/parallaxisjones/hex-chess/internal/config"
	"github.com/parallaxisjones/hex-chess/internal/errors"
)

// NewGameFilter builds the matcher described by cfg. It returns nil when no
// criterion is set.
func NewGameFilter(cfg *config.FilterConfig) (GameMatcher, error) {
	if cfg == nil || !cfg.Active() {
		return nil, nil
	}

	mode := MatchAll
	if cfg.MatchAny {
		mode = MatchAny
	}
	composite := NewCompositeMatcher(mode)

	tags := NewTagMatcher()
	tags.SetMatchAll(!cfg.MatchAny)
	tags.SetSubstringMatch(cfg.TagSubstring)
	if cfg.TagFile != "" {
		if err := loadTagFile(tags, cfg.TagFile); err != nil {
			return nil, err
		}
	}
	for _, line := range cfg.Tags {
		if err := tags.ParseCriterion(line); err != nil {
			return nil, err
		}
	}
	if cfg.Player != "" {
		tags.AddPlayerCriterion(cfg.Player)
	}
	if tags.CriteriaCount() > 0 {
		composite.Add(tags)
	}

	if cfg.Material != "" {
		mm, err := NewMaterialMatcher(cfg.Material, cfg.MaterialExact)
		if err != nil {
			return nil, err
		}
		composite.Add(mm)
	}
	if composite.Len() == 0 {
		return nil, nil
	}
	return composite, nil
}

func loadTagFile(tm *TagMatcher, filename string) error {
	file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "tag file: %v", err)
	}
	defer file.Close()

	if err := tm.LoadCriteria(file); err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "tag file %s: %v", filename, err)
	}
	return nil
}
