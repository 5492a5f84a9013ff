// Package config provides configuration for the hexchess command.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/parallaxisjones/hex-chess/internal/errors"
)

// OutputFormat selects how game reports are written.
type OutputFormat int

const (
	TextFormat OutputFormat = iota // Human-readable report
	JSONFormat                     // One JSON document for all games
)

// String returns the name of the format.
func (f OutputFormat) String() string {
	if f == JSONFormat {
		return "json"
	}
	return "text"
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=warnings only, 1=game summaries, 2=every move

	// Variant is the default variant for move lists without a Variant tag.
	// Empty means the scripted variant if one is loaded, else Gliński.
	Variant    string
	ScriptFile string
	ListOnly   bool

	Workers int

	Output     *OutputConfig
	Replay     *ReplayConfig
	Filter     *FilterConfig
	Duplicate  *DuplicateConfig
	Annotation *AnnotationConfig

	OutputFilename string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Workers:    1,
		Output:     NewOutputConfig(),
		Replay:     NewReplayConfig(),
		Filter:     NewFilterConfig(),
		Duplicate:  NewDuplicateConfig(),
		Annotation: NewAnnotationConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the report stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log stream.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return fmt.Errorf("verbosity %d outside 0..2: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("negative worker count %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if err := c.Replay.Validate(); err != nil {
		return err
	}
	if err := c.Filter.Validate(); err != nil {
		return err
	}
	return c.Duplicate.Validate()
}

// LogLevel maps the verbosity to a slog level.
func (c *Config) LogLevel() slog.Level {
	switch {
	case c.Verbosity >= 2:
		return slog.LevelDebug
	case c.Verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Logger returns a text logger writing to LogFile at the configured level.
func (c *Config) Logger() *slog.Logger {
	w := c.LogFile
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel()}))
}
