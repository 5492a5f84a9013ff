package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithVariant sets the default variant.
func (b *ConfigBuilder) WithVariant(name string) *ConfigBuilder {
	b.cfg.Variant = name
	return b
}

// WithScript sets the Lua variant script to load.
func (b *ConfigBuilder) WithScript(path string) *ConfigBuilder {
	b.cfg.ScriptFile = path
	return b
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	if enabled {
		b.cfg.Output.Format = JSONFormat
	} else {
		b.cfg.Output.Format = TextFormat
	}
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithBoard enables the final position listing.
func (b *ConfigBuilder) WithBoard(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowBoard = enabled
	return b
}

// WithLegalMoves enables the legal move listing.
func (b *ConfigBuilder) WithLegalMoves(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowLegal = enabled
	return b
}

// WithStopOnError controls whether a game is abandoned at its first bad move.
func (b *ConfigBuilder) WithStopOnError(stop bool) *ConfigBuilder {
	b.cfg.Replay.StopOnError = stop
	return b
}

// WithPlyLimit stops replays after n moves.
func (b *ConfigBuilder) WithPlyLimit(n int) *ConfigBuilder {
	b.cfg.Replay.MaxPlies = n
	return b
}

// WithCheckmateFilter enables checkmate-only filtering.
func (b *ConfigBuilder) WithCheckmateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Replay.MatchCheckmate = enabled
	return b
}

// WithStalemateFilter enables stalemate-only filtering.
func (b *ConfigBuilder) WithStalemateFilter(enabled bool) *ConfigBuilder {
	b.cfg.Replay.MatchStalemate = enabled
	return b
}

// WithTagCriterion adds a tag criterion such as `Event = "Club night"`.
func (b *ConfigBuilder) WithTagCriterion(criterion string) *ConfigBuilder {
	b.cfg.Filter.Tags = append(b.cfg.Filter.Tags, criterion)
	return b
}

// WithMaterial selects games whose board holds the given material.
func (b *ConfigBuilder) WithMaterial(pattern string, exact bool) *ConfigBuilder {
	b.cfg.Filter.Material = pattern
	b.cfg.Filter.MaterialExact = exact
	return b
}

// WithDuplicateSuppression enables duplicate suppression.
func (b *ConfigBuilder) WithDuplicateSuppression(enabled bool) *ConfigBuilder {
	b.cfg.Duplicate.Suppress = enabled
	return b
}

// WithHashComments adds the position hash after each move.
func (b *ConfigBuilder) WithHashComments(enabled bool) *ConfigBuilder {
	b.cfg.Annotation.AddHashes = enabled
	return b
}

// WithWorkers sets the number of replay workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
