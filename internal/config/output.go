package config

// OutputConfig holds settings related to report formatting.
type OutputConfig struct {
	// Format selects text or JSON reports
	Format OutputFormat

	// MaxLineLength wraps the move list in text reports
	MaxLineLength uint

	// ShowBoard lists the pieces of the final position
	ShowBoard bool

	// ShowLegal lists the legal moves of the side to move at the end
	ShowLegal bool

	// Notation writes cells as Gliński names where the board allows it
	Notation bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:        TextFormat,
		MaxLineLength: 80,
		Notation:      true,
	}
}
