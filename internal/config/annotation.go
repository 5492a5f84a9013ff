package config

// AnnotationConfig holds settings for annotating reported moves.
type AnnotationConfig struct {
	AddStates      bool // Mark moves that give check (+) or mate (#)
	AddHashes      bool // Add the position hash after each move
	AddPlyCount    bool // Add a PlyCount line to text reports
	AddRepetitions bool // Report the highest repetition count
}

// NewAnnotationConfig creates an AnnotationConfig with default values.
func NewAnnotationConfig() *AnnotationConfig {
	return &AnnotationConfig{
		AddStates: true,
	}
}
