package domain

import "fmt"

// Default pipeline settings.
const (
	DefaultThreshold         = 20
	DefaultMinQuestionLength = 1
	DefaultMaxQuestionLength = 25
	DefaultLinesPath         = "dataset/movie_lines.txt"
	DefaultConversationsPath = "dataset/movie_conversations.txt"
)

// PipelineSettings holds the inputs and knobs for one pipeline run.
type PipelineSettings struct {
	// Threshold is the minimum combined frequency a token needs
	// to enter the vocabularies.
	Threshold int

	// MinQuestionLength is the shortest question kept in buckets.
	MinQuestionLength int

	// MaxQuestionLength is the longest question kept in buckets.
	MaxQuestionLength int

	// LinesPath is the utterance file.
	LinesPath string

	// ConversationsPath is the thread file.
	ConversationsPath string

	// CacheEnabled controls whether prepared datasets are stored and reused.
	CacheEnabled bool
}

// DefaultPipelineSettings returns the default settings.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		Threshold:         DefaultThreshold,
		MinQuestionLength: DefaultMinQuestionLength,
		MaxQuestionLength: DefaultMaxQuestionLength,
		LinesPath:         DefaultLinesPath,
		ConversationsPath: DefaultConversationsPath,
		CacheEnabled:      true,
	}
}

// Validate checks the settings before any processing begins.
func (s PipelineSettings) Validate() error {
	if s.Threshold < 0 {
		return fmt.Errorf("%w: threshold must be >= 0 (got %d)", ErrInvalidConfiguration, s.Threshold)
	}
	if s.MinQuestionLength < 1 {
		return fmt.Errorf("%w: min question length must be >= 1 (got %d)",
			ErrInvalidConfiguration, s.MinQuestionLength)
	}
	if s.MaxQuestionLength < s.MinQuestionLength {
		return fmt.Errorf("%w: max question length %d is below min %d",
			ErrInvalidConfiguration, s.MaxQuestionLength, s.MinQuestionLength)
	}
	if s.LinesPath == "" {
		return fmt.Errorf("%w: lines path is empty", ErrInvalidConfiguration)
	}
	if s.ConversationsPath == "" {
		return fmt.Errorf("%w: conversations path is empty", ErrInvalidConfiguration)
	}
	return nil
}

// ProcessorSpec names a pair processor and its config.
type ProcessorSpec struct {
	Name   string
	Config map[string]any
}

// ProcessorSpecs returns the post-processing chain for these settings.
func (s PipelineSettings) ProcessorSpecs() []ProcessorSpec {
	return []ProcessorSpec{
		{
			Name: "length_filter",
			Config: map[string]any{
				"min_length": s.MinQuestionLength,
				"max_length": s.MaxQuestionLength,
			},
		},
		{Name: "length_bucket"},
	}
}
