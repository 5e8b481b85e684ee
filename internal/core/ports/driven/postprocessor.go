package driven

import (
	"context"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// PairProcessor transforms encoded pairs after vocabulary lookup.
// Processors are chained in a pipeline (e.g., length filtering, bucketing).
type PairProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process receives the pairs from the previous processor and returns
	// the pairs for the next one. It must not modify the input slice.
	Process(ctx context.Context, pairs []domain.EncodedPair) ([]domain.EncodedPair, error)
}

// PairPipeline chains multiple PairProcessors.
type PairPipeline interface {
	// Process runs the pairs through all processors in order.
	Process(ctx context.Context, pairs []domain.EncodedPair) ([]domain.EncodedPair, error)
}

// PairPipelineFactory builds pipelines from processor specs.
type PairPipelineFactory interface {
	// BuildPipeline creates a pipeline running the named processors in order.
	BuildPipeline(specs []domain.ProcessorSpec) (PairPipeline, error)
}
