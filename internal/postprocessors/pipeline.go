// Package postprocessors provides encoded pair processing implementations.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
	"github.com/custodia-labs/chatprep/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.PairPipeline = (*Pipeline)(nil)

// Pipeline chains multiple PairProcessors and runs them in order.
type Pipeline struct {
	processors []driven.PairProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PairProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the pairs through all processors in order.
// Each processor receives the previous processor's output.
func (p *Pipeline) Process(ctx context.Context, pairs []domain.EncodedPair) ([]domain.EncodedPair, error) {
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		before := len(pairs)
		var err error
		pairs, err = processor.Process(ctx, pairs)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
		logger.Debug("Processor %s: %d -> %d pairs", processor.Name(), before, len(pairs))
	}

	return pairs, nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PairProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}
