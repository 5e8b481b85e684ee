// Package bucketer orders encoded pairs by question length for batching.
package bucketer

import (
	"context"
	"sort"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// Name is the registry name of the processor.
const Name = "length_bucket"

// Processor orders pairs by ascending question length.
// Pairs of equal length keep their relative order, so grouping the
// output with domain.GroupBuckets yields one bucket per length.
type Processor struct{}

// New creates a new length bucketer.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Process returns a reordered copy of pairs.
func (p *Processor) Process(_ context.Context, pairs []domain.EncodedPair) ([]domain.EncodedPair, error) {
	out := make([]domain.EncodedPair, len(pairs))
	copy(out, pairs)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Question) < len(out[j].Question)
	})
	return out, nil
}
