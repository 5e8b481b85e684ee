// Package lengthfilter drops pairs whose question length is out of range.
package lengthfilter

import (
	"context"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// Name is the registry name of the processor.
const Name = "length_filter"

// DefaultMinLength is the shortest question kept by default.
const DefaultMinLength = 1

// DefaultMaxLength is the longest question kept by default.
const DefaultMaxLength = 25

// Processor keeps pairs whose question length lies in [min, max].
type Processor struct {
	minLength int
	maxLength int
}

// Option configures the length filter.
type Option func(*Processor)

// WithMinLength sets the shortest question kept.
func WithMinLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.minLength = n
		}
	}
}

// WithMaxLength sets the longest question kept.
func WithMaxLength(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxLength = n
		}
	}
}

// New creates a new length filter with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		minLength: DefaultMinLength,
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// MinLength returns the shortest question kept.
func (p *Processor) MinLength() int {
	return p.minLength
}

// MaxLength returns the longest question kept.
func (p *Processor) MaxLength() int {
	return p.maxLength
}

// Process returns the in-range pairs in their input order.
func (p *Processor) Process(_ context.Context, pairs []domain.EncodedPair) ([]domain.EncodedPair, error) {
	kept := make([]domain.EncodedPair, 0, len(pairs))
	for _, pair := range pairs {
		n := len(pair.Question)
		if n >= p.minLength && n <= p.maxLength {
			kept = append(kept, pair)
		}
	}
	return kept, nil
}
