package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// mockProcessor is a test processor that returns predefined pairs.
type mockProcessor struct {
	name  string
	pairs []domain.EncodedPair
	err   error
	seen  int
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, pairs []domain.EncodedPair) ([]domain.EncodedPair, error) {
	m.seen = len(pairs)
	if m.err != nil {
		return nil, m.err
	}
	if m.pairs != nil {
		return m.pairs, nil
	}
	return pairs, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Len())
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []string{"test"}, p.Names())
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	p := NewPipeline()
	in := []domain.EncodedPair{{Index: 0, Question: []int{1}}}

	out, err := p.Process(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPipeline_Process_ChainsOutputs(t *testing.T) {
	first := &mockProcessor{name: "first", pairs: []domain.EncodedPair{{Index: 7}, {Index: 8}}}
	second := &mockProcessor{name: "second"}

	p := NewPipeline(first, second)

	out, err := p.Process(context.Background(), []domain.EncodedPair{{Index: 1}})
	require.NoError(t, err)

	assert.Equal(t, 1, first.seen)
	assert.Equal(t, 2, second.seen)
	assert.Len(t, out, 2)
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	expectedErr := errors.New("processor failed")

	p := NewPipeline(&mockProcessor{name: "failing", err: expectedErr})

	_, err := p.Process(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, expectedErr))
	assert.Contains(t, err.Error(), "processor failing")
}

func TestPipeline_Process_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &mockProcessor{name: "never"}
	p := NewPipeline(proc)

	_, err := p.Process(ctx, []domain.EncodedPair{{Index: 0}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, proc.seen)
}
