package driving

import (
	"context"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// PrepareRequest describes one pipeline run.
type PrepareRequest struct {
	// Settings are the run's inputs and knobs.
	Settings domain.PipelineSettings

	// Refresh rebuilds the dataset even when a cached copy exists.
	Refresh bool
}

// DatasetService turns a dialogue corpus into encoded, bucketed pairs.
type DatasetService interface {
	// Prepare runs the pipeline, or returns a cached dataset for the same inputs.
	Prepare(ctx context.Context, req PrepareRequest) (*domain.Dataset, error)

	// Encode normalises text and maps it through a dataset vocabulary.
	// Answer-side text is terminated with <EOS>.
	Encode(ds *domain.Dataset, side domain.Side, text string) ([]int, error)

	// Decode maps IDs back to text through a dataset vocabulary.
	Decode(ds *domain.Dataset, side domain.Side, ids []int) (string, error)

	// List returns summaries of cached datasets.
	List(ctx context.Context) ([]domain.DatasetSummary, error)

	// Clear removes all cached datasets and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
