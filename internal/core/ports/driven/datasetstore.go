package driven

import (
	"context"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// DatasetStore persists prepared datasets keyed by their inputs.
type DatasetStore interface {
	// Save stores a dataset, replacing any dataset with the same key.
	Save(ctx context.Context, ds *domain.Dataset) error

	// Get retrieves the dataset for a key.
	// Returns domain.ErrNotFound if none is stored.
	Get(ctx context.Context, key domain.DatasetKey) (*domain.Dataset, error)

	// List returns summaries of all stored datasets, newest first.
	List(ctx context.Context) ([]domain.DatasetSummary, error)

	// Delete removes a dataset by ID.
	Delete(ctx context.Context, id string) error
}
