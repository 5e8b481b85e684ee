package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.DatasetStore = (*DatasetStore)(nil)

// DatasetStore is an in-memory implementation of driven.DatasetStore.
// Datasets are shared by pointer and must not be modified after Save.
type DatasetStore struct {
	mu       sync.RWMutex
	datasets map[string]*domain.Dataset // by key digest
}

// NewDatasetStore creates a new in-memory dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		datasets: make(map[string]*domain.Dataset),
	}
}

// Save stores a dataset, replacing any dataset with the same key.
func (s *DatasetStore) Save(_ context.Context, ds *domain.Dataset) error {
	if ds == nil || ds.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.Key.String()] = ds
	return nil
}

// Get retrieves the dataset for a key.
func (s *DatasetStore) Get(_ context.Context, key domain.DatasetKey) (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[key.String()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ds, nil
}

// List returns summaries of all stored datasets, newest first.
func (s *DatasetStore) List(_ context.Context) ([]domain.DatasetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DatasetSummary, 0, len(s.datasets))
	for _, ds := range s.datasets {
		out = append(out, ds.Summary())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes a dataset by ID.
func (s *DatasetStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, ds := range s.datasets {
		if ds.ID == id {
			delete(s.datasets, key)
			return nil
		}
	}
	return domain.ErrNotFound
}
