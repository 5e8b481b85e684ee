package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

func TestCacheList(t *testing.T) {
	ds := &mockDatasetService{summaries: []domain.DatasetSummary{{
		ID:        "ds-1",
		Key:       domain.DatasetKey{Threshold: 20, MinQuestionLength: 1, MaxQuestionLength: 25},
		Stats:     domain.DatasetStats{BucketedPairs: 42},
		CreatedAt: time.Now(),
	}}}
	setupServices(t, ds, nil)

	out, err := executeCommand(t, "cache", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Cached datasets (1):")
	assert.Contains(t, out, "ds-1")
	assert.Contains(t, out, "threshold=20  length=1-25  pairs=42")
}

func TestCacheList_Empty(t *testing.T) {
	setupServices(t, &mockDatasetService{}, nil)

	out, err := executeCommand(t, "cache", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No cached datasets.")
}

func TestCacheClear(t *testing.T) {
	ds := &mockDatasetService{summaries: []domain.DatasetSummary{{ID: "a"}, {ID: "b"}}}
	setupServices(t, ds, nil)

	out, err := executeCommand(t, "cache", "clear")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 cached dataset(s).")
	assert.Equal(t, 2, ds.cleared)
}

func TestCacheCmd_NotConfigured(t *testing.T) {
	setupServices(t, nil, nil)

	_, err := executeCommand(t, "cache", "clear")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset service not configured")
}
