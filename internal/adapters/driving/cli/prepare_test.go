package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driving"
)

// mockWatcher emits the queued signals then closes the channel.
type mockWatcher struct {
	signals int
	paths   []string
}

func (m *mockWatcher) Watch(_ context.Context, paths ...string) (<-chan struct{}, error) {
	m.paths = paths
	ch := make(chan struct{}, m.signals)
	for i := 0; i < m.signals; i++ {
		ch <- struct{}{}
	}
	close(ch)
	return ch, nil
}

func TestPrepareCmd_Use(t *testing.T) {
	assert.Equal(t, "prepare", prepareCmd.Use)
	assert.Equal(t, "Build the encoded dataset", prepareCmd.Short)
	assert.Contains(t, prepareCmd.Long, "--refresh")
}

func TestPrepareCmd_PrintsSummary(t *testing.T) {
	ds := &mockDatasetService{dataset: testDataset(t)}
	setupServices(t, ds, &mockSettingsService{settings: domain.DefaultPipelineSettings()})

	out, err := executeCommand(t, "prepare")

	require.NoError(t, err)
	assert.Contains(t, out, "Dataset prepared")
	assert.Contains(t, out, "ds-test")
	assert.Contains(t, out, "3 (3 bucketed, 0 out of range)")
	require.Len(t, ds.requests, 1)
	assert.False(t, ds.requests[0].Refresh)
	assert.Equal(t, domain.DefaultPipelineSettings(), ds.requests[0].Settings)
}

func TestPrepareCmd_FlagsOverrideStoredSettings(t *testing.T) {
	stored := domain.DefaultPipelineSettings()
	stored.Threshold = 7
	stored.LinesPath = "stored-lines.txt"
	ds := &mockDatasetService{dataset: testDataset(t)}
	setupServices(t, ds, &mockSettingsService{settings: stored})

	_, err := executeCommand(t, "prepare",
		"--lines", "l.txt", "--conversations", "c.txt",
		"--max-length", "10", "--refresh")

	require.NoError(t, err)
	require.Len(t, ds.requests, 1)
	req := ds.requests[0]
	assert.True(t, req.Refresh)
	assert.Equal(t, 7, req.Settings.Threshold)
	assert.Equal(t, "l.txt", req.Settings.LinesPath)
	assert.Equal(t, "c.txt", req.Settings.ConversationsPath)
	assert.Equal(t, 10, req.Settings.MaxQuestionLength)
	assert.Equal(t, 1, req.Settings.MinQuestionLength)
}

func TestPrepareCmd_Error(t *testing.T) {
	ds := &mockDatasetService{err: &domain.MissingUtteranceError{Thread: 3, LineID: "L9"}}
	setupServices(t, ds, &mockSettingsService{settings: domain.DefaultPipelineSettings()})

	_, err := executeCommand(t, "prepare")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingUtterance)
	assert.Contains(t, err.Error(), `thread 3 references unknown utterance "L9"`)
}

func TestPrepareCmd_NotConfigured(t *testing.T) {
	setupServices(t, nil, nil)

	_, err := executeCommand(t, "prepare")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset service not configured")
}

func TestPrepareCmd_NoSettingsServiceUsesDefaults(t *testing.T) {
	ds := &mockDatasetService{dataset: testDataset(t)}
	setupServices(t, ds, nil)

	_, err := executeCommand(t, "prepare", "--threshold", "3")

	require.NoError(t, err)
	require.Len(t, ds.requests, 1)
	want := domain.DefaultPipelineSettings()
	want.Threshold = 3
	assert.Equal(t, want, ds.requests[0].Settings)
}

func TestPrepareCmd_Watch(t *testing.T) {
	ds := &mockDatasetService{dataset: testDataset(t)}
	setupServices(t, ds, &mockSettingsService{settings: domain.DefaultPipelineSettings()})
	watcher := &mockWatcher{signals: 2}
	corpusWatcher = watcher

	done := make(chan struct{})
	var out string
	var err error
	go func() {
		defer close(done)
		out, err = executeCommand(t, "prepare", "--watch")
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("prepare --watch did not return after the watcher closed")
	}

	require.NoError(t, err)
	assert.Len(t, ds.requests, 3)
	assert.Contains(t, out, "Watching")
	assert.Contains(t, out, "Corpus changed, rebuilding...")
	assert.Equal(t, []string{domain.DefaultLinesPath, domain.DefaultConversationsPath}, watcher.paths)
	for _, req := range ds.requests[1:] {
		assert.Equal(t, driving.PrepareRequest{Settings: domain.DefaultPipelineSettings()}, req)
	}
}

func TestPrepareCmd_WatchWithoutWatcher(t *testing.T) {
	setupServices(t, &mockDatasetService{dataset: testDataset(t)}, &mockSettingsService{settings: domain.DefaultPipelineSettings()})

	_, err := executeCommand(t, "prepare", "--watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "corpus watcher not configured")
}
