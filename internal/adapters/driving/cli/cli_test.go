package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driving"
)

// mockDatasetService implements driving.DatasetService for testing.
type mockDatasetService struct {
	dataset   *domain.Dataset
	err       error
	requests  []driving.PrepareRequest
	summaries []domain.DatasetSummary
	cleared   int
}

func (m *mockDatasetService) Prepare(_ context.Context, req driving.PrepareRequest) (*domain.Dataset, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.dataset, nil
}

func (m *mockDatasetService) Encode(ds *domain.Dataset, side domain.Side, text string) ([]int, error) {
	vocab, err := ds.Vocabulary(side)
	if err != nil {
		return nil, err
	}
	return vocab.Encode(text), nil
}

func (m *mockDatasetService) Decode(ds *domain.Dataset, side domain.Side, ids []int) (string, error) {
	vocab, err := ds.Vocabulary(side)
	if err != nil {
		return "", err
	}
	return vocab.Decode(ids)
}

func (m *mockDatasetService) List(_ context.Context) ([]domain.DatasetSummary, error) {
	return m.summaries, nil
}

func (m *mockDatasetService) Clear(_ context.Context) (int, error) {
	m.cleared = len(m.summaries)
	m.summaries = nil
	return m.cleared, nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.PipelineSettings
	setErr   error
	setCalls [][2]string
}

func (m *mockSettingsService) Get() (*domain.PipelineSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.PipelineSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.setCalls = append(m.setCalls, [2]string{key, value})
	return m.setErr
}

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.PipelineSettings {
	return domain.DefaultPipelineSettings()
}

// testDataset returns a dataset with words "am fine hello hi i".
func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	words := []string{"am", "fine", "hello", "hi", "i"}
	qv, err := domain.NewVocabulary(words)
	require.NoError(t, err)
	av, err := domain.NewVocabulary(words)
	require.NoError(t, err)

	pairs := []domain.EncodedPair{
		{Index: 0, Question: []int{3}, Answer: []int{2, av.EOSID()}},
		{Index: 1, Question: []int{2}, Answer: []int{4, 0, 1, av.EOSID()}},
		{Index: 2, Question: []int{4, 0, 1}, Answer: []int{av.OutID(), av.EOSID()}},
	}

	return &domain.Dataset{
		ID:            "ds-test",
		Key:           domain.DatasetKey{Threshold: 1, MinQuestionLength: 1, MaxQuestionLength: 25},
		QuestionVocab: qv,
		AnswerVocab:   av,
		Buckets:       domain.GroupBuckets(pairs),
		Stats: domain.DatasetStats{
			Utterances: 4, Threads: 1, Pairs: 3, BucketedPairs: 3, VocabularySize: qv.Len(),
		},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// setupServices installs mocks and restores the previous services on cleanup.
func setupServices(t *testing.T, ds *mockDatasetService, ss *mockSettingsService) {
	t.Helper()
	oldDataset, oldSettings, oldWatcher := datasetService, settingsService, corpusWatcher
	SetServices(Services{Dataset: ds, Settings: ss})
	if ds == nil {
		datasetService = nil
	}
	if ss == nil {
		settingsService = nil
	}
	t.Cleanup(func() {
		datasetService, settingsService, corpusWatcher = oldDataset, oldSettings, oldWatcher
	})
}

// resetFlags restores every flag in the tree to its default so
// values from an earlier Execute do not leak into the next one.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

var errBoom = errors.New("boom")
