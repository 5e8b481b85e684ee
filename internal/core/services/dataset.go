package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
	"github.com/custodia-labs/chatprep/internal/core/ports/driving"
	"github.com/custodia-labs/chatprep/internal/logger"
)

// Ensure DatasetService implements the interface.
var _ driving.DatasetService = (*DatasetService)(nil)

// DatasetService runs the corpus-to-dataset pipeline.
type DatasetService struct {
	reader     driven.CorpusReader
	normaliser driven.TextNormaliser
	processors driven.PairPipelineFactory
	store      driven.DatasetStore // optional
	now        func() time.Time
}

// NewDatasetService creates a new dataset service.
// The store may be nil, in which case every Prepare rebuilds.
func NewDatasetService(
	reader driven.CorpusReader,
	normaliser driven.TextNormaliser,
	processors driven.PairPipelineFactory,
	store driven.DatasetStore,
) *DatasetService {
	return &DatasetService{
		reader:     reader,
		normaliser: normaliser,
		processors: processors,
		store:      store,
		now:        time.Now,
	}
}

// Prepare builds the dataset for the request's settings.
// Settings are validated before any file is touched.
func (s *DatasetService) Prepare(ctx context.Context, req driving.PrepareRequest) (*domain.Dataset, error) {
	settings := req.Settings
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if s.reader == nil || s.normaliser == nil || s.processors == nil {
		return nil, fmt.Errorf("%w: dataset service is missing a dependency", domain.ErrInvalidConfiguration)
	}

	key, err := s.datasetKey(ctx, settings)
	if err != nil {
		return nil, err
	}

	useCache := s.store != nil && settings.CacheEnabled
	if useCache && !req.Refresh {
		cached, err := s.store.Get(ctx, key)
		switch {
		case err == nil:
			logger.Info("Using cached dataset %s", cached.ID)
			return cached, nil
		case !errors.Is(err, domain.ErrNotFound):
			logger.Warn("dataset cache lookup failed: %v", err)
		}
	}

	ds, err := s.build(ctx, settings)
	if err != nil {
		return nil, err
	}
	ds.Key = key

	if useCache {
		if err := s.store.Save(ctx, ds); err != nil {
			logger.Warn("failed to cache dataset %s: %v", ds.ID, err)
		}
	}

	return ds, nil
}

func (s *DatasetService) datasetKey(ctx context.Context, settings domain.PipelineSettings) (domain.DatasetKey, error) {
	linesHash, err := s.reader.Fingerprint(ctx, settings.LinesPath)
	if err != nil {
		return domain.DatasetKey{}, fmt.Errorf("fingerprint lines: %w", err)
	}
	convHash, err := s.reader.Fingerprint(ctx, settings.ConversationsPath)
	if err != nil {
		return domain.DatasetKey{}, fmt.Errorf("fingerprint conversations: %w", err)
	}
	return domain.DatasetKey{
		LinesHash:         linesHash,
		ConversationsHash: convHash,
		Threshold:         settings.Threshold,
		MinQuestionLength: settings.MinQuestionLength,
		MaxQuestionLength: settings.MaxQuestionLength,
	}, nil
}

func (s *DatasetService) build(ctx context.Context, settings domain.PipelineSettings) (*domain.Dataset, error) {
	corpus, err := s.load(ctx, settings)
	if err != nil {
		return nil, err
	}

	done := logger.Stage("Extract pairs")
	pairs, err := ExtractPairs(corpus)
	done()
	if err != nil {
		return nil, fmt.Errorf("extract pairs: %w", err)
	}
	logger.Debug("extracted %d pairs from %d threads", len(pairs), len(corpus.Threads))

	done = logger.Stage("Normalise")
	questions := make([]string, len(pairs))
	answers := make([]string, len(pairs))
	for i, p := range pairs {
		questions[i] = s.normaliser.Normalise(p.Question)
		answers[i] = s.normaliser.Normalise(p.Answer)
	}
	done()

	done = logger.Stage("Build vocabularies")
	counts := MergeCounts(CountWords(questions), CountWords(answers))
	questionVocab, err := BuildVocabulary(counts, settings.Threshold)
	if err != nil {
		done()
		return nil, fmt.Errorf("question vocabulary: %w", err)
	}
	answerVocab, err := BuildVocabulary(counts, settings.Threshold)
	done()
	if err != nil {
		return nil, fmt.Errorf("answer vocabulary: %w", err)
	}
	logger.Debug("%d distinct tokens, %d above threshold %d",
		len(counts), questionVocab.WordCount(), settings.Threshold)

	done = logger.Stage("Encode")
	encodedQ := EncodeQuestions(questionVocab, questions)
	encodedA := EncodeAnswers(answerVocab, answers)
	encoded := make([]domain.EncodedPair, len(pairs))
	for i := range pairs {
		encoded[i] = domain.EncodedPair{Index: i, Question: encodedQ[i], Answer: encodedA[i]}
	}
	done()

	done = logger.Stage("Bucket")
	pipeline, err := s.processors.BuildPipeline(settings.ProcessorSpecs())
	if err != nil {
		done()
		return nil, fmt.Errorf("build pair pipeline: %w", err)
	}
	kept, err := pipeline.Process(ctx, encoded)
	done()
	if err != nil {
		return nil, fmt.Errorf("process pairs: %w", err)
	}
	buckets := domain.GroupBuckets(kept)

	return &domain.Dataset{
		ID:            uuid.New().String(),
		QuestionVocab: questionVocab,
		AnswerVocab:   answerVocab,
		Buckets:       buckets,
		Stats: domain.DatasetStats{
			Utterances:     len(corpus.Utterances),
			Threads:        len(corpus.Threads),
			SkippedRecords: corpus.Stats.Skipped,
			Pairs:          len(pairs),
			BucketedPairs:  len(kept),
			DroppedPairs:   len(pairs) - len(kept),
			VocabularySize: questionVocab.Len(),
		},
		CreatedAt: s.now().UTC(),
	}, nil
}

func (s *DatasetService) load(ctx context.Context, settings domain.PipelineSettings) (*domain.Corpus, error) {
	defer logger.Stage("Load corpus")()

	utterances, lineStats, err := s.reader.ReadUtterances(ctx, settings.LinesPath)
	if err != nil {
		return nil, fmt.Errorf("load utterances: %w", err)
	}
	threads, threadStats, err := s.reader.ReadThreads(ctx, settings.ConversationsPath)
	if err != nil {
		return nil, fmt.Errorf("load threads: %w", err)
	}
	if lineStats.Skipped > 0 {
		logger.Warn("skipped %d malformed utterance records", lineStats.Skipped)
	}
	logger.Debug("loaded %d utterances and %d threads", len(utterances), len(threads))

	return &domain.Corpus{
		Utterances: utterances,
		Threads:    threads,
		Stats: domain.LoadStats{
			Lines:   lineStats.Lines + threadStats.Lines,
			Skipped: lineStats.Skipped + threadStats.Skipped,
		},
	}, nil
}

// Encode normalises text and maps it through the dataset vocabulary
// for side. Answer-side text is terminated with <EOS>.
func (s *DatasetService) Encode(ds *domain.Dataset, side domain.Side, text string) ([]int, error) {
	vocab, err := s.vocabulary(ds, side)
	if err != nil {
		return nil, err
	}
	normalised := text
	if s.normaliser != nil {
		normalised = s.normaliser.Normalise(text)
	}
	if side == domain.SideAnswer {
		normalised = WithEOS(normalised)
	}
	return vocab.Encode(normalised), nil
}

// Decode maps IDs back to text through the dataset vocabulary for side.
func (s *DatasetService) Decode(ds *domain.Dataset, side domain.Side, ids []int) (string, error) {
	vocab, err := s.vocabulary(ds, side)
	if err != nil {
		return "", err
	}
	return vocab.Decode(ids)
}

func (s *DatasetService) vocabulary(ds *domain.Dataset, side domain.Side) (*domain.Vocabulary, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: dataset is nil", domain.ErrInvalidInput)
	}
	vocab, err := ds.Vocabulary(side)
	if err != nil {
		return nil, err
	}
	if vocab == nil {
		return nil, fmt.Errorf("%w: dataset has no %s vocabulary", domain.ErrInvalidInput, side)
	}
	return vocab, nil
}

// List returns summaries of cached datasets, newest first.
func (s *DatasetService) List(ctx context.Context) ([]domain.DatasetSummary, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx)
}

// Clear removes every cached dataset.
func (s *DatasetService) Clear(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	summaries, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, summary := range summaries {
		if err := s.store.Delete(ctx, summary.ID); err != nil {
			return removed, fmt.Errorf("delete dataset %s: %w", summary.ID, err)
		}
		removed++
	}
	return removed, nil
}
