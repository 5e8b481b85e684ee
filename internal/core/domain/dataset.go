package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// EncodedPair is a question/answer pair after vocabulary lookup.
type EncodedPair struct {
	// Index is the pair's position in the extracted pair list.
	Index int

	// Question holds question token IDs.
	Question []int

	// Answer holds answer token IDs, always ending with <EOS>.
	Answer []int
}

// Bucket groups encoded pairs whose questions have the same length.
type Bucket struct {
	QuestionLength int
	Pairs          []EncodedPair
}

// GroupBuckets groups pairs by question length. Buckets appear in the
// order their length is first seen and pairs keep their input order.
func GroupBuckets(pairs []EncodedPair) []Bucket {
	var buckets []Bucket
	index := make(map[int]int)
	for _, p := range pairs {
		n := len(p.Question)
		i, ok := index[n]
		if !ok {
			i = len(buckets)
			index[n] = i
			buckets = append(buckets, Bucket{QuestionLength: n})
		}
		buckets[i].Pairs = append(buckets[i].Pairs, p)
	}
	return buckets
}

// DatasetKey identifies a pipeline run by its inputs.
// Equal keys produce equal datasets.
type DatasetKey struct {
	LinesHash         string
	ConversationsHash string
	Threshold         int
	MinQuestionLength int
	MaxQuestionLength int
}

// String returns a stable digest of the key.
func (k DatasetKey) String() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d|%d",
		k.LinesHash, k.ConversationsHash, k.Threshold, k.MinQuestionLength, k.MaxQuestionLength)))
	return hex.EncodeToString(sum[:])
}

// DatasetStats summarises a pipeline run.
type DatasetStats struct {
	Utterances     int
	Threads        int
	SkippedRecords int
	Pairs          int
	BucketedPairs  int
	DroppedPairs   int
	VocabularySize int
}

// Dataset is the output of one pipeline run.
type Dataset struct {
	// ID is the unique identifier for the run.
	ID string

	// Key identifies the inputs the dataset was built from.
	Key DatasetKey

	// QuestionVocab encodes the question side.
	QuestionVocab *Vocabulary

	// AnswerVocab encodes the answer side.
	AnswerVocab *Vocabulary

	// Buckets hold the encoded pairs grouped by question length.
	Buckets []Bucket

	// Stats summarises the run.
	Stats DatasetStats

	// CreatedAt is when the dataset was built.
	CreatedAt time.Time
}

// Vocabulary returns the vocabulary for a side.
func (d *Dataset) Vocabulary(side Side) (*Vocabulary, error) {
	switch side {
	case SideQuestion:
		return d.QuestionVocab, nil
	case SideAnswer:
		return d.AnswerVocab, nil
	default:
		return nil, fmt.Errorf("%w: vocabulary side %q", ErrUnsupportedType, side)
	}
}

// Pairs returns all bucketed pairs in bucket order.
func (d *Dataset) Pairs() []EncodedPair {
	var out []EncodedPair
	for _, b := range d.Buckets {
		out = append(out, b.Pairs...)
	}
	return out
}

// DatasetSummary describes a cached dataset without its contents.
type DatasetSummary struct {
	ID        string
	Key       DatasetKey
	Stats     DatasetStats
	CreatedAt time.Time
}

// Summary returns the dataset's summary.
func (d *Dataset) Summary() DatasetSummary {
	return DatasetSummary{
		ID:        d.ID,
		Key:       d.Key,
		Stats:     d.Stats,
		CreatedAt: d.CreatedAt,
	}
}
