package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBuckets(t *testing.T) {
	pairs := []EncodedPair{
		{Index: 0, Question: []int{1}},
		{Index: 1, Question: []int{1}},
		{Index: 2, Question: []int{1, 2}},
		{Index: 3, Question: []int{1, 2, 3}},
		{Index: 4, Question: []int{1, 2}},
	}

	buckets := GroupBuckets(pairs)
	require.Len(t, buckets, 3)

	assert.Equal(t, 1, buckets[0].QuestionLength)
	assert.Equal(t, 2, buckets[1].QuestionLength)
	assert.Equal(t, 3, buckets[2].QuestionLength)

	assert.Equal(t, []int{0, 1}, indexes(buckets[0].Pairs))
	assert.Equal(t, []int{2, 4}, indexes(buckets[1].Pairs))
	assert.Equal(t, []int{3}, indexes(buckets[2].Pairs))
}

func TestGroupBuckets_Empty(t *testing.T) {
	assert.Empty(t, GroupBuckets(nil))
}

func TestGroupBuckets_MembersShareLength(t *testing.T) {
	pairs := []EncodedPair{
		{Index: 0, Question: []int{1, 2}},
		{Index: 1, Question: []int{3}},
		{Index: 2, Question: []int{4, 5}},
	}

	for _, b := range GroupBuckets(pairs) {
		for _, p := range b.Pairs {
			assert.Len(t, p.Question, b.QuestionLength)
		}
	}
}

func TestDatasetKey_String(t *testing.T) {
	k := DatasetKey{LinesHash: "a", ConversationsHash: "b", Threshold: 20, MinQuestionLength: 1, MaxQuestionLength: 25}

	assert.Len(t, k.String(), 64)
	assert.Equal(t, k.String(), k.String())

	other := k
	other.Threshold = 21
	assert.NotEqual(t, k.String(), other.String())
}

func TestDataset_Vocabulary(t *testing.T) {
	q, err := NewVocabulary([]string{"q"})
	require.NoError(t, err)
	a, err := NewVocabulary([]string{"a"})
	require.NoError(t, err)
	ds := &Dataset{QuestionVocab: q, AnswerVocab: a}

	v, err := ds.Vocabulary(SideQuestion)
	require.NoError(t, err)
	assert.Same(t, q, v)

	v, err = ds.Vocabulary(SideAnswer)
	require.NoError(t, err)
	assert.Same(t, a, v)

	_, err = ds.Vocabulary(Side("other"))
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestDataset_Pairs(t *testing.T) {
	ds := &Dataset{Buckets: []Bucket{
		{QuestionLength: 1, Pairs: []EncodedPair{{Index: 2}, {Index: 0}}},
		{QuestionLength: 2, Pairs: []EncodedPair{{Index: 1}}},
	}}

	assert.Equal(t, []int{2, 0, 1}, indexes(ds.Pairs()))
}

func indexes(pairs []EncodedPair) []int {
	out := make([]int, len(pairs))
	for i, p := range pairs {
		out[i] = p.Index
	}
	return out
}
