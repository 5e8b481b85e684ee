package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

func TestCountWords(t *testing.T) {
	counts := CountWords([]string{"a b  a", "", "c\ta"})
	assert.Equal(t, map[string]int{"a": 3, "b": 1, "c": 1}, counts)
}

func TestMergeCounts_SumsWithoutMutating(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 3, "z": 4}

	merged := MergeCounts(a, b)

	assert.Equal(t, map[string]int{"x": 1, "y": 5, "z": 4}, merged)
	assert.Equal(t, map[string]int{"x": 1, "y": 2}, a)
	assert.Equal(t, map[string]int{"y": 3, "z": 4}, b)
}

func TestBuildVocabulary_Threshold(t *testing.T) {
	counts := map[string]int{"common": 5, "edge": 3, "rare": 2}

	vocab, err := BuildVocabulary(counts, 3)
	require.NoError(t, err)

	assert.True(t, vocab.Has("common"))
	assert.True(t, vocab.Has("edge"))
	assert.False(t, vocab.Has("rare"))
	assert.Equal(t, 2, vocab.WordCount())
	assert.Equal(t, 6, vocab.Len())
}

func TestBuildVocabulary_DenseAndDeterministic(t *testing.T) {
	counts := map[string]int{"b": 1, "a": 1, "c": 1}

	first, err := BuildVocabulary(counts, 0)
	require.NoError(t, err)
	second, err := BuildVocabulary(counts, 0)
	require.NoError(t, err)

	assert.Equal(t, first.Tokens(), second.Tokens())
	assert.Equal(t, []string{"a", "b", "c", domain.TokenPAD, domain.TokenEOS, domain.TokenOUT, domain.TokenSOS},
		first.Tokens())
	for id := 0; id < first.Len(); id++ {
		tok, ok := first.Token(id)
		require.True(t, ok)
		got, _ := first.ID(tok)
		assert.Equal(t, id, got)
	}
}

func TestEncodeQuestions_OutOfVocabulary(t *testing.T) {
	vocab, err := BuildVocabulary(map[string]int{"known": 10, "rare": 1}, 5)
	require.NoError(t, err)

	encoded := EncodeQuestions(vocab, []string{"known rare unseen"})

	known, _ := vocab.ID("known")
	assert.Equal(t, [][]int{{known, vocab.OutID(), vocab.OutID()}}, encoded)
}

func TestEncodeAnswers_EndWithEOS(t *testing.T) {
	vocab, err := BuildVocabulary(map[string]int{"ok": 1}, 1)
	require.NoError(t, err)

	encoded := EncodeAnswers(vocab, []string{"ok", "", "never seen"})

	require.Len(t, encoded, 3)
	for _, seq := range encoded {
		require.NotEmpty(t, seq)
		assert.Equal(t, vocab.EOSID(), seq[len(seq)-1])
	}
	assert.Equal(t, []int{vocab.EOSID()}, encoded[1])
}

func TestWithEOS(t *testing.T) {
	assert.Equal(t, "great <EOS>", WithEOS("great"))
}
