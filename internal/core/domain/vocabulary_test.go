package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVocabulary_AssignsDenseIDs(t *testing.T) {
	v, err := NewVocabulary([]string{"hello", "world"})
	require.NoError(t, err)

	assert.Equal(t, 6, v.Len())
	assert.Equal(t, 2, v.WordCount())

	id, ok := v.ID("hello")
	assert.True(t, ok)
	assert.Equal(t, 0, id)

	id, ok = v.ID("world")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestNewVocabulary_ReservedTokensAfterWords(t *testing.T) {
	v, err := NewVocabulary([]string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, 3, v.PadID())
	assert.Equal(t, 4, v.EOSID())
	assert.Equal(t, 5, v.OutID())
	assert.Equal(t, 6, v.SOSID())
}

func TestNewVocabulary_Empty(t *testing.T) {
	v, err := NewVocabulary(nil)
	require.NoError(t, err)

	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 0, v.WordCount())
	assert.Equal(t, 0, v.PadID())
	assert.Equal(t, 3, v.SOSID())
}

func TestNewVocabulary_DuplicateWord(t *testing.T) {
	_, err := NewVocabulary([]string{"hi", "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateToken))
}

func TestNewVocabulary_WordCollidesWithReserved(t *testing.T) {
	_, err := NewVocabulary([]string{"hi", TokenEOS})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateToken))
}

func TestVocabulary_IDsAreUnique(t *testing.T) {
	v, err := NewVocabulary([]string{"x", "y", "z"})
	require.NoError(t, err)

	seen := make(map[int]string)
	for _, tok := range v.Tokens() {
		id, ok := v.ID(tok)
		require.True(t, ok)
		_, dup := seen[id]
		assert.False(t, dup, "id %d assigned twice", id)
		seen[id] = tok
	}
	assert.Len(t, seen, v.Len())
}

func TestVocabulary_Token(t *testing.T) {
	v, err := NewVocabulary([]string{"x"})
	require.NoError(t, err)

	tok, ok := v.Token(0)
	assert.True(t, ok)
	assert.Equal(t, "x", tok)

	_, ok = v.Token(-1)
	assert.False(t, ok)

	_, ok = v.Token(v.Len())
	assert.False(t, ok)
}

func TestVocabulary_Encode(t *testing.T) {
	v, err := NewVocabulary([]string{"how", "are", "you"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		text     string
		expected []int
	}{
		{"all known", "how are you", []int{0, 1, 2}},
		{"unknown maps to out", "how are they", []int{0, 1, v.OutID()}},
		{"extra whitespace", "  how   you ", []int{0, 2}},
		{"empty", "", []int{}},
		{"eos suffix", "you " + TokenEOS, []int{2, v.EOSID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.Encode(tt.text))
		})
	}
}

func TestVocabulary_Decode_DropsPad(t *testing.T) {
	v, err := NewVocabulary([]string{"hi", "there"})
	require.NoError(t, err)

	text, err := v.Decode([]int{0, 1, v.EOSID(), v.PadID(), v.PadID()})
	require.NoError(t, err)
	assert.Equal(t, "hi there <EOS>", text)
}

func TestVocabulary_Decode_OutOfRange(t *testing.T) {
	v, err := NewVocabulary([]string{"hi"})
	require.NoError(t, err)

	_, err = v.Decode([]int{0, 99})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestVocabulary_RoundTrip(t *testing.T) {
	v, err := NewVocabulary([]string{"i", "am", "fine"})
	require.NoError(t, err)

	text := "i am fine " + TokenEOS
	decoded, err := v.Decode(v.Encode(text))
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
}

func TestVocabulary_Inverse(t *testing.T) {
	v, err := NewVocabulary([]string{"a"})
	require.NoError(t, err)

	inv := v.Inverse()
	assert.Len(t, inv, v.Len())
	assert.Equal(t, "a", inv[0])
	assert.Equal(t, TokenOUT, inv[v.OutID()])

	// Mutating the copy leaves the vocabulary intact.
	inv[0] = "changed"
	tok, _ := v.Token(0)
	assert.Equal(t, "a", tok)
}

func TestVocabulary_TokensReturnsCopy(t *testing.T) {
	v, err := NewVocabulary([]string{"a"})
	require.NoError(t, err)

	toks := v.Tokens()
	toks[0] = "b"
	assert.True(t, v.Has("a"))
	assert.False(t, v.Has("b"))
}

func TestSide_IsValid(t *testing.T) {
	assert.True(t, SideQuestion.IsValid())
	assert.True(t, SideAnswer.IsValid())
	assert.False(t, Side("").IsValid())
	assert.False(t, Side("both").IsValid())
}

func TestRestoreVocabulary(t *testing.T) {
	original, err := NewVocabulary([]string{"a", "b"})
	require.NoError(t, err)

	restored, err := RestoreVocabulary(original.Tokens())
	require.NoError(t, err)
	assert.Equal(t, original.Tokens(), restored.Tokens())
	assert.Equal(t, original.EOSID(), restored.EOSID())

	_, err = RestoreVocabulary([]string{"a", TokenPAD})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = RestoreVocabulary([]string{"a", TokenEOS, TokenPAD, TokenOUT, TokenSOS})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
