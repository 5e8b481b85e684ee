package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// CountWords counts whitespace-separated tokens across texts.
func CountWords(texts []string) map[string]int {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, word := range strings.Fields(text) {
			counts[word]++
		}
	}
	return counts
}

// MergeCounts folds two frequency tables into a new one by summing
// the counts of shared tokens. Neither input is modified.
func MergeCounts(a, b map[string]int) map[string]int {
	merged := make(map[string]int, len(a)+len(b))
	for _, table := range []map[string]int{a, b} {
		for word, n := range table {
			merged[word] += n
		}
	}
	return merged
}

// BuildVocabulary keeps every token whose count is at least threshold
// and assigns IDs in sorted token order, then appends the reserved tokens.
func BuildVocabulary(counts map[string]int, threshold int) (*domain.Vocabulary, error) {
	words := make([]string, 0, len(counts))
	for word, n := range counts {
		if n >= threshold {
			words = append(words, word)
		}
	}
	sort.Strings(words)
	return domain.NewVocabulary(words)
}

// EncodeQuestions maps each normalised question through the vocabulary.
func EncodeQuestions(vocab *domain.Vocabulary, questions []string) [][]int {
	out := make([][]int, len(questions))
	for i, q := range questions {
		out[i] = vocab.Encode(q)
	}
	return out
}

// EncodeAnswers appends <EOS> to each normalised answer and maps it
// through the vocabulary, so every sequence ends with the EOS ID.
func EncodeAnswers(vocab *domain.Vocabulary, answers []string) [][]int {
	out := make([][]int, len(answers))
	for i, a := range answers {
		out[i] = vocab.Encode(WithEOS(a))
	}
	return out
}

// WithEOS returns the answer text with the <EOS> token appended.
func WithEOS(answer string) string {
	return answer + " " + domain.TokenEOS
}
