package services

import (
	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// ExtractPairs walks each thread and emits every adjacent pair of
// utterances as (question, answer). A thread of n lines yields n-1
// pairs and pairs never cross threads. A line ID missing from the
// corpus aborts extraction with a *domain.MissingUtteranceError.
func ExtractPairs(corpus *domain.Corpus) ([]domain.Pair, error) {
	var pairs []domain.Pair

	for ti, thread := range corpus.Threads {
		for i := 0; i+1 < len(thread.LineIDs); i++ {
			qID, aID := thread.LineIDs[i], thread.LineIDs[i+1]

			question, ok := corpus.Text(qID)
			if !ok {
				return nil, &domain.MissingUtteranceError{Thread: ti, LineID: qID}
			}
			answer, ok := corpus.Text(aID)
			if !ok {
				return nil, &domain.MissingUtteranceError{Thread: ti, LineID: aID}
			}

			pairs = append(pairs, domain.Pair{
				QuestionID: qID,
				AnswerID:   aID,
				Question:   question,
				Answer:     answer,
			})
		}
	}

	return pairs, nil
}
