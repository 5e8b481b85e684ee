package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// fakeReader serves a corpus from memory.
type fakeReader struct {
	utterances map[string]domain.Utterance
	threads    []domain.Thread
	version    string
	reads      int
	err        error
}

func newFakeReader(texts map[string]string, threads ...[]string) *fakeReader {
	r := &fakeReader{utterances: make(map[string]domain.Utterance), version: "v1"}
	for id, text := range texts {
		r.utterances[id] = domain.Utterance{ID: id, Text: text}
	}
	for _, ids := range threads {
		r.threads = append(r.threads, domain.Thread{LineIDs: ids})
	}
	return r
}

func (r *fakeReader) ReadUtterances(_ context.Context, _ string) (map[string]domain.Utterance, domain.LoadStats, error) {
	r.reads++
	if r.err != nil {
		return nil, domain.LoadStats{}, r.err
	}
	return r.utterances, domain.LoadStats{Lines: len(r.utterances)}, nil
}

func (r *fakeReader) ReadThreads(_ context.Context, _ string) ([]domain.Thread, domain.LoadStats, error) {
	if r.err != nil {
		return nil, domain.LoadStats{}, r.err
	}
	return r.threads, domain.LoadStats{Lines: len(r.threads)}, nil
}

func (r *fakeReader) Fingerprint(_ context.Context, path string) (string, error) {
	return fmt.Sprintf("%s@%s", path, r.version), nil
}
