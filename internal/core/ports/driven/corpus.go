package driven

import (
	"context"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// CorpusReader loads the two corpus files.
// Implementations read each file fully and release it before returning.
type CorpusReader interface {
	// ReadUtterances loads the utterance file keyed by line ID.
	// Records without exactly five fields are skipped and counted in the stats.
	ReadUtterances(ctx context.Context, path string) (map[string]domain.Utterance, domain.LoadStats, error)

	// ReadThreads loads the thread file in file order.
	ReadThreads(ctx context.Context, path string) ([]domain.Thread, domain.LoadStats, error)

	// Fingerprint returns a content hash of the file.
	Fingerprint(ctx context.Context, path string) (string, error)
}

// CorpusWatcher reports changes to corpus files.
type CorpusWatcher interface {
	// Watch emits a value each time one of the paths changes.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, paths ...string) (<-chan struct{}, error)
}
