package driven

// TextNormaliser canonicalises utterance text before counting and encoding.
// Normalise must be deterministic and safe for concurrent use.
type TextNormaliser interface {
	// Name returns the normaliser name for logging.
	Name() string

	// Normalise returns the canonical form of text.
	Normalise(text string) string
}
