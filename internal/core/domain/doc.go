// Package domain defines the core entities for chatprep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Utterance: A single line of dialogue from the corpus
//   - Thread: The ordered line IDs of one recorded exchange
//   - Pair: A question/answer pair taken from adjacent thread lines
//   - Vocabulary: A dense token to integer mapping with reserved tokens
//   - Bucket: Encoded pairs sharing a question length
//   - Dataset: The full output of one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
