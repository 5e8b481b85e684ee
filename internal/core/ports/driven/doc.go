// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CorpusReader: Loads utterance and thread files
//   - TextNormaliser: Canonicalises utterance text
//   - PairPipelineFactory: Builds the post-processing chain
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DatasetStore: Caches prepared datasets. Without it every run rebuilds.
//   - CorpusWatcher: Signals corpus file changes for watch mode.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or postprocessor package
package driven
