// Package domain defines the core business entities for the StudyBuddy client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceTag: Where a document in the knowledge base came from
//   - ChatRequest / ChatResponse: One question and its answered evidence
//   - EvidenceChunk: A retrieved passage backing an answer
//   - FeedbackRecord: A relevance signal for an answered question
//   - Stats: Corpus-wide usage counters
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
