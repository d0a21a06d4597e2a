// Package domain defines the core business entities for Claimant.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: One full page of the claim document (the parent unit)
//   - Chunk: A sentence-bounded span of a page (the fine retrieval granule)
//   - Summary: The generated synopsis of one page
//   - Answer: The structured result of a question, with cited sources
//   - Exchange: A persisted question/answer pair
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
