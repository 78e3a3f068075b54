// Package domain defines the core entities of the retrieval engine.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes read from the data directory
//   - Document: A loaded text unit (a file, or a single PDF page)
//   - Chunk: A bounded, overlapping slice of a Document used for embedding
//   - IndexInfo: What the persisted vector index was built with
//   - Settings: Runtime configuration
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
