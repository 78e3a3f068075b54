package driven

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// VectorStore holds vector records (chunks with embeddings) and answers
// nearest-neighbour queries. Implementations must be safe for concurrent
// use by one writer and many readers.
type VectorStore interface {
	// Add appends chunks atomically: either every chunk is stored or none is.
	// Every chunk must carry an embedding.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to k records closest to the query vector,
	// most similar first. Ties keep store order.
	Search(ctx context.Context, query []float32, k int) ([]domain.SearchResult, error)

	// Info describes the index.
	Info(ctx context.Context) (domain.IndexInfo, error)

	// Close releases resources.
	Close() error
}

// VectorStoreFactory manages the lifecycle of the persisted index.
type VectorStoreFactory interface {
	// Exists reports whether a persisted index is present.
	Exists(ctx context.Context) (bool, error)

	// Open loads the persisted index. Returns domain.ErrNotFound if absent.
	Open(ctx context.Context) (VectorStore, error)

	// Create initialises a new, empty index for the given model.
	Create(ctx context.Context, model string, dimensions int) (VectorStore, error)

	// Discard removes the persisted index so that Exists reports false.
	Discard(ctx context.Context) error
}
