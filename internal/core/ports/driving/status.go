package driving

import (
	"context"

	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
)

// IndexStatus describes the engine and its index.
type IndexStatus struct {
	// DataDir is the directory documents are loaded from.
	DataDir string

	// IndexDir is the directory the index is persisted in.
	IndexDir string

	// Backend is the configured vector store backend.
	Backend domain.StoreBackend

	// EmbeddingModel is the configured embedding model.
	EmbeddingModel string

	// Ready is true once a store is loaded or created.
	Ready bool

	// Index describes the loaded index. Zero when not Ready.
	Index domain.IndexInfo
}

// StatusService reports the state of the index.
type StatusService interface {
	// Status returns the current index status.
	Status(ctx context.Context) (IndexStatus, error)
}
