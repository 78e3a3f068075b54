// Package storage selects the vector store backend named in settings.
package storage

import (
	"fmt"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/retrieval-engine/internal/adapters/driven/storage/qdrant"
	"github.com/custodia-labs/retrieval-engine/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// NewFactory returns the vector store factory for the configured backend.
// The SQLite index lives under settings.IndexDir.
func NewFactory(settings domain.Settings) (driven.VectorStoreFactory, error) {
	switch settings.Store.Backend {
	case domain.StoreBackendSQLite:
		return sqlite.NewFactory(settings.IndexDir), nil
	case domain.StoreBackendQdrant:
		return qdrant.NewFactory(settings.Store.QdrantAddr, settings.Store.QdrantCollection), nil
	case domain.StoreBackendMemory:
		return memory.NewVectorStoreFactory(), nil
	default:
		return nil, fmt.Errorf("%w: store backend %q", domain.ErrUnsupportedType, settings.Store.Backend)
	}
}
