package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/retrieval-engine/internal/adapters/driven/storage/ranking"
	"github.com/custodia-labs/retrieval-engine/internal/core/domain"
	"github.com/custodia-labs/retrieval-engine/internal/core/ports/driven"
)

// Ensure the memory types implement the interfaces.
var (
	_ driven.VectorStore        = (*VectorStore)(nil)
	_ driven.VectorStoreFactory = (*VectorStoreFactory)(nil)
)

// VectorStore is an in-memory implementation of driven.VectorStore.
type VectorStore struct {
	mu         sync.RWMutex
	model      string
	dimensions int
	records    []domain.Chunk
}

// NewVectorStore creates an empty store for the given model.
func NewVectorStore(model string, dimensions int) *VectorStore {
	return &VectorStore{model: model, dimensions: dimensions}
}

// Add appends chunks. Nothing is stored if any chunk has the wrong dimensions.
func (s *VectorStore) Add(_ context.Context, chunks []domain.Chunk) error {
	for i := range chunks {
		if len(chunks[i].Embedding) != s.dimensions {
			return fmt.Errorf("%w: chunk %s has %d dimensions, index has %d",
				domain.ErrInvalidInput, chunks[i].ID, len(chunks[i].Embedding), s.dimensions)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range chunks {
		c := chunks[i]
		c.Embedding = append([]float32(nil), c.Embedding...)
		c.Metadata = domain.CopyMetadata(c.Metadata)
		s.records = append(s.records, c)
	}
	return nil
}

// Search scores every record against query and returns the k best.
func (s *VectorStore) Search(_ context.Context, query []float32, k int) ([]domain.SearchResult, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d",
			domain.ErrInvalidInput, len(query), s.dimensions)
	}

	s.mu.RLock()
	results := make([]domain.SearchResult, len(s.records))
	for i := range s.records {
		results[i] = domain.SearchResult{
			Chunk: s.records[i],
			Score: ranking.Cosine(query, s.records[i].Embedding),
		}
	}
	s.mu.RUnlock()

	return ranking.TopK(results, k), nil
}

// Info describes the store.
func (s *VectorStore) Info(_ context.Context) (domain.IndexInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.IndexInfo{
		Model:      s.model,
		Dimensions: s.dimensions,
		Records:    len(s.records),
	}, nil
}

// Close is a no-op; records stay available to the factory.
func (s *VectorStore) Close() error {
	return nil
}

// VectorStoreFactory holds at most one in-memory index.
type VectorStoreFactory struct {
	mu    sync.Mutex
	store *VectorStore
}

// NewVectorStoreFactory creates a factory with no index.
func NewVectorStoreFactory() *VectorStoreFactory {
	return &VectorStoreFactory{}
}

// Exists reports whether an index has been created and not discarded.
func (f *VectorStoreFactory) Exists(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store != nil, nil
}

// Open returns the current index.
func (f *VectorStoreFactory) Open(_ context.Context) (driven.VectorStore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.store == nil {
		return nil, fmt.Errorf("%w: no in-memory index", domain.ErrNotFound)
	}
	return f.store, nil
}

// Create replaces any current index with an empty one.
func (f *VectorStoreFactory) Create(_ context.Context, model string, dimensions int) (driven.VectorStore, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store = NewVectorStore(model, dimensions)
	return f.store, nil
}

// Discard drops the current index.
func (f *VectorStoreFactory) Discard(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store = nil
	return nil
}
